package services

import (
	"context"
	"fmt"
	"ouardatie_server/database"
	"ouardatie_server/lib"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"
	"runtime/debug"
	"slices"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type OrderService struct {
	logger          *gecho.Logger
	cfg             *structs.Config
	db              *database.DB
	productService  *ProductService
	shippingService *ShippingService
	emailService    *EmailService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	productService *ProductService,
	shippingService *ShippingService,
	emailService *EmailService,
) *OrderService {
	return &OrderService{
		logger:          logger,
		cfg:             cfg,
		db:              db,
		productService:  productService,
		shippingService: shippingService,
		emailService:    emailService,
	}
}

// CreateOrderFromCheckout turns a cart into an order. The order row, its
// items and the stock decrements all commit in one transaction; a failed
// item insert can never leave a headless order behind.
func (os *OrderService) CreateOrderFromCheckout(ctx context.Context, cart *structs.Cart, req *structs.CheckoutRequest, userID *uuid.UUID) (order *tables.Order, err error) {
	if len(cart.Items) == 0 {
		return nil, lib.ErrEmptyOrder
	}

	// Re-resolve every product so prices and stock reflect the database,
	// not a possibly stale cart snapshot
	productIDs := make([]uuid.UUID, 0, len(cart.Items))
	seen := make(map[uuid.UUID]bool)
	for _, item := range cart.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}

	products, err := os.productService.GetProductsByIds(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*tables.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	for _, item := range cart.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, fmt.Errorf("product %s no longer exists", item.ProductID)
		}
		colorHex := colorHexFor(product, item.Color)
		if len(product.StockVariants) > 0 {
			if product.VariantStock(colorHex, item.Size) < item.Quantity {
				return nil, fmt.Errorf("insufficient stock for %s (%s/%s)", product.Name, item.Color, item.Size)
			}
		} else if product.StockQuantity < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for %s", product.Name)
		}
	}

	shippingType := tables.ShippingType(req.ShippingType)
	shippingCost, shippingFound, err := os.shippingService.ShippingCost(ctx, req.Wilaya, shippingType)
	if err != nil {
		return nil, err
	}
	if !shippingFound {
		// Unpriced wilaya: the order ships at cost 0 and the shop
		// confirms the real price by phone
		os.logger.Warn("Order placed for unpriced wilaya",
			gecho.Field("wilaya", req.Wilaya),
			gecho.Field("shipping_type", req.ShippingType))
	}

	var subtotal int64
	for _, item := range cart.Items {
		subtotal += productMap[item.ProductID].EffectivePrice() * int64(item.Quantity)
	}

	// Phone numbers are PII; stored encrypted when a key is configured
	storedPhone := req.CustomerPhone
	if os.cfg.Encryption.Key != "" {
		storedPhone, err = lib.Encrypt(req.CustomerPhone, os.cfg.Encryption.Key)
		if err != nil {
			os.logger.Error("Failed to encrypt customer phone", gecho.Field("error", err))
			return nil, err
		}
	}

	tx, err := os.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	defer func() {
		if p := recover(); p != nil {
			stackTrace := string(debug.Stack())
			os.logger.Error(fmt.Sprintf("PANIC RECOVERED: %v", p),
				gecho.Field("panic_value", p),
				gecho.Field("stack_trace", stackTrace))
			tx.Rollback()
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			os.logger.Info("Rolling back order transaction", gecho.Field("error", err))
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	orderID := uuid.New()
	orderNumber := lib.GenerateOrderNumber()

	order = &tables.Order{
		ID:            orderID,
		OrderNumber:   orderNumber,
		UserID:        userID,
		CustomerName:  req.CustomerName,
		CustomerPhone: storedPhone,
		Wilaya:        req.Wilaya,
		Commune:       req.Commune,
		ShippingType:  shippingType,
		ShippingCost:  shippingCost,
		TotalAmount:   subtotal + shippingCost,
		Status:        tables.OrderStatusPending,
		PaymentMethod: tables.PaymentMethod(req.PaymentMethod),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	_, err = tx.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	items := make([]*tables.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		product := productMap[cartItem.ProductID]
		productID := product.ID

		items = append(items, &tables.OrderItem{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    &productID,
			ProductName:  product.Name,
			ProductPrice: product.EffectivePrice(),
			Quantity:     cartItem.Quantity,
			Size:         cartItem.Size,
			Color:        cartItem.Color,
			CreatedAt:    time.Now(),
		})
	}

	_, err = tx.NewInsert().Model(&items).Exec(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	// Decrement stock inside the same transaction
	for _, cartItem := range cart.Items {
		product := productMap[cartItem.ProductID]
		colorHex := colorHexFor(product, cartItem.Color)
		os.productService.AdjustVariantStock(product, colorHex, cartItem.Size, -cartItem.Quantity)

		_, err = tx.NewUpdate().
			Model((*tables.Product)(nil)).
			Set("stock_quantity = ?", product.StockQuantity).
			Set("stock_variants = ?", product.StockVariants).
			Set("stock_status = ?", product.StockStatus).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", product.ID).
			Exec(ctx)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
	}

	if userID != nil {
		if err = os.recomputeProfileStatsTx(ctx, tx, *userID); err != nil {
			return nil, err
		}
	}

	order.Items = items

	// Notify the shop owner asynchronously; a failed email never fails
	// the order
	go func() {
		emailErr := os.emailService.SendOrderNotification(order, req.CustomerPhone)
		if emailErr != nil {
			os.logger.Error("Failed to send order notification email",
				gecho.Field("error", emailErr),
				gecho.Field("order_number", orderNumber))
		}
	}()

	os.logger.Info("Order created",
		gecho.Field("order_id", orderID),
		gecho.Field("order_number", orderNumber),
		gecho.Field("total", order.TotalAmount))

	// Invalidate cached products whose stock changed
	for _, p := range products {
		if cacheErr := os.productService.cacheService.InvalidateProductCaches(p.ID); cacheErr != nil {
			os.logger.Warn("Failed to invalidate product cache after order", gecho.Field("error", cacheErr))
		}
	}

	return order, nil
}

// GetOrderByID retrieves an order with its items
func (os *OrderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("id", orderID).
		With("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	os.decryptPhone(order)
	return order, nil
}

// GetOrderByOrderNumber retrieves an order by its public order number
func (os *OrderService) GetOrderByOrderNumber(ctx context.Context, orderNumber string) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("order_number", orderNumber).
		With("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	os.decryptPhone(order)
	return order, nil
}

// GetAllOrders retrieves orders with optional status filtering
func (os *OrderService) GetAllOrders(ctx context.Context, status *tables.OrderStatus, limit, offset int) ([]*tables.Order, int, error) {
	query := database.Query[tables.Order](os.db)

	if status != nil {
		query = query.Where("status", *status)
	}

	count, err := query.Count(ctx)
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}

	orders, err := query.
		With("Items").
		OrderBy("created_at", database.DESC).
		Limit(limit).
		Offset(offset).
		All(ctx)
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}

	result := make([]*tables.Order, len(orders))
	for i := range orders {
		result[i] = &orders[i]
		os.decryptPhone(result[i])
	}

	return result, count, nil
}

// GetOrdersByUserID retrieves all orders for one customer
func (os *OrderService) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*tables.Order, error) {
	orders, err := database.Query[tables.Order](os.db).
		Where("user_id", userID).
		With("Items").
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	result := make([]*tables.Order, len(orders))
	for i := range orders {
		result[i] = &orders[i]
		os.decryptPhone(result[i])
	}

	return result, nil
}

// UpdateOrderStatus moves an order through the status machine and
// recomputes the owning profile's purchase stats. Stats are always
// recomputed from the orders table, never incremented, so cancel and
// re-open cannot drift them.
func (os *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus tables.OrderStatus) (err error) {
	order, err := os.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !os.isValidStatusTransition(order.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", lib.ErrInvalidTransition, order.Status, newStatus)
	}

	tx, err := os.db.BeginTx(ctx, nil)
	if err != nil {
		return lib.MapPgError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			os.logger.Error(fmt.Sprintf("panic in UpdateOrderStatus: %v", p))
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	_, err = tx.NewUpdate().
		Model(&tables.Order{}).
		Set("status = ?", newStatus).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", orderID).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	if order.UserID != nil {
		if err = os.recomputeProfileStatsTx(ctx, tx, *order.UserID); err != nil {
			return err
		}
	}

	os.logger.Info("Order status updated",
		gecho.Field("order_id", orderID),
		gecho.Field("old_status", order.Status),
		gecho.Field("new_status", newStatus))

	return nil
}

// isValidStatusTransition validates if a status transition is allowed.
// Delivered and canceled are terminal.
func (os *OrderService) isValidStatusTransition(current, next tables.OrderStatus) bool {
	transitions := map[tables.OrderStatus][]tables.OrderStatus{
		tables.OrderStatusPending: {
			tables.OrderStatusConfirmed,
			tables.OrderStatusCanceled,
		},
		tables.OrderStatusConfirmed: {
			tables.OrderStatusShipped,
			tables.OrderStatusCanceled,
		},
		tables.OrderStatusShipped: {
			tables.OrderStatusDelivered,
			tables.OrderStatusCanceled,
		},
		tables.OrderStatusDelivered: {},
		tables.OrderStatusCanceled:  {},
	}

	allowedNextStates, exists := transitions[current]
	if !exists {
		return false
	}

	return slices.Contains(allowedNextStates, next)
}

// RecomputeProfileStats rebuilds one profile's purchase stats on
// demand, outside any order transition.
func (os *OrderService) RecomputeProfileStats(ctx context.Context, userID uuid.UUID) error {
	return database.RunInTransaction(ctx, os.db, func(ctx context.Context, tx bun.Tx) error {
		return os.recomputeProfileStatsTx(ctx, tx, userID)
	})
}

// recomputeProfileStatsTx rebuilds a profile's purchase stats from the
// orders table inside the caller's transaction. Canceled orders never
// count. Stats are derived data; recomputing instead of incrementing
// means a missed or repeated transition can never drift them.
func (os *OrderService) recomputeProfileStatsTx(ctx context.Context, tx bun.Tx, userID uuid.UUID) error {
	_, err := tx.NewRaw(`
		UPDATE profiles SET
			total_purchases = stats.cnt,
			total_spent = stats.total,
			last_purchase_date = stats.latest,
			updated_at = now()
		FROM (
			SELECT COUNT(*) AS cnt,
			       COALESCE(SUM(total_amount), 0) AS total,
			       MAX(created_at) AS latest
			FROM orders
			WHERE user_id = ? AND status <> 'canceled'
		) AS stats
		WHERE profiles.id = ?
	`, userID, userID).Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

// decryptPhone restores the plaintext phone for display; decrypt
// failures leave the stored value in place rather than failing the read
func (os *OrderService) decryptPhone(order *tables.Order) {
	if os.cfg.Encryption.Key == "" {
		return
	}
	phone, err := lib.Decrypt(order.CustomerPhone, os.cfg.Encryption.Key)
	if err != nil {
		os.logger.Warn("Failed to decrypt customer phone", gecho.Field("error", err))
		return
	}
	order.CustomerPhone = phone
}
