package services

import (
	"errors"
	"testing"

	"ouardatie_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCartStore stands in for the Redis-backed cache; flipping down
// simulates an outage.
type stubCartStore struct {
	carts map[string]*structs.Cart
	down  bool
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: make(map[string]*structs.Cart)}
}

func (s *stubCartStore) GetCart(token string) (*structs.Cart, error) {
	if s.down {
		return nil, errors.New("connection refused")
	}
	return s.carts[token], nil
}

func (s *stubCartStore) SetCart(token string, cart *structs.Cart) error {
	if s.down {
		return errors.New("connection refused")
	}
	s.carts[token] = cart
	return nil
}

func (s *stubCartStore) DeleteCart(token string) error {
	if s.down {
		return errors.New("connection refused")
	}
	delete(s.carts, token)
	return nil
}

func newTestCartService(store cartStore) *CartService {
	return &CartService{
		logger:   gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.LogLevelError))),
		store:    store,
		fallback: make(map[string]*structs.Cart),
	}
}

// A cart parked in the fallback map during an outage must still be
// served after the cache recovers, until a successful write moves it
// back.
func TestCartFallbackSurvivesCacheRecovery(t *testing.T) {
	store := newStubCartStore()
	cs := newTestCartService(store)

	store.down = true
	cart := cs.GetCart("token-1")
	cart.AddItem(structs.CartItem{ProductID: uuid.New(), Price: 1500, Quantity: 2})
	cs.saveCart(cart)

	store.down = false
	recovered := cs.GetCart("token-1")
	require.NotNil(t, recovered)
	assert.Equal(t, 2, recovered.TotalItems())

	// A successful save drains the fallback and lands in the store
	cs.saveCart(recovered)
	assert.Empty(t, cs.fallback)
	assert.Contains(t, store.carts, "token-1")
}

// Fallback reads hand out copies; mutating the returned cart must not
// leak into the shared entry.
func TestCartFallbackReturnsCopy(t *testing.T) {
	store := newStubCartStore()
	cs := newTestCartService(store)
	productID := uuid.New()

	store.down = true
	cart := cs.GetCart("token-1")
	cart.AddItem(structs.CartItem{ProductID: productID, Price: 1500, Quantity: 1})
	cs.saveCart(cart)

	first := cs.GetCart("token-1")
	first.AddItem(structs.CartItem{ProductID: productID, Quantity: 5})

	second := cs.GetCart("token-1")
	assert.Equal(t, 1, second.TotalItems())
}

func TestGetCartReturnsEmptyCartOnMiss(t *testing.T) {
	cs := newTestCartService(newStubCartStore())

	cart := cs.GetCart("token-1")
	require.NotNil(t, cart)
	assert.Equal(t, "token-1", cart.Token)
	assert.Empty(t, cart.Items)
}

func TestClearCartDropsFallbackEntry(t *testing.T) {
	store := newStubCartStore()
	cs := newTestCartService(store)

	store.down = true
	cart := cs.GetCart("token-1")
	cart.AddItem(structs.CartItem{ProductID: uuid.New(), Quantity: 1})
	cs.saveCart(cart)

	store.down = false
	cs.ClearCart("token-1")
	assert.Empty(t, cs.GetCart("token-1").Items)
}
