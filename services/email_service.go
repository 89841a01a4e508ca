package services

import (
	"fmt"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderNotification mails the shop owner about a new order. The
// phone is passed separately because the stored value may be encrypted.
func (es *EmailService) SendOrderNotification(order *tables.Order, phone string) error {
	if es.cfg.Email.AdminTo == "" {
		es.logger.Warn("No admin email configured, skipping order notification",
			gecho.Field("order_number", order.OrderNumber))
		return nil
	}

	var lines strings.Builder
	for _, item := range order.Items {
		lines.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td>%s / %s</td><td>%d</td><td>%d DA</td></tr>`,
			item.ProductName, item.Color, item.Size, item.Quantity,
			item.ProductPrice*int64(item.Quantity),
		))
	}

	shippingLabel := "Bureau (stop desk)"
	if order.ShippingType == tables.ShippingTypeHome {
		shippingLabel = "Domicile"
	}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a1a2e; color: white; padding: 20px; text-align: center; }
				table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
				th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
				.total { font-weight: bold; font-size: 18px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Nouvelle commande %s</h1>
				</div>
				<p><strong>Client:</strong> %s</p>
				<p><strong>Téléphone:</strong> %s</p>
				<p><strong>Destination:</strong> %s, %s</p>
				<p><strong>Livraison:</strong> %s (%d DA)</p>
				<table>
					<tr><th>Produit</th><th>Variante</th><th>Qté</th><th>Total</th></tr>
					%s
				</table>
				<p class="total">Total: %d DA</p>
			</div>
		</body>
		</html>
	`, order.OrderNumber, order.CustomerName, phone, order.Commune, order.Wilaya,
		shippingLabel, order.ShippingCost, lines.String(), order.TotalAmount)

	subject := fmt.Sprintf("Nouvelle commande %s - %d DA", order.OrderNumber, order.TotalAmount)

	return es.SendEmail([]string{es.cfg.Email.AdminTo}, subject, body)
}
