package services

import (
	"ouardatie_server/structs/tables"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatusTransition(t *testing.T) {
	os := &OrderService{}

	tests := []struct {
		current tables.OrderStatus
		next    tables.OrderStatus
		want    bool
	}{
		{tables.OrderStatusPending, tables.OrderStatusConfirmed, true},
		{tables.OrderStatusPending, tables.OrderStatusCanceled, true},
		{tables.OrderStatusPending, tables.OrderStatusShipped, false},
		{tables.OrderStatusPending, tables.OrderStatusDelivered, false},

		{tables.OrderStatusConfirmed, tables.OrderStatusShipped, true},
		{tables.OrderStatusConfirmed, tables.OrderStatusCanceled, true},
		{tables.OrderStatusConfirmed, tables.OrderStatusPending, false},
		{tables.OrderStatusConfirmed, tables.OrderStatusDelivered, false},

		{tables.OrderStatusShipped, tables.OrderStatusDelivered, true},
		{tables.OrderStatusShipped, tables.OrderStatusCanceled, true},
		{tables.OrderStatusShipped, tables.OrderStatusConfirmed, false},

		// Delivered and canceled are terminal
		{tables.OrderStatusDelivered, tables.OrderStatusCanceled, false},
		{tables.OrderStatusDelivered, tables.OrderStatusPending, false},
		{tables.OrderStatusCanceled, tables.OrderStatusPending, false},
		{tables.OrderStatusCanceled, tables.OrderStatusConfirmed, false},

		// No-op transitions are rejected
		{tables.OrderStatusPending, tables.OrderStatusPending, false},
	}

	for _, tt := range tests {
		got := os.isValidStatusTransition(tt.current, tt.next)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.current, tt.next)
	}
}
