package lib

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutBody struct {
	CustomerName string `json:"customer_name" validate:"required,min=2,max=100"`
	Wilaya       string `json:"wilaya" validate:"required"`
	ShippingType string `json:"shipping_type" validate:"required,oneof=desk home"`
}

func TestExtractAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/orders/checkout", strings.NewReader(
		`{"customer_name":"Amina","wilaya":"Alger","shipping_type":"desk"}`,
	))

	body, err := ExtractAndValidateBody[checkoutBody](r)
	require.NoError(t, err)
	assert.Equal(t, "Amina", body.CustomerName)
	assert.Equal(t, "desk", body.ShippingType)
}

func TestExtractAndValidateBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/orders/checkout", strings.NewReader(
		`{"customer_name":"Amina","wilaya":"Alger","shipping_type":"desk","extra":true}`,
	))

	_, err := ExtractAndValidateBody[checkoutBody](r)
	assert.Error(t, err)
}

func TestExtractAndValidateBodyReportsFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/orders/checkout", strings.NewReader(
		`{"customer_name":"A","shipping_type":"pigeon"}`,
	))

	_, err := ExtractAndValidateBody[checkoutBody](r)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok, "expected a structured validation error")
	require.Len(t, ve.Errors, 3)

	fields := make(map[string]string, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be at least 2 characters", fields["customername"])
	assert.Equal(t, "is required", fields["wilaya"])
	assert.Equal(t, "must be one of: desk home", fields["shippingtype"])
}
