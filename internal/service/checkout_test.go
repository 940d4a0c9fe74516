package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutRequestValidate(t *testing.T) {
	valid := CheckoutRequest{Name: "Budi", Phone: "0812345", Address: "Jl. Merdeka 1"}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name  string
		req   CheckoutRequest
		field string
	}{
		{"missing name", CheckoutRequest{Phone: "0812345", Address: "Jl. Merdeka 1"}, "name"},
		{"blank name", CheckoutRequest{Name: "   ", Phone: "0812345", Address: "Jl. Merdeka 1"}, "name"},
		{"missing phone", CheckoutRequest{Name: "Budi", Address: "Jl. Merdeka 1"}, "phone"},
		{"missing address", CheckoutRequest{Name: "Budi", Phone: "0812345"}, "address"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()

			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestCheckoutEndToEnd(t *testing.T) {
	t.Skip("Integration test - requires database and Redis")
}
