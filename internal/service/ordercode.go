package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

// Alphabet for order codes; ambiguous glyphs (0/O, 1/I/L) are left out so
// customers can read the code back over the phone.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 6

// generateOrderCode produces a short human-readable tracking code.
// Uniqueness is enforced by the database; collisions are retried by callers.
func generateOrderCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate order code: %w", err)
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf), nil
}

// createOrderWithCode runs the order transaction, regenerating the code on a
// uniqueness collision up to the retry budget.
func createOrderWithCode(ctx context.Context, st *store.Store, params *store.CreateOrderParams, retries int) (*models.Order, error) {
	for attempt := 0; attempt <= retries; attempt++ {
		code, err := generateOrderCode()
		if err != nil {
			return nil, err
		}
		params.Code = code

		order, err := st.CreateOrderTx(ctx, params)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, store.ErrCodeTaken) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to allocate a unique order code after %d attempts", retries+1)
}
