package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Checkout{BookID: "B1", CheckoutMonth: 1}).Validate())
	assert.NoError(t, (&Checkout{BookID: "B1", CheckoutMonth: 12, NumberOfCheckouts: 40}).Validate())
	assert.ErrorIs(t, (&Checkout{CheckoutMonth: 0}).Validate(), ErrInvalidMonth)
	assert.ErrorIs(t, (&Checkout{CheckoutMonth: 13}).Validate(), ErrInvalidMonth)
	assert.ErrorIs(t, (&Checkout{CheckoutMonth: 3, NumberOfCheckouts: -1}).Validate(), ErrNegativeCount)
}
