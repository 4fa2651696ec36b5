package orderControllers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonlux/storefront-api/models"
)

func TestMapOrderStatus(t *testing.T) {
	status, err := mapOrderStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, status)

	_, err = mapOrderStatus("teleported")
	assert.Error(t, err)
}

func TestMapPaymentStatus(t *testing.T) {
	status, err := mapPaymentStatus("REFUNDED")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, status)

	_, err = mapPaymentStatus("")
	assert.Error(t, err)
}

func TestGenerateOrderRefFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{14}-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		ref := generateOrderRef()
		assert.Regexp(t, pattern, ref)
		assert.False(t, seen[ref], "order refs must not repeat")
		seen[ref] = true
	}
}
