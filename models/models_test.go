package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	p := Product{OriginalPrice: 200, DiscountPercentage: 15}
	p.ApplyDiscount()
	assert.InDelta(t, 170.0, p.Price, 1e-9)

	p.DiscountPercentage = 0
	p.ApplyDiscount()
	assert.InDelta(t, 200.0, p.Price, 1e-9)
}

func TestAvailabilityBalanced(t *testing.T) {
	assert.True(t, NewAvailability(4).Balanced())
	assert.True(t, Availability{Total: 4, Remaining: 1, Sold: 3}.Balanced())
	assert.False(t, Availability{Total: 4, Remaining: 2, Sold: 3}.Balanced())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus(" shipped ")
	assert.True(t, ok)
	assert.Equal(t, "Shipped", status)

	status, ok = ParseOrderStatus("completed (demo)")
	assert.True(t, ok)
	assert.Equal(t, DefaultOrderStatus, status)

	_, ok = ParseOrderStatus("teleported")
	assert.False(t, ok)
}

func TestParseProductStatus(t *testing.T) {
	s, ok := ParseProductStatus("rejected")
	assert.True(t, ok)
	assert.Equal(t, ProductStatusRejected, s)

	_, ok = ParseProductStatus("APPROVED")
	assert.False(t, ok)
}
