package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDealKey(t *testing.T) {
	assert.Equal(t, "deal:coolmod:ASUS RTX 3090 TURBO:1700", DealKey("coolmod", "ASUS RTX 3090 TURBO", 1700))

	// keys for different prices of the same product must differ
	assert.NotEqual(t, DealKey("coolmod", "ASUS RTX 3090 TURBO", 1700), DealKey("coolmod", "ASUS RTX 3090 TURBO", 1650))
}
