package cache

import (
	"fmt"
	"time"
)

// Cache is the contract the notifier uses to remember which deals were
// already alerted on. A missing key returns an error from Get.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
}

// DealKey builds the seen-cache key for one deal record
func DealKey(seller, name string, price int) string {
	return fmt.Sprintf("deal:%s:%s:%d", seller, name, price)
}
