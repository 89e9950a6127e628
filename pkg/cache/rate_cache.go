package cache

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CachedRate struct {
	Rate      decimal.Decimal
	Timestamp time.Time
}

// RateCache keeps USD quotes per price id for a fixed duration.
type RateCache struct {
	mu       sync.Mutex
	rates    map[string]CachedRate
	duration time.Duration
	now      func() time.Time
}

func NewRateCache(duration time.Duration) *RateCache {
	return &RateCache{
		rates:    make(map[string]CachedRate),
		duration: duration,
		now:      time.Now,
	}
}

// Get returns the cached rate, or false if it is missing or stale.
func (c *RateCache) Get(key string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rateData, ok := c.rates[key]
	if !ok {
		return decimal.Zero, false
	}

	if c.now().Sub(rateData.Timestamp) > c.duration {
		delete(c.rates, key)
		return decimal.Zero, false
	}

	logrus.Debugf("rate for %s served from cache", key)
	return rateData.Rate, true
}

func (c *RateCache) Set(key string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rates[key] = CachedRate{
		Rate:      rate,
		Timestamp: c.now(),
	}

	logrus.Debugf("rate for %s cached", key)
}
