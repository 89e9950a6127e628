package coingecko

import (
	"context"
	"strings"
	"time"

	"exchange_back/pkg/cache"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

var ErrNoRate = errors.New("no usable rate returned")

// Client quotes USD prices from the CoinGecko simple/price endpoint.
type Client struct {
	http  *resty.Client
	cache *cache.RateCache
}

func NewClient(baseURL, apiKey string, rates *cache.RateCache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		rc.SetHeader("x-cg-demo-api-key", apiKey)
	}
	return &Client{http: rc, cache: rates}
}

// USDRate returns the USD price for a CoinGecko id or ticker symbol.
func (c *Client) USDRate(ctx context.Context, symbol string) (decimal.Decimal, error) {
	id := CurrencyID(symbol)
	if id == "" {
		return decimal.Zero, errors.New("empty price id")
	}
	if rate, found := c.cache.Get(id); found {
		return rate, nil
	}

	logrus.Infof("requesting CoinGecko price for %s", id)
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"ids": id, "vs_currencies": "usd"}).
		SetResult(map[string]map[string]decimal.Decimal{}).
		Get("/simple/price")
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "coingecko request")
	}
	if resp.IsError() {
		return decimal.Zero, errors.Errorf("coingecko responded %d", resp.StatusCode())
	}

	data := *resp.Result().(*map[string]map[string]decimal.Decimal)
	rate := data[id]["usd"]
	if !rate.IsPositive() {
		return decimal.Zero, ErrNoRate
	}

	c.cache.Set(id, rate)
	return rate, nil
}

// CurrencyID maps common tickers to CoinGecko ids; anything else is used as is.
func CurrencyID(symbol string) string {
	switch s := strings.ToLower(strings.TrimSpace(symbol)); s {
	case "usdt":
		return "tether"
	case "usdc":
		return "usd-coin"
	case "btc":
		return "bitcoin"
	case "eth":
		return "ethereum"
	case "trx":
		return "tron"
	case "bnb":
		return "binancecoin"
	default:
		return s
	}
}
