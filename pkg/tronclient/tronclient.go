package tronclient

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultAPI = "https://api.trongrid.io"

type TronHTTPClient struct {
	http *resty.Client
}

func NewTronHTTPClient(baseURL, apiKey string) *TronHTTPClient {
	if baseURL == "" {
		baseURL = DefaultAPI
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		rc.SetHeader("TRON-PRO-API-KEY", apiKey)
	}
	return &TronHTTPClient{http: rc}
}

type transactionResponse struct {
	TxID string `json:"txID"`
	Ret  []struct {
		ContractRet string `json:"contractRet"`
	} `json:"ret"`
}

// TransactionConfirmed reports whether the transaction exists on chain and its
// contract execution succeeded.
func (c *TronHTTPClient) TransactionConfirmed(ctx context.Context, txID string) (bool, error) {
	txID = strings.TrimPrefix(strings.TrimSpace(txID), "0x")
	if txID == "" {
		return false, errors.New("empty transaction id")
	}

	var result transactionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"value":   txID,
			"visible": true,
		}).
		SetResult(&result).
		Post("/wallet/gettransactionbyid")
	if err != nil {
		return false, errors.Wrap(err, "get transaction")
	}
	if resp.IsError() {
		return false, errors.Errorf("trongrid responded %d", resp.StatusCode())
	}

	// An unknown id comes back as an empty object.
	if result.TxID == "" {
		logrus.Warnf("tron transaction %s not found", txID)
		return false, nil
	}
	for _, r := range result.Ret {
		if r.ContractRet != "SUCCESS" {
			return false, nil
		}
	}
	return len(result.Ret) > 0, nil
}
