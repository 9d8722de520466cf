package kasplex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
	"go.uber.org/zap"
)

// pageLimit matches the single page of history the indexer is asked for;
// deeper history is out of scope.
const pageLimit = 20

// Client talks to the Kasplex indexer API and normalizes KRC20 operation
// history into incoming transfers for one (address, ticker) pair.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// IncomingTransfers returns one transfer per operation of type "transfer"
// whose destination is the address and whose tick matches the ticker
// case-insensitively, in the order the API returned them.
func (c *Client) IncomingTransfers(ctx context.Context, address, ticker string) ([]domain.Transfer, error) {
	endpoint := fmt.Sprintf("%s/api/v1/krc20/address/%s/txs?limit=%d", c.baseURL, url.PathEscape(address), pageLimit)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c.logger.Debug("kasplex request start", zap.String("address", address), zap.String("ticker", ticker), zap.String("url", endpoint))
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Error("kasplex request failed", zap.String("address", address), zap.Error(err))
		return nil, fmt.Errorf("kasplex api: %v: %w", err, domain.ErrSourceUnavailable)
	}
	defer response.Body.Close()

	c.logger.Debug(
		"kasplex request complete",
		zap.String("address", address),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("kasplex api: status %d: %w", response.StatusCode, domain.ErrSourceUnavailable)
	}

	var payload txsResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("kasplex api: decode: %w", err)
	}

	var transfers []domain.Transfer
	for _, tx := range payload.Data {
		if tx.TxID == "" || tx.Time == 0 {
			continue
		}
		for _, op := range tx.Operations {
			if op.Op != "transfer" || op.To != address {
				continue
			}
			if !strings.EqualFold(op.Tick, ticker) {
				continue
			}
			from := op.From
			if from == "" {
				from = domain.UnknownSender
			}
			transfers = append(transfers, domain.Transfer{
				TxID:   tx.TxID,
				Time:   tx.Time,
				Amount: op.Amt,
				Ticker: strings.ToUpper(ticker),
				From:   from,
			})
		}
	}

	return transfers, nil
}
