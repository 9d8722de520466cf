package kaspa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
	"go.uber.org/zap"
)

// Client talks to the Kaspa REST API and normalizes full-transaction
// history into incoming transfers for one address.
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

// IncomingTransactions returns transfers with a positive incoming amount to
// the address, in the order the API returned them. An empty history is a
// valid empty result, not an error.
func (c *Client) IncomingTransactions(ctx context.Context, address string) ([]domain.Transfer, error) {
	endpoint := fmt.Sprintf("%s/addresses/%s/full-transactions", c.baseURL, url.PathEscape(address))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c.logger.Debug("kaspa request start", zap.String("address", address), zap.String("url", endpoint))
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Error("kaspa request failed", zap.String("address", address), zap.Error(err))
		return nil, fmt.Errorf("kaspa api: %v: %w", err, domain.ErrSourceUnavailable)
	}
	defer response.Body.Close()

	c.logger.Debug(
		"kaspa request complete",
		zap.String("address", address),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("kaspa api: status %d: %w", response.StatusCode, domain.ErrSourceUnavailable)
	}

	var payload []fullTransaction
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("kaspa api: decode: %w", err)
	}

	transfers := make([]domain.Transfer, 0, len(payload))
	for _, tx := range payload {
		// Missing id or block time is malformed data, not an error.
		if tx.TransactionID == "" || tx.BlockTime == 0 {
			continue
		}
		var incoming uint64
		for _, out := range tx.Outputs {
			if out.ScriptPublicKeyAddress == address {
				incoming += out.Amount
			}
		}
		if incoming == 0 {
			continue
		}
		from := domain.UnknownSender
		if len(tx.Inputs) > 0 && tx.Inputs[0].PreviousOutpointAddress != "" {
			from = tx.Inputs[0].PreviousOutpointAddress
		}
		transfers = append(transfers, domain.Transfer{
			TxID:   tx.TransactionID,
			Time:   tx.BlockTime,
			Amount: strconv.FormatUint(incoming, 10),
			From:   from,
		})
	}

	return transfers, nil
}
