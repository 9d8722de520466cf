package kaspa

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAddress = "kaspa:qz0testaddress"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, zap.NewNop())
}

func TestIncomingTransactions_NormalizesAndFilters(t *testing.T) {
	body := fmt.Sprintf(`[
		{
			"transaction_id": "tx-in",
			"block_time": 100,
			"outputs": [
				{"amount": 100000000, "script_public_key_address": %q},
				{"amount": 50000000, "script_public_key_address": %q},
				{"amount": 999, "script_public_key_address": "kaspa:other"}
			],
			"inputs": [{"previous_outpoint_address": "kaspa:sender"}]
		},
		{
			"transaction_id": "tx-out",
			"block_time": 200,
			"outputs": [{"amount": 7, "script_public_key_address": "kaspa:other"}],
			"inputs": []
		},
		{
			"transaction_id": "",
			"block_time": 300,
			"outputs": [{"amount": 7, "script_public_key_address": %q}]
		},
		{
			"transaction_id": "tx-no-inputs",
			"block_time": 400,
			"outputs": [{"amount": 42, "script_public_key_address": %q}],
			"inputs": []
		}
	]`, testAddress, testAddress, testAddress, testAddress)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/addresses/"+testAddress+"/full-transactions", r.URL.Path)
		fmt.Fprint(w, body)
	})

	transfers, err := client.IncomingTransactions(context.Background(), testAddress)

	require.NoError(t, err)
	require.Len(t, transfers, 2)
	// Outgoing-only and malformed records are dropped, amounts to the
	// address are summed, sender comes from the first input.
	assert.Equal(t, domain.Transfer{
		TxID:   "tx-in",
		Time:   100,
		Amount: "150000000",
		From:   "kaspa:sender",
	}, transfers[0])
	assert.Equal(t, domain.UnknownSender, transfers[1].From)
	assert.Equal(t, "42", transfers[1].Amount)
}

func TestIncomingTransactions_EmptyHistoryIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	transfers, err := client.IncomingTransactions(context.Background(), testAddress)

	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestIncomingTransactions_ServerErrorIsSourceUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.IncomingTransactions(context.Background(), testAddress)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}

func TestIncomingTransactions_TransportErrorIsSourceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(server.URL, time.Second, zap.NewNop())

	_, err := client.IncomingTransactions(context.Background(), testAddress)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}
