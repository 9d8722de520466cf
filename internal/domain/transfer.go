package domain

import (
	"context"
	"errors"
)

// ErrSourceUnavailable marks a non-2xx response or transport failure from
// either external API. The pipeline that hit it is abandoned for the pass;
// an empty result set is not an error.
var ErrSourceUnavailable = errors.New("source api unavailable")

// UnknownSender is the counterparty sentinel used when a source record
// carries no sender address.
const UnknownSender = "Unknown"

// Transfer is an incoming transfer normalized from either source API.
// Time is the ordering key: block time for native transactions, transfer
// timestamp for token operations, both in the source's epoch units.
// Amount is sompi base units for native transfers and the raw amount string
// as reported by the indexer for token transfers.
type Transfer struct {
	TxID   string
	Time   int64
	Amount string
	Ticker string
	From   string
}

// KaspaClient fetches native-coin transaction history for one address.
type KaspaClient interface {
	IncomingTransactions(ctx context.Context, address string) ([]Transfer, error)
}

// KasplexClient fetches token transfer history for one (address, ticker)
// pair.
type KasplexClient interface {
	IncomingTransfers(ctx context.Context, address, ticker string) ([]Transfer, error)
}
