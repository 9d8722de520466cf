package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// UserRepository is the durable subscription and watermark store shared by
// the command handlers and the monitor loop. All writes are atomic at the
// row level.
type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramUserID int64) (*User, error)
	Create(ctx context.Context, user *User) error

	// ListWithAddress returns every subscription with a non-null address,
	// the polled set for one monitor cycle.
	ListWithAddress(ctx context.Context) ([]User, error)

	// SetAddress updates the monitored address. A nil address clears it
	// together with both watermarks; a new address resets both watermarks.
	SetAddress(ctx context.Context, telegramUserID int64, address *string) error

	// SetTicker updates the monitored token ticker. A nil ticker clears it
	// together with the token watermark; a new ticker resets the token
	// watermark.
	SetTicker(ctx context.Context, telegramUserID int64, ticker *string) error

	SetLastKasTxID(ctx context.Context, telegramUserID int64, txid string) error
	SetLastKRC20Ts(ctx context.Context, telegramUserID int64, ts int64) error
}
