package domain

import "time"

// User is a Telegram account with its monitoring subscription. The optional
// fields gate the monitor: no KaspaAddress means the user is never polled,
// no KRC20Ticker means only native transfers are watched.
type User struct {
	ID             uint
	TelegramUserID int64
	Username       string
	KaspaAddress   *string
	KRC20Ticker    *string
	LastKasTxID    *string
	LastKRC20Ts    *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// HasAddress reports whether the user belongs to the polled set.
func (u *User) HasAddress() bool {
	return u.KaspaAddress != nil && *u.KaspaAddress != ""
}

// HasTicker reports whether the token pipeline runs for the user.
func (u *User) HasTicker() bool {
	return u.KRC20Ticker != nil && *u.KRC20Ticker != ""
}
