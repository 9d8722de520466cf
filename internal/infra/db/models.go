package db

import (
	"time"

	"gorm.io/gorm"
)

type userModel struct {
	ID             uint    `gorm:"primaryKey"`
	TelegramUserID int64   `gorm:"uniqueIndex;not null"`
	Username       string  `gorm:""`
	KaspaAddress   *string `gorm:"column:kaspa_address;index"`
	KRC20Ticker    *string `gorm:"column:krc20_ticker"`
	LastKasTxID    *string `gorm:"column:last_kas_txid"`
	LastKRC20Ts    *int64  `gorm:"column:last_krc20_ts"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
