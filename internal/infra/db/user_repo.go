package db

import (
	"context"
	"time"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramUserID int64) (*domain.User, error) {
	var model userModel
	if err := r.db.WithContext(ctx).Where("telegram_user_id = ?", telegramUserID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapUserToDomain(model), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	model := mapUserToModel(*user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) ListWithAddress(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).
		Where("kaspa_address IS NOT NULL AND kaspa_address <> ''").
		Order("id").
		Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(models))
	for _, model := range models {
		users = append(users, *mapUserToDomain(model))
	}
	return users, nil
}

// SetAddress changes the monitored address. Watermarks describe the previous
// subject, so both are reset on any address change and cleared together with
// the address.
func (r *UserRepository) SetAddress(ctx context.Context, telegramUserID int64, address *string) error {
	updates := map[string]interface{}{
		"kaspa_address": address,
		"last_kas_txid": nil,
		"last_krc20_ts": nil,
	}
	return r.updateUser(ctx, telegramUserID, updates)
}

func (r *UserRepository) SetTicker(ctx context.Context, telegramUserID int64, ticker *string) error {
	updates := map[string]interface{}{
		"krc20_ticker":  ticker,
		"last_krc20_ts": nil,
	}
	return r.updateUser(ctx, telegramUserID, updates)
}

func (r *UserRepository) SetLastKasTxID(ctx context.Context, telegramUserID int64, txid string) error {
	return r.updateUser(ctx, telegramUserID, map[string]interface{}{"last_kas_txid": txid})
}

func (r *UserRepository) SetLastKRC20Ts(ctx context.Context, telegramUserID int64, ts int64) error {
	return r.updateUser(ctx, telegramUserID, map[string]interface{}{"last_krc20_ts": ts})
}

func (r *UserRepository) updateUser(ctx context.Context, telegramUserID int64, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("telegram_user_id = ?", telegramUserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapUserToDomain(model userModel) *domain.User {
	var deleted *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deleted = &t
	}
	return &domain.User{
		ID:             model.ID,
		TelegramUserID: model.TelegramUserID,
		Username:       model.Username,
		KaspaAddress:   model.KaspaAddress,
		KRC20Ticker:    model.KRC20Ticker,
		LastKasTxID:    model.LastKasTxID,
		LastKRC20Ts:    model.LastKRC20Ts,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
		DeletedAt:      deleted,
	}
}

func mapUserToModel(user domain.User) userModel {
	return userModel{
		ID:             user.ID,
		TelegramUserID: user.TelegramUserID,
		Username:       user.Username,
		KaspaAddress:   user.KaspaAddress,
		KRC20Ticker:    user.KRC20Ticker,
		LastKasTxID:    user.LastKasTxID,
		LastKRC20Ts:    user.LastKRC20Ts,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
