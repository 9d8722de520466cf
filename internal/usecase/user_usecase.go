package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
)

var ErrUserNotRegistered = errors.New("user not registered")

type UserUsecase struct {
	users domain.UserRepository
}

func NewUserUsecase(users domain.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) StartOrGetUser(ctx context.Context, telegramUserID int64, username string) (*domain.User, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err == nil {
		return user, nil
	}
	if err != domain.ErrNotFound {
		return nil, err
	}

	newUser := &domain.User{
		TelegramUserID: telegramUserID,
		Username:       username,
	}
	if err := u.users.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// SetAddress registers the user if needed and points monitoring at the
// address. Watermark resets are the repository's concern.
func (u *UserUsecase) SetAddress(ctx context.Context, telegramUserID int64, username, address string) error {
	if _, err := u.StartOrGetUser(ctx, telegramUserID, username); err != nil {
		return err
	}
	return u.users.SetAddress(ctx, telegramUserID, &address)
}

func (u *UserUsecase) SetTicker(ctx context.Context, telegramUserID int64, ticker string) error {
	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	err := u.users.SetTicker(ctx, telegramUserID, &normalized)
	if err == domain.ErrNotFound {
		return ErrUserNotRegistered
	}
	return err
}

func (u *UserUsecase) RemoveAddress(ctx context.Context, telegramUserID int64) error {
	err := u.users.SetAddress(ctx, telegramUserID, nil)
	if err == domain.ErrNotFound {
		return ErrUserNotRegistered
	}
	return err
}

func (u *UserUsecase) RemoveTicker(ctx context.Context, telegramUserID int64) error {
	err := u.users.SetTicker(ctx, telegramUserID, nil)
	if err == domain.ErrNotFound {
		return ErrUserNotRegistered
	}
	return err
}

func (u *UserUsecase) Status(ctx context.Context, telegramUserID int64) (*domain.User, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err == domain.ErrNotFound {
		return nil, ErrUserNotRegistered
	}
	return user, err
}
