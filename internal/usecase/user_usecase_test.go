package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOrGetUser_IsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase(repo)

	first, err := uc.StartOrGetUser(context.Background(), 10, "alice")
	require.NoError(t, err)

	second, err := uc.StartOrGetUser(context.Background(), 10, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.TelegramUserID, second.TelegramUserID)
	assert.Len(t, repo.users, 1)
}

func TestSetAddress_RegistersAndResetsWatermarks(t *testing.T) {
	user := monitoredUser(10, "kaspa:old")
	user.LastKasTxID = strPtr("old-txid")
	user.LastKRC20Ts = int64Ptr(42)
	repo := newFakeUserRepo(user)
	uc := NewUserUsecase(repo)

	require.NoError(t, uc.SetAddress(context.Background(), 10, "alice", "kaspa:new"))

	assert.Equal(t, "kaspa:new", *repo.users[10].KaspaAddress)
	assert.Nil(t, repo.users[10].LastKasTxID)
	assert.Nil(t, repo.users[10].LastKRC20Ts)
}

func TestSetAddress_CreatesUnregisteredUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUsecase(repo)

	require.NoError(t, uc.SetAddress(context.Background(), 10, "alice", "kaspa:new"))

	require.Contains(t, repo.users, int64(10))
	assert.Equal(t, "kaspa:new", *repo.users[10].KaspaAddress)
}

func TestSetTicker_RequiresRegistration(t *testing.T) {
	uc := NewUserUsecase(newFakeUserRepo())

	err := uc.SetTicker(context.Background(), 10, "xyz")

	assert.ErrorIs(t, err, ErrUserNotRegistered)
}

func TestSetTicker_NormalizesUppercase(t *testing.T) {
	repo := newFakeUserRepo(monitoredUser(10, "kaspa:addr"))
	uc := NewUserUsecase(repo)

	require.NoError(t, uc.SetTicker(context.Background(), 10, " xyz "))

	assert.Equal(t, "XYZ", *repo.users[10].KRC20Ticker)
}

func TestRemoveAddress_ClearsWatermarks(t *testing.T) {
	user := monitoredUser(10, "kaspa:addr")
	user.LastKasTxID = strPtr("txid")
	user.LastKRC20Ts = int64Ptr(42)
	repo := newFakeUserRepo(user)
	uc := NewUserUsecase(repo)

	require.NoError(t, uc.RemoveAddress(context.Background(), 10))

	assert.Nil(t, repo.users[10].KaspaAddress)
	assert.Nil(t, repo.users[10].LastKasTxID)
	assert.Nil(t, repo.users[10].LastKRC20Ts)
}

func TestRemoveTicker_ClearsTokenWatermark(t *testing.T) {
	user := monitoredUser(10, "kaspa:addr")
	user.KRC20Ticker = strPtr("XYZ")
	user.LastKRC20Ts = int64Ptr(42)
	repo := newFakeUserRepo(user)
	uc := NewUserUsecase(repo)

	require.NoError(t, uc.RemoveTicker(context.Background(), 10))

	assert.Nil(t, repo.users[10].KRC20Ticker)
	assert.Nil(t, repo.users[10].LastKRC20Ts)
}

func TestStatus_UnregisteredUser(t *testing.T) {
	uc := NewUserUsecase(newFakeUserRepo())

	_, err := uc.Status(context.Background(), 99)

	assert.ErrorIs(t, err, ErrUserNotRegistered)
}
