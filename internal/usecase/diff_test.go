package usecase

import (
	"testing"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transfersWithTimes(times ...int64) []domain.Transfer {
	transfers := make([]domain.Transfer, 0, len(times))
	for i, ts := range times {
		transfers = append(transfers, domain.Transfer{
			TxID: string(rune('a' + i)),
			Time: ts,
		})
	}
	return transfers
}

func TestDiffByTxID_NoWatermarkEmitsAll(t *testing.T) {
	// Absent watermark means the whole fetched history is new, observed
	// first-run behavior kept on purpose.
	transfers := transfersWithTimes(5, 1, 3)

	fresh, updated, found := DiffByTxID(transfers, "")

	require.True(t, found)
	require.Len(t, fresh, 3)
	assert.Equal(t, []int64{1, 3, 5}, timesOf(fresh))
	// Watermark is the id of the chronologically last entry.
	assert.Equal(t, "a", updated)
}

func TestDiffByTxID_Idempotent(t *testing.T) {
	transfers := transfersWithTimes(5, 1, 3)

	_, updated, found := DiffByTxID(transfers, "")
	require.True(t, found)

	fresh, second, found := DiffByTxID(transfersWithTimes(5, 1, 3), updated)
	require.True(t, found)
	assert.Empty(t, fresh)
	assert.Equal(t, updated, second)
}

func TestDiffByTxID_EmitsOnlyEntriesAfterWatermark(t *testing.T) {
	transfers := []domain.Transfer{
		{TxID: "t3", Time: 3},
		{TxID: "t1", Time: 1},
		{TxID: "t5", Time: 5},
		{TxID: "t9", Time: 9},
	}

	fresh, updated, found := DiffByTxID(transfers, "t3")

	require.True(t, found)
	require.Len(t, fresh, 2)
	assert.Equal(t, "t5", fresh[0].TxID)
	assert.Equal(t, "t9", fresh[1].TxID)
	assert.Equal(t, "t9", updated)
}

func TestDiffByTxID_WatermarkAbsentFromWindow(t *testing.T) {
	transfers := transfersWithTimes(1, 2, 3)

	fresh, updated, found := DiffByTxID(transfers, "aged-out")

	assert.False(t, found)
	assert.Empty(t, fresh)
	assert.Equal(t, "aged-out", updated)
}

func TestDiffByTxID_SortIsStable(t *testing.T) {
	transfers := []domain.Transfer{
		{TxID: "first", Time: 7},
		{TxID: "second", Time: 7},
		{TxID: "third", Time: 7},
	}

	fresh, _, found := DiffByTxID(transfers, "")

	require.True(t, found)
	require.Len(t, fresh, 3)
	assert.Equal(t, "first", fresh[0].TxID)
	assert.Equal(t, "second", fresh[1].TxID)
	assert.Equal(t, "third", fresh[2].TxID)
}

func TestDiffByTime_NoWatermarkEmitsAll(t *testing.T) {
	fresh, updated := DiffByTime(transfersWithTimes(5, 1, 3), 0)

	require.Len(t, fresh, 3)
	assert.Equal(t, []int64{1, 3, 5}, timesOf(fresh))
	assert.Equal(t, int64(5), updated)
}

func TestDiffByTime_StrictlyGreaterThanWatermark(t *testing.T) {
	fresh, updated := DiffByTime(transfersWithTimes(5, 1, 3), 3)

	require.Len(t, fresh, 1)
	assert.Equal(t, int64(5), fresh[0].Time)
	assert.Equal(t, int64(5), updated)
}

func TestDiffByTime_Idempotent(t *testing.T) {
	_, updated := DiffByTime(transfersWithTimes(5, 1, 3), 0)

	fresh, second := DiffByTime(transfersWithTimes(5, 1, 3), updated)
	assert.Empty(t, fresh)
	assert.Equal(t, updated, second)
}

func timesOf(transfers []domain.Transfer) []int64 {
	times := make([]int64, 0, len(transfers))
	for _, t := range transfers {
		times = append(times, t.Time)
	}
	return times
}
