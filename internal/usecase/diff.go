package usecase

import (
	"sort"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
)

// sortByTime orders transfers ascending by their ordering key. The sort is
// stable: source APIs are not guaranteed pre-sorted, and ties must keep the
// page order the fetch preserved.
func sortByTime(transfers []domain.Transfer) {
	sort.SliceStable(transfers, func(i, j int) bool {
		return transfers[i].Time < transfers[j].Time
	})
}

// DiffByTxID determines which transfers are new relative to an id-based
// watermark. With an empty watermark every entry is new, including the full
// fetched history of a first-time subscription. When the stored id is absent
// from the current window the result is empty, the watermark is returned
// unchanged and found is false; the window may simply have aged the
// transaction out, so the caller treats it as a skip rather than an error.
func DiffByTxID(transfers []domain.Transfer, lastTxID string) (fresh []domain.Transfer, updated string, found bool) {
	sortByTime(transfers)

	start := 0
	if lastTxID != "" {
		found = false
		for i, t := range transfers {
			if t.TxID == lastTxID {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, lastTxID, false
		}
	}

	fresh = transfers[start:]
	updated = lastTxID
	if len(fresh) > 0 {
		updated = fresh[len(fresh)-1].TxID
	}
	return fresh, updated, true
}

// DiffByTime determines which transfers are new relative to a
// timestamp-based watermark: strictly newer than lastTs, with a missing
// watermark treated as zero so every entry qualifies. The updated watermark
// is the highest emitted timestamp, unchanged when nothing is new.
func DiffByTime(transfers []domain.Transfer, lastTs int64) (fresh []domain.Transfer, updated int64) {
	sortByTime(transfers)

	updated = lastTs
	for _, t := range transfers {
		if t.Time > lastTs {
			fresh = append(fresh, t)
			if t.Time > updated {
				updated = t.Time
			}
		}
	}
	return fresh, updated
}
