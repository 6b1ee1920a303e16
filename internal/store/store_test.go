package store

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasscan/glasscan/internal/types"
)

func result(id, target string, started time.Time) types.ScanResult {
	return types.ScanResult{
		ID:          id,
		Target:      target,
		Status:      types.StatusCompleted,
		StartedAt:   started,
		CompletedAt: started.Add(2 * time.Second),
		Summary: types.Summary{
			Total:      1,
			BySeverity: map[types.Severity]int{types.SevHigh: 1},
			RiskScore:  42,
			Grade:      "C",
		},
	}
}

func TestStoreRoundtrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	want := result("scan-1", "https://app.shop.io", base)
	require.NoError(t, s.Save(want))

	got, err := s.Load("scan-1")
	require.NoError(t, err)
	assert.Equal(t, want.Target, got.Target)
	assert.Equal(t, "C", got.Summary.Grade)
}

func TestStoreListMostRecentFirst(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, s.Save(result(id, "https://a", base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[2].ID)

	latest, err := s.Latest("https://a")
	require.NoError(t, err)
	assert.Equal(t, "new", latest.ID)

	_, err = s.Latest("https://other")
	assert.True(t, os.IsNotExist(err), "unknown target error = %v", err)
}

func TestStorePrune(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		require.NoError(t, s.Save(result(id, "https://a", base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, s.Prune(2))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "e", all[0].ID)
	assert.Equal(t, "d", all[1].ID)
}

func TestHistoryAppendsAndReverses(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(result("first", "https://a", base)))
	require.NoError(t, s.Save(result("second", "https://a", base.Add(time.Hour))))

	records, err := s.History()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].ScanID)
	assert.Equal(t, 1, records[0].SeverityCounts["high"])
	assert.Equal(t, "C", records[0].Grade)
}
