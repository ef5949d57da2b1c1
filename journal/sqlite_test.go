package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteJournalRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fxbot.sqlite")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	rec := sampleRecord()
	require.NoError(t, j.Record(rec))

	got, err := j.GetTrade(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Instrument, got.Instrument)
	assert.Equal(t, rec.Action, got.Action)
	assert.Equal(t, rec.Units, got.Units)
	assert.InDelta(t, rec.Price, got.Price, 1e-9)
	assert.InDelta(t, rec.RiskAmount, got.RiskAmount, 1e-9)
	assert.InDelta(t, rec.Balance, got.Balance, 1e-9)
	assert.True(t, rec.Time.Equal(got.Time))
}

func TestSQLiteJournalGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "fxbot.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	_, err = j.GetTrade("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteJournalListTradesBetween(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "fxbot.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := sampleRecord()
		rec.ID = rec.ID[:len(rec.ID)-1] + string(rune('0'+i))
		rec.Time = base.Add(time.Duration(i) * 24 * time.Hour)
		require.NoError(t, j.Record(rec))
	}

	day := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	recs, err := j.ListTradesBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Time.Equal(base.Add(24*time.Hour)))
}
