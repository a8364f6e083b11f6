package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthvale/internal/app/ports"
	"hearthvale/internal/domain/economy"
)

func TestLog_RotatesHourlyAndRoundTrips(t *testing.T) {
	dir := t.TempDir()
	l := NewLog(dir)
	ctx := context.Background()
	base := time.Date(2026, 4, 2, 9, 15, 0, 0, time.UTC)

	result := economy.NewActionResult()
	result.Success = true
	result.Utbytte = append(result.Utbytte, economy.YieldEntry{Resource: "grain", Amount: 3})
	require.NoError(t, l.Append(ctx, ports.ArchiveRecord{ID: "a1", PlayerID: "p1", ActionType: "WORK", Result: result, OccurredAt: base}))
	require.NoError(t, l.Append(ctx, ports.ArchiveRecord{ID: "a2", PlayerID: "p1", ActionType: "MINE", OccurredAt: base.Add(10 * time.Minute)}))
	require.NoError(t, l.Append(ctx, ports.ArchiveRecord{ID: "a3", PlayerID: "p2", ActionType: "CHOP", OccurredAt: base.Add(time.Hour)}))

	require.NoError(t, l.Close())

	first, err := ReadFile(l.PathForHour("2026-04-02-09"))
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "a1", first[0].ID)
	assert.Equal(t, 3.0, first[0].Result.Utbytte[0].Amount)

	files, err := filepath.Glob(filepath.Join(dir, "actions-*.jsonl.zst"))
	require.NoError(t, err)
	assert.Len(t, files, 2)

	second, err := ReadFile(l.PathForHour("2026-04-02-10"))
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "CHOP", second[0].ActionType)
}

func TestLog_ReopenAppendsNewFrame(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	l := NewLog(dir)
	require.NoError(t, l.Append(context.Background(), ports.ArchiveRecord{ID: "a1", OccurredAt: at}))
	require.NoError(t, l.Close())

	l = NewLog(dir)
	require.NoError(t, l.Append(context.Background(), ports.ArchiveRecord{ID: "a2", OccurredAt: at.Add(time.Minute)}))
	require.NoError(t, l.Close())

	got, err := ReadFile(l.PathForHour("2026-04-02-09"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[1].ID)
}
