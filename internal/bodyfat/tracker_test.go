package bodyfat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/body-progress-go-api/internal/kv"
	"lg/body-progress-go-api/internal/logger"
	"lg/body-progress-go-api/internal/metrics"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecord_Male(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	tr := NewTracker(mem, logger.NewNop(), fixedClock(time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)))

	rec, err := tr.Record(ctx, metrics.BodyMeasurements{NeckCircumference: 38, WaistCircumference: 85}, metrics.Male, 175)
	require.NoError(t, err)
	assert.Equal(t, 23.5, rec.BodyFat)
	assert.Equal(t, "2026-10-16", rec.Date.String())

	raw, err := mem.Get(ctx, kv.KeyBodyFatHistory)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"2026-10-16","bodyFat":23.5}]`, string(raw))
}

func TestRecord_UsesUTCDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-10-17 07:00 in Tokyo is still the 16th in UTC.
	tr := NewTracker(kv.NewMemoryStore(), logger.NewNop(), fixedClock(time.Date(2026, 10, 17, 7, 0, 0, 0, tokyo)))

	hip := 95.0
	rec, err := tr.Record(context.Background(),
		metrics.BodyMeasurements{NeckCircumference: 32, WaistCircumference: 70, HipCircumference: &hip},
		metrics.Female, 165)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", rec.Date.String())
	assert.Equal(t, 51.6, rec.BodyFat)
}

func TestRecord_CalculationErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	tr := NewTracker(mem, logger.NewNop(), nil)

	_, err := tr.Record(ctx, metrics.BodyMeasurements{NeckCircumference: 32, WaistCircumference: 70}, metrics.Female, 165)
	assert.ErrorIs(t, err, metrics.ErrMissingHip)

	_, err = tr.Record(ctx, metrics.BodyMeasurements{NeckCircumference: 90, WaistCircumference: 85}, metrics.Male, 175)
	assert.ErrorIs(t, err, metrics.ErrInvalidMeasurement)

	_, err = mem.Get(ctx, kv.KeyBodyFatHistory)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestHistoryAndRecent(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(kv.NewMemoryStore(), logger.NewNop(), func() time.Time {
		d := day
		day = day.AddDate(0, 0, 1)
		return d
	})

	empty, err := tr.History(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for waist := 80.0; waist < 90; waist++ {
		_, err := tr.Record(ctx, metrics.BodyMeasurements{NeckCircumference: 38, WaistCircumference: waist}, metrics.Male, 175)
		require.NoError(t, err)
	}

	all, err := tr.History(ctx)
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, "2026-10-01", all[0].Date.String())
	assert.Equal(t, "2026-10-10", all[9].Date.String())

	recent, err := tr.Recent(ctx, ChartWindow)
	require.NoError(t, err)
	require.Len(t, recent, 7)
	assert.Equal(t, all[3:], recent)

	unbounded, err := tr.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, unbounded, 10)
}

func TestHistory_AcceptsClientBlob(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, kv.KeyBodyFatHistory,
		[]byte(`[{"date":"2024-05-01","bodyFat":18.2},{"date":"2024-05-08T00:00:00.000Z","bodyFat":17.9}]`)))

	history, err := NewTracker(mem, logger.NewNop(), nil).History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-05-08", history[1].Date.String())
	assert.Equal(t, 17.9, history[1].BodyFat)
}

type failingPut struct{ *kv.MemoryStore }

func (failingPut) Put(context.Context, string, []byte) error { return errors.New("full") }

func TestRecord_PersistenceErrorReturned(t *testing.T) {
	tr := NewTracker(failingPut{kv.NewMemoryStore()}, logger.NewNop(), nil)
	_, err := tr.Record(context.Background(), metrics.BodyMeasurements{NeckCircumference: 38, WaistCircumference: 85}, metrics.Male, 175)
	assert.Error(t, err)
}

func TestHistory_Malformed(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, kv.KeyBodyFatHistory, []byte(`{"not":"a list"}`)))

	_, err := NewTracker(mem, logger.NewNop(), nil).History(ctx)
	assert.ErrorIs(t, err, kv.ErrMalformed)
}
