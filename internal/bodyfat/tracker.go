// Package bodyfat records U.S. Navy body-fat estimates into the
// bodyFatHistory list.
package bodyfat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lg/body-progress-go-api/internal/dateutil"
	"lg/body-progress-go-api/internal/kv"
	"lg/body-progress-go-api/internal/logger"
	"lg/body-progress-go-api/internal/metrics"
)

// ChartWindow is how many recent entries the progress chart plots.
const ChartWindow = 7

// Record is one stored estimate. BodyFat is rounded to one decimal.
type Record struct {
	Date    dateutil.DateOnly `json:"date"`
	BodyFat float64           `json:"bodyFat"`
}

type Tracker struct {
	kv  kv.Store
	log *logger.Logger
	now func() time.Time

	// serialises read-modify-write of the history list
	mu sync.Mutex
}

func NewTracker(store kv.Store, log *logger.Logger, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{kv: store, log: log, now: now}
}

// Record computes body fat from m and appends today's entry. Calculation
// errors (missing hip, non-positive log arguments) are returned and nothing
// is written.
func (t *Tracker) Record(ctx context.Context, m metrics.BodyMeasurements, gender metrics.Gender, heightCm float64) (Record, error) {
	pct, err := metrics.CalculateBodyFat(m, gender, heightCm)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Date:    dateutil.NewDateOnly(t.now().UTC()),
		BodyFat: metrics.RoundTenth(pct),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	history, err := t.History(ctx)
	if err != nil {
		return Record{}, err
	}
	history = append(history, rec)
	if err := kv.PutJSON(ctx, t.kv, kv.KeyBodyFatHistory, history); err != nil {
		return Record{}, fmt.Errorf("save body fat history: %w", err)
	}
	t.log.Info("body fat recorded", "body_fat", rec.BodyFat, "entries", len(history))
	return rec, nil
}

// History returns every stored entry in insertion order.
func (t *Tracker) History(ctx context.Context) ([]Record, error) {
	history := []Record{}
	if _, err := kv.GetJSON(ctx, t.kv, kv.KeyBodyFatHistory, &history); err != nil {
		return nil, fmt.Errorf("load body fat history: %w", err)
	}
	return history, nil
}

// Recent returns the last n entries, or all of them when n <= 0.
func (t *Tracker) Recent(ctx context.Context, n int) ([]Record, error) {
	history, err := t.History(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	return history, nil
}
