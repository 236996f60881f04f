package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/body-progress-go-api/internal/metrics"
)

func ptr[T any](v T) *T { return &v }

func baseProfile(t0 time.Time) UserProfile {
	return UserProfile{
		ID:          "p1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Age:         36,
		Nationality: "British",
		Weight:      70,
		Height:      175,
		Address:     "12 St James's Square",
		Gender:      metrics.Female,
		BMIHistory:  []BMIRecord{newBMIRecord(70, 175, t0)},
		CreatedAt:   t0,
		UpdatedAt:   t0,
	}
}

func TestReconcile_WeightChangeAppendsOne(t *testing.T) {
	t0 := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)
	old := baseProfile(t0)

	next, delta := Reconcile(old, ProfileUpdate{Weight: ptr(75.0)}, t1)

	require.Len(t, delta, 1)
	assert.Equal(t, 75.0, delta[0].Weight)
	assert.Equal(t, 175.0, delta[0].Height)
	assert.InDelta(t, 75/(1.75*1.75), delta[0].BMI, 1e-9)
	assert.Equal(t, t1, delta[0].Date)

	require.Len(t, next.BMIHistory, 2)
	assert.Equal(t, delta[0], next.BMIHistory[1])
	assert.Equal(t, t1, next.UpdatedAt)
	assert.Equal(t, t0, next.CreatedAt)

	// old is untouched
	assert.Len(t, old.BMIHistory, 1)
	assert.Equal(t, 70.0, old.Weight)
}

func TestReconcile_HeightChangeUsesCurrentWeight(t *testing.T) {
	t0 := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	next, delta := Reconcile(baseProfile(t0), ProfileUpdate{Height: ptr(180.0)}, t0.Add(time.Hour))

	require.Len(t, delta, 1)
	assert.InDelta(t, metrics.CalculateBMI(70, 180), delta[0].BMI, 1e-9)
	assert.Equal(t, 180.0, next.Height)
}

func TestReconcile_NoHistoryForOtherFields(t *testing.T) {
	t0 := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	tests := []struct {
		name string
		upd  ProfileUpdate
	}{
		{"address", ProfileUpdate{Address: ptr("X")}},
		{"names", ProfileUpdate{FirstName: ptr("Augusta"), LastName: ptr("King")}},
		{"age", ProfileUpdate{Age: ptr(37)}},
		{"same weight", ProfileUpdate{Weight: ptr(70.0)}},
		{"same weight and height", ProfileUpdate{Weight: ptr(70.0), Height: ptr(175.0)}},
		{"empty", ProfileUpdate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, delta := Reconcile(baseProfile(t0), tt.upd, t1)
			assert.Empty(t, delta)
			assert.Len(t, next.BMIHistory, 1)
			assert.Equal(t, t1, next.UpdatedAt)
		})
	}
}

func TestReconcile_AppliesFields(t *testing.T) {
	t0 := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	next, _ := Reconcile(baseProfile(t0), ProfileUpdate{
		Address: ptr("X"),
		Gender:  ptr(metrics.Male),
		Age:     ptr(40),
	}, t0)

	assert.Equal(t, "X", next.Address)
	assert.Equal(t, metrics.Male, next.Gender)
	assert.Equal(t, 40, next.Age)
	assert.Equal(t, "Ada", next.FirstName)
	assert.Equal(t, "p1", next.ID)
}

func TestTrendOf(t *testing.T) {
	rec := func(bmi float64) BMIRecord { return BMIRecord{BMI: bmi} }

	tests := []struct {
		name    string
		history []BMIRecord
		want    Trend
	}{
		{"empty", nil, TrendUnavailable},
		{"single", []BMIRecord{rec(22)}, TrendInitial},
		{"up", []BMIRecord{rec(22), rec(23)}, TrendIncreasing},
		{"down", []BMIRecord{rec(23), rec(22)}, TrendDecreasing},
		{"flat", []BMIRecord{rec(22), rec(22)}, TrendStable},
		{"only last two count", []BMIRecord{rec(30), rec(20), rec(21)}, TrendIncreasing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trendOf(tt.history))
		})
	}
}
