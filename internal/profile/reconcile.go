package profile

import (
	"time"

	"lg/body-progress-go-api/internal/metrics"
)

// Reconcile merges upd over old and returns the resulting profile together
// with the history records the merge appended. A record is appended only when
// the merge changes weight or height; its BMI is computed from the merged
// pair. old is not modified.
func Reconcile(old UserProfile, upd ProfileUpdate, now time.Time) (UserProfile, []BMIRecord) {
	next := old
	next.BMIHistory = append([]BMIRecord(nil), old.BMIHistory...)

	if upd.FirstName != nil {
		next.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		next.LastName = *upd.LastName
	}
	if upd.Age != nil {
		next.Age = *upd.Age
	}
	if upd.Nationality != nil {
		next.Nationality = *upd.Nationality
	}
	if upd.Weight != nil {
		next.Weight = *upd.Weight
	}
	if upd.Height != nil {
		next.Height = *upd.Height
	}
	if upd.Address != nil {
		next.Address = *upd.Address
	}
	if upd.Gender != nil {
		next.Gender = *upd.Gender
	}
	next.UpdatedAt = now

	if next.Weight == old.Weight && next.Height == old.Height {
		return next, nil
	}
	rec := newBMIRecord(next.Weight, next.Height, now)
	next.BMIHistory = append(next.BMIHistory, rec)
	return next, []BMIRecord{rec}
}

func newBMIRecord(weight, height float64, at time.Time) BMIRecord {
	return BMIRecord{
		Date:   at,
		Weight: weight,
		Height: height,
		BMI:    metrics.CalculateBMI(weight, height),
	}
}

// trendOf compares the last two BMI values strictly.
func trendOf(history []BMIRecord) Trend {
	switch n := len(history); {
	case n == 0:
		return TrendUnavailable
	case n == 1:
		return TrendInitial
	default:
		last, prev := history[n-1].BMI, history[n-2].BMI
		switch {
		case last > prev:
			return TrendIncreasing
		case last < prev:
			return TrendDecreasing
		default:
			return TrendStable
		}
	}
}
