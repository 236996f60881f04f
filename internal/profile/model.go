package profile

import (
	"time"

	"lg/body-progress-go-api/internal/metrics"
)

// UserProfile is the single profile record kept under kv.KeyUserProfile.
type UserProfile struct {
	ID          string         `json:"id"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Age         int            `json:"age"`
	Nationality string         `json:"nationality"`
	Weight      float64        `json:"weight"` // kg
	Height      float64        `json:"height"` // cm
	Address     string         `json:"address"`
	Gender      metrics.Gender `json:"gender"`
	BMIHistory  []BMIRecord    `json:"bmiHistory"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// BMIRecord is one point of the BMI history. Records are never edited once
// appended.
type BMIRecord struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Height float64   `json:"height"`
	BMI    float64   `json:"bmi"`
}

// UserProfileInput is what a first-time profile completion supplies. ID is
// optional; one is generated when empty.
type UserProfileInput struct {
	ID          string         `json:"id,omitempty"`
	FirstName   string         `json:"firstName" validate:"required"`
	LastName    string         `json:"lastName" validate:"required"`
	Age         int            `json:"age" validate:"gt=0"`
	Nationality string         `json:"nationality" validate:"required"`
	Weight      float64        `json:"weight" validate:"gt=0"`
	Height      float64        `json:"height" validate:"gt=0"`
	Address     string         `json:"address" validate:"required"`
	Gender      metrics.Gender `json:"gender" validate:"oneof=male female"`
}

// ProfileUpdate is a partial update. Nil fields are left alone. The
// identifier, timestamps and history are not updatable.
type ProfileUpdate struct {
	FirstName   *string         `json:"firstName,omitempty"`
	LastName    *string         `json:"lastName,omitempty"`
	Age         *int            `json:"age,omitempty" validate:"omitempty,gt=0"`
	Nationality *string         `json:"nationality,omitempty"`
	Weight      *float64        `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Height      *float64        `json:"height,omitempty" validate:"omitempty,gt=0"`
	Address     *string         `json:"address,omitempty"`
	Gender      *metrics.Gender `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
}

// Trend is the direction of the last two BMI history entries.
type Trend string

const (
	TrendUnavailable Trend = "unavailable"
	TrendInitial     Trend = "initial"
	TrendIncreasing  Trend = "increasing"
	TrendDecreasing  Trend = "decreasing"
	TrendStable      Trend = "stable"
)

func (p *UserProfile) clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.BMIHistory = append([]BMIRecord(nil), p.BMIHistory...)
	return &c
}
