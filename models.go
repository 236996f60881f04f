package main

import (
	"time"

	"lg/body-progress-go-api/internal/bodyfat"
	"lg/body-progress-go-api/internal/metrics"
	"lg/body-progress-go-api/internal/photos"
	"lg/body-progress-go-api/internal/profile"
)

/* ─── Profile ────────────────────────────────────────────────────────── */

// profileResponse is returned by GET /api/profile. Profile is null when no
// profile has been created yet.
type profileResponse struct {
	Profile *profile.UserProfile `json:"profile"`
	Loading bool                 `json:"loading"`
}

type bmiResponse struct {
	BMI      float64 `json:"bmi"`
	Rounded  float64 `json:"rounded"`
	Category string  `json:"category"`
}

type bmiTrendResponse struct {
	Trend profile.Trend `json:"trend"`
}

/* ─── Body fat ───────────────────────────────────────────────────────── */

// recordBodyFatRequest carries tape measurements in cm. Height and gender
// come from the stored profile.
type recordBodyFatRequest struct {
	NeckCircumference  float64  `json:"neckCircumference" binding:"required,gt=0"`
	WaistCircumference float64  `json:"waistCircumference" binding:"required,gt=0"`
	HipCircumference   *float64 `json:"hipCircumference" binding:"omitempty,gt=0"`
}

func (r recordBodyFatRequest) measurements() metrics.BodyMeasurements {
	return metrics.BodyMeasurements{
		NeckCircumference:  r.NeckCircumference,
		WaistCircumference: r.WaistCircumference,
		HipCircumference:   r.HipCircumference,
	}
}

type recordBodyFatResponse struct {
	Record   bodyfat.Record `json:"record"`
	Category string         `json:"category"`
}

/* ─── Photos ─────────────────────────────────────────────────────────── */

// addPhotoRequest records a photo captured on the device. Date defaults to
// now.
type addPhotoRequest struct {
	URI  string     `json:"uri" binding:"required"`
	Date *time.Time `json:"date"`
}

type replacePhotoRequest struct {
	OldURI string `json:"oldUri" binding:"required"`
	NewURI string `json:"newUri" binding:"required"`
}

// photosResponse lists photos flat and grouped by week. URLs maps each
// s3:// URI to a presigned GET URL.
type photosResponse struct {
	Photos []photos.ProgressPhoto `json:"photos"`
	Weeks  []photos.WeekGroup     `json:"weeks"`
	URLs   map[string]string      `json:"urls,omitempty"`
}
