package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lg/body-progress-go-api/internal/bodyfat"
	"lg/body-progress-go-api/internal/metrics"
)

// getBodyFatHistory returns stored body-fat entries, oldest first.
// GET /api/body-fat?limit=N. Without limit the chart window (7) is used;
// limit=0 returns everything.
func (h *Handler) getBodyFatHistory(c *gin.Context) {
	limit := bodyfat.ChartWindow
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			apiError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := h.bodyFat.Recent(c, limit)
	if err != nil {
		h.log.Error("failed to fetch body fat history", "error", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch body fat history")
		return
	}
	c.JSON(http.StatusOK, records)
}

// recordBodyFat estimates body fat from tape measurements using the
// profile's height and gender, and appends it to the history.
// POST /api/body-fat. Body: { "neckCircumference": 38, "waistCircumference": 85, "hipCircumference": 95 }.
func (h *Handler) recordBodyFat(c *gin.Context) {
	var body recordBodyFatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p := h.profiles.Profile()
	if p == nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	rec, err := h.bodyFat.Record(c, body.measurements(), p.Gender, p.Height)
	switch {
	case errors.Is(err, metrics.ErrMissingHip):
		apiError(c, http.StatusBadRequest, "hipCircumference is required for female profiles")
		return
	case errors.Is(err, metrics.ErrInvalidMeasurement),
		errors.Is(err, metrics.ErrInvalidHeight),
		errors.Is(err, metrics.ErrUnknownGender):
		apiError(c, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		h.log.Error("failed to record body fat", "error", err)
		apiError(c, http.StatusInternalServerError, "failed to record body fat")
		return
	}

	c.JSON(http.StatusCreated, recordBodyFatResponse{
		Record:   rec,
		Category: metrics.BodyFatCategory(rec.BodyFat, p.Gender),
	})
}
