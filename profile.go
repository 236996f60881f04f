package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/body-progress-go-api/internal/metrics"
	"lg/body-progress-go-api/internal/profile"
)

// getProfile returns the current profile (null if none) and whether a load
// is still in flight.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, profileResponse{
		Profile: h.profiles.Profile(),
		Loading: h.profiles.Loading(),
	})
}

// createProfile completes the profile for the first time.
// POST /api/profile. Returns 409 if a profile already exists.
func (h *Handler) createProfile(c *gin.Context) {
	var body profile.UserProfileInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if h.profiles.Profile() != nil {
		apiError(c, http.StatusConflict, "profile already exists")
		return
	}

	if err := h.profiles.SaveUser(c, body); err != nil {
		validationError(c, err)
		return
	}
	p := h.profiles.Profile()
	if p == nil {
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// patchProfile updates only the provided fields. A weight or height change
// appends a BMI history record.
// PATCH /api/profile.
func (h *Handler) patchProfile(c *gin.Context) {
	var body profile.ProfileUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body == (profile.ProfileUpdate{}) {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	before := h.profiles.Profile()
	if before == nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	if err := h.profiles.UpdateProfile(c, body); err != nil {
		validationError(c, err)
		return
	}

	// The store keeps its previous state when persisting fails.
	after := h.profiles.Profile()
	if after == nil || after.UpdatedAt.Equal(before.UpdatedAt) {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, after)
}

// deleteProfile removes the profile and its BMI history. Idempotent.
// DELETE /api/profile.
func (h *Handler) deleteProfile(c *gin.Context) {
	h.profiles.DeleteProfile(c)
	if h.profiles.Profile() != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/profile/bmi. Recomputed from the current weight and height.
func (h *Handler) getCurrentBMI(c *gin.Context) {
	bmi, ok := h.profiles.CurrentBMI()
	if !ok {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	c.JSON(http.StatusOK, bmiResponse{
		BMI:      bmi,
		Rounded:  metrics.RoundTenth(bmi),
		Category: metrics.BMICategory(bmi),
	})
}

// GET /api/profile/bmi-history. Empty array when there is no profile.
func (h *Handler) getBMIHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.profiles.BMIHistory())
}

// GET /api/profile/bmi-trend.
func (h *Handler) getBMITrend(c *gin.Context) {
	c.JSON(http.StatusOK, bmiTrendResponse{Trend: h.profiles.BMITrend()})
}

// validationError maps a *profile.ValidationError to 400 with its field
// list; anything else is a 500.
func validationError(c *gin.Context, err error) {
	var verr *profile.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	apiError(c, http.StatusInternalServerError, err.Error())
}
