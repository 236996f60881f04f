package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lg/body-progress-go-api/internal/photos"
)

// maxUploadBytes caps a single progress photo upload.
const maxUploadBytes = 15 << 20

// getPhotos lists progress photos, flat and grouped by the Sunday-start week.
// GET /api/photos.
func (h *Handler) getPhotos(c *gin.Context) {
	list, err := h.album.List(c)
	if err != nil {
		h.log.Error("failed to fetch photos", "error", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch photos")
		return
	}

	resp := photosResponse{
		Photos: list,
		Weeks:  photos.GroupByWeek(list, h.location),
	}
	if h.objects != nil {
		for _, p := range list {
			if !strings.HasPrefix(p.URI, "s3://") {
				continue
			}
			url, err := h.objects.PresignURL(c, p.URI)
			if err != nil {
				h.log.Warn("failed to presign photo", "uri", p.URI, "error", err)
				continue
			}
			if resp.URLs == nil {
				resp.URLs = map[string]string{}
			}
			resp.URLs[p.URI] = url
		}
	}
	c.JSON(http.StatusOK, resp)
}

// addPhoto records a photo captured on the device.
// POST /api/photos. Body: { "uri": "file:///...", "date": "2026-10-16T08:00:00Z" }.
func (h *Handler) addPhoto(c *gin.Context) {
	var body addPhotoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	takenAt := time.Now()
	if body.Date != nil {
		takenAt = *body.Date
	}

	photo, err := h.album.Add(c, body.URI, takenAt)
	if err != nil {
		h.log.Error("failed to add photo", "error", err)
		apiError(c, http.StatusInternalServerError, "failed to save photo")
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// replacePhotoURI swaps a photo's URI after it was edited.
// PUT /api/photos. Body: { "oldUri": "...", "newUri": "..." }.
func (h *Handler) replacePhotoURI(c *gin.Context) {
	var body replacePhotoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.album.ReplaceURI(c, body.OldURI, body.NewURI)
	if errors.Is(err, photos.ErrPhotoNotFound) {
		apiError(c, http.StatusNotFound, "photo not found")
		return
	}
	if err != nil {
		h.log.Error("failed to replace photo uri", "error", err)
		apiError(c, http.StatusInternalServerError, "failed to save photo")
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadPhoto stores the image bytes in the object store and records the
// resulting s3:// URI.
// POST /api/photos/upload (multipart, field "photo"). 503 when uploads are
// not configured.
func (h *Handler) uploadPhoto(c *gin.Context) {
	if h.objects == nil {
		apiError(c, http.StatusServiceUnavailable, "photo uploads are not configured")
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		apiError(c, http.StatusBadRequest, "photo file is required")
		return
	}
	if fh.Size > maxUploadBytes {
		apiError(c, http.StatusRequestEntityTooLarge, "photo is too large")
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		apiError(c, http.StatusBadRequest, "photo must be an image")
		return
	}

	f, err := fh.Open()
	if err != nil {
		apiError(c, http.StatusBadRequest, "unable to read photo")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		apiError(c, http.StatusBadRequest, "unable to read photo")
		return
	}

	takenAt := time.Now()
	uri, err := h.objects.Put(c, data, contentType, takenAt)
	if err != nil {
		h.log.Error("failed to upload photo", "error", err)
		apiError(c, http.StatusBadGateway, "failed to upload photo")
		return
	}
	photo, err := h.album.Add(c, uri, takenAt)
	if err != nil {
		h.log.Error("failed to add photo", "error", err)
		apiError(c, http.StatusInternalServerError, "failed to save photo")
		return
	}
	c.JSON(http.StatusCreated, photo)
}
