// Package photos keeps the progress photo list and groups it by week.
package photos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lg/body-progress-go-api/internal/kv"
	"lg/body-progress-go-api/internal/logger"
)

var ErrPhotoNotFound = errors.New("photo not found")

// ProgressPhoto points at a captured image. The URI is whatever the capture
// side produced: a device file URI or an s3:// object from ObjectStore.
type ProgressPhoto struct {
	URI  string    `json:"uri"`
	Date time.Time `json:"date"`
}

// Album is the progressPhotos list. Writes are serialised per Album.
type Album struct {
	kv  kv.Store
	log *logger.Logger
	mu  sync.Mutex
}

func NewAlbum(store kv.Store, log *logger.Logger) *Album {
	return &Album{kv: store, log: log}
}

// Add appends a photo captured at takenAt.
func (a *Album) Add(ctx context.Context, uri string, takenAt time.Time) (ProgressPhoto, error) {
	if uri == "" {
		return ProgressPhoto{}, errors.New("photo uri is required")
	}
	photo := ProgressPhoto{URI: uri, Date: takenAt.UTC()}

	a.mu.Lock()
	defer a.mu.Unlock()

	list, err := a.List(ctx)
	if err != nil {
		return ProgressPhoto{}, err
	}
	list = append(list, photo)
	if err := kv.PutJSON(ctx, a.kv, kv.KeyProgressPhotos, list); err != nil {
		return ProgressPhoto{}, fmt.Errorf("save progress photos: %w", err)
	}
	a.log.Info("progress photo added", "uri", uri, "count", len(list))
	return photo, nil
}

// List returns photos in the order they were added.
func (a *Album) List(ctx context.Context) ([]ProgressPhoto, error) {
	list := []ProgressPhoto{}
	if _, err := kv.GetJSON(ctx, a.kv, kv.KeyProgressPhotos, &list); err != nil {
		return nil, fmt.Errorf("load progress photos: %w", err)
	}
	return list, nil
}

// ReplaceURI points every photo stored under oldURI at newURI, keeping its
// date. Used after an image has been edited and saved elsewhere.
func (a *Album) ReplaceURI(ctx context.Context, oldURI, newURI string) error {
	if newURI == "" {
		return errors.New("photo uri is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	list, err := a.List(ctx)
	if err != nil {
		return err
	}
	replaced := 0
	for i := range list {
		if list[i].URI == oldURI {
			list[i].URI = newURI
			replaced++
		}
	}
	if replaced == 0 {
		return ErrPhotoNotFound
	}
	if err := kv.PutJSON(ctx, a.kv, kv.KeyProgressPhotos, list); err != nil {
		return fmt.Errorf("save progress photos: %w", err)
	}
	return nil
}
