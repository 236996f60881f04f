package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lg/body-progress-go-api/internal/bodyfat"
	"lg/body-progress-go-api/internal/kv"
	"lg/body-progress-go-api/internal/logger"
	"lg/body-progress-go-api/internal/photos"
	"lg/body-progress-go-api/internal/profile"
)

const testToken = "test-token"

type testServer struct {
	router   *gin.Engine
	handler  *Handler
	store    *kv.MemoryStore
	profiles *profile.Store
}

// fakeObjects stands in for S3.
type fakeObjects struct {
	puts [][]byte
}

func (f *fakeObjects) Put(ctx context.Context, data []byte, contentType string, takenAt time.Time) (string, error) {
	f.puts = append(f.puts, data)
	return "s3://bucket/progress/photo.jpg", nil
}

func (f *fakeObjects) PresignURL(ctx context.Context, uri string) (string, error) {
	return "https://bucket.example.com/" + strings.TrimPrefix(uri, "s3://bucket/") + "?sig=1", nil
}

// setupTestServer wires a Handler over an in-memory store. objects may be nil.
func setupTestServer(t *testing.T, objects photos.ObjectStore) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	store := kv.NewMemoryStore()
	log := logger.NewNop()
	profiles := profile.NewStore(store, log)
	h := &Handler{
		profiles:         profiles,
		bodyFat:          bodyfat.NewTracker(store, log, nil),
		album:            photos.NewAlbum(store, log),
		location:         time.UTC,
		log:              log,
		authUsername:     "lyle",
		authPasswordHash: string(hash),
		authToken:        testToken,
	}
	if objects != nil {
		h.objects = objects
	}

	router := gin.New()
	h.registerRoutes(router)
	return &testServer{router: router, handler: h, store: store, profiles: profiles}
}

// do sends an authenticated JSON request.
func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const validProfileJSON = `{
	"firstName": "Ada",
	"lastName": "Lovelace",
	"age": 36,
	"nationality": "British",
	"weight": 70,
	"height": 175,
	"address": "12 St James's Square",
	"gender": "male"
}`
