package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/body-progress-go-api/internal/kv"
	"lg/body-progress-go-api/internal/logger"
	"lg/body-progress-go-api/internal/profile"
)

func TestProfile_Lifecycle(t *testing.T) {
	s := setupTestServer(t, nil)

	w := s.do("GET", "/api/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"profile":null,"loading":false}`, w.Body.String())

	w = s.do("POST", "/api/profile", validProfileJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[profile.UserProfile](t, w)
	assert.NotEmpty(t, created.ID)
	require.Len(t, created.BMIHistory, 1)
	assert.InDelta(t, 22.857, created.BMIHistory[0].BMI, 0.001)

	w = s.do("POST", "/api/profile", validProfileJSON)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do("PATCH", "/api/profile", `{"weight": 75}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[profile.UserProfile](t, w)
	assert.Equal(t, 75.0, updated.Weight)
	assert.Len(t, updated.BMIHistory, 2)

	w = s.do("GET", "/api/profile/bmi", "")
	require.Equal(t, http.StatusOK, w.Code)
	bmi := decode[bmiResponse](t, w)
	assert.InDelta(t, 24.490, bmi.BMI, 0.001)
	assert.Equal(t, 24.5, bmi.Rounded)
	assert.Equal(t, "Normal weight", bmi.Category)

	w = s.do("GET", "/api/profile/bmi-trend", "")
	assert.JSONEq(t, `{"trend":"increasing"}`, w.Body.String())

	w = s.do("GET", "/api/profile/bmi-history", "")
	history := decode[[]profile.BMIRecord](t, w)
	assert.Len(t, history, 2)

	w = s.do("DELETE", "/api/profile", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do("DELETE", "/api/profile", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do("GET", "/api/profile/bmi", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do("GET", "/api/profile/bmi-history", "")
	assert.JSONEq(t, `[]`, w.Body.String())
	w = s.do("GET", "/api/profile/bmi-trend", "")
	assert.JSONEq(t, `{"trend":"unavailable"}`, w.Body.String())
}

type validationResponse struct {
	Error  string               `json:"error"`
	Fields []profile.FieldError `json:"fields"`
}

func TestCreateProfile_Validation(t *testing.T) {
	s := setupTestServer(t, nil)

	w := s.do("POST", "/api/profile", `{"firstName":"Ada","weight":70,"height":0,"gender":"male"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[validationResponse](t, w)
	assert.NotEmpty(t, resp.Error)

	names := map[string]bool{}
	for _, f := range resp.Fields {
		names[f.Field] = true
	}
	assert.True(t, names["height"])
	assert.True(t, names["lastName"])
	assert.False(t, names["weight"])
	assert.Nil(t, s.profiles.Profile())
}

func TestCreateProfile_OverflowingBMI(t *testing.T) {
	s := setupTestServer(t, nil)

	body := `{"firstName":"Ada","lastName":"Lovelace","age":36,"nationality":"British","weight":1e308,"height":0.001,"address":"12 St James's Square","gender":"male"}`
	w := s.do("POST", "/api/profile", body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	resp := decode[validationResponse](t, w)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "weight", resp.Fields[0].Field)
	assert.Nil(t, s.profiles.Profile())

	require.Equal(t, http.StatusCreated, s.do("POST", "/api/profile", validProfileJSON).Code)
	w = s.do("PATCH", "/api/profile", `{"weight":1e308,"height":0.001}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, 70.0, s.profiles.Profile().Weight)
}

func TestPatchProfile(t *testing.T) {
	s := setupTestServer(t, nil)

	w := s.do("PATCH", "/api/profile", `{"address": "X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusCreated, s.do("POST", "/api/profile", validProfileJSON).Code)

	w = s.do("PATCH", "/api/profile", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do("PATCH", "/api/profile", `{"height": -3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do("PATCH", "/api/profile", `{"address": "X"}`)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[profile.UserProfile](t, w)
	assert.Equal(t, "X", p.Address)
	assert.Len(t, p.BMIHistory, 1)
}

type failingPutStore struct {
	*kv.MemoryStore
	fail bool
}

func (f *failingPutStore) Put(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.MemoryStore.Put(ctx, key, value)
}

func TestPatchProfile_PersistenceFailure(t *testing.T) {
	s := setupTestServer(t, nil)
	backing := &failingPutStore{MemoryStore: kv.NewMemoryStore()}
	s.handler.profiles = profile.NewStore(backing, logger.NewNop())

	require.Equal(t, http.StatusCreated, s.do("POST", "/api/profile", validProfileJSON).Code)

	backing.fail = true
	w := s.do("PATCH", "/api/profile", `{"weight": 80}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 70.0, s.handler.profiles.Profile().Weight)
}
