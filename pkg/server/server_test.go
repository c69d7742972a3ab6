package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurinder1988/footyfeed/pkg/model"
	"github.com/gurinder1988/footyfeed/pkg/refresh"
)

type fakeController struct {
	status     refresh.Status
	refreshes  int
	preference string
	err        error
}

func (f *fakeController) Status() refresh.Status {
	return f.status
}

func (f *fakeController) Refresh() *refresh.Session {
	f.refreshes++
	return nil
}

func (f *fakeController) SetPreference(_ context.Context, entity string) (*refresh.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.preference = entity
	return nil, nil
}

type fakeRegistry struct{}

func (fakeRegistry) Entities() []string {
	return []string{"Arsenal", "Liverpool"}
}

func (fakeRegistry) OPML(title string) (string, error) {
	return `<?xml version="1.0" encoding="UTF-8"?><opml version="1.0"><head><title>` + title + `</title></head></opml>`, nil
}

func serve(t *testing.T, ctrl controller, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	NewRouter(ctrl, fakeRegistry{}).ServeHTTP(rec, req)
	return rec
}

func TestServer_Feed(t *testing.T) {
	ctrl := &fakeController{status: refresh.Status{
		State: refresh.StatePartial,
		Items: []model.FeedRecord{{
			ID:          "abc123",
			Title:       "Highlights",
			PublishedAt: time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC),
			ContentURL:  "https://www.youtube.com/embed/abc123",
			Kind:        model.KindVideo,
		}},
		Error:  "failed to fetch https://example.com/a.xml: timeout",
		Errors: []string{"failed to fetch https://example.com/a.xml: timeout"},
	}}

	rec := serve(t, ctrl, http.MethodGet, "/api/feed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status refresh.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, refresh.StatePartial, status.State)
	require.Len(t, status.Items, 1)
	assert.Equal(t, "abc123", status.Items[0].ID)
	assert.Equal(t, ctrl.status.Error, status.Error)
}

func TestServer_Refresh(t *testing.T) {
	ctrl := &fakeController{}

	rec := serve(t, ctrl, http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, ctrl.refreshes)

	rec = serve(t, ctrl, http.MethodGet, "/api/refresh", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_Entities(t *testing.T) {
	rec := serve(t, &fakeController{}, http.MethodGet, "/api/entities", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entities []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entities))
	assert.Equal(t, []string{"Arsenal", "Liverpool"}, entities)
}

func TestServer_Preference(t *testing.T) {
	ctrl := &fakeController{status: refresh.Status{Preference: "Arsenal"}}

	rec := serve(t, ctrl, http.MethodGet, "/api/preference", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entity": "Arsenal"}`, rec.Body.String())

	rec = serve(t, ctrl, http.MethodPut, "/api/preference", `{"entity": "Liverpool"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Liverpool", ctrl.preference)

	rec = serve(t, ctrl, http.MethodDelete, "/api/preference", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, ctrl.preference)

	rec = serve(t, ctrl, http.MethodPut, "/api/preference", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_UnknownEntity(t *testing.T) {
	ctrl := &fakeController{err: errors.Wrap(refresh.ErrUnknownEntity, `"Everton"`)}

	rec := serve(t, ctrl, http.MethodPut, "/api/preference", `{"entity": "Everton"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown entity")
}

func TestServer_PreferenceStorageError(t *testing.T) {
	ctrl := &fakeController{err: errors.New("disk full")}

	rec := serve(t, ctrl, http.MethodPut, "/api/preference", `{"entity": "Arsenal"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_OPML(t *testing.T) {
	rec := serve(t, &fakeController{}, http.MethodGet, "/opml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "opml")
	assert.Contains(t, rec.Body.String(), opmlTitle)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	rec := serve(t, &fakeController{}, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = serve(t, &fakeController{}, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_Address(t *testing.T) {
	srv := New(Config{}, &fakeController{}, fakeRegistry{})
	assert.Equal(t, ":8080", srv.Addr)

	srv = New(Config{Port: 9090, BindAddress: "*"}, &fakeController{}, fakeRegistry{})
	assert.Equal(t, ":9090", srv.Addr)

	srv = New(Config{Port: 9090, BindAddress: "127.0.0.1"}, &fakeController{}, fakeRegistry{})
	assert.Equal(t, "127.0.0.1:9090", srv.Addr)
}
