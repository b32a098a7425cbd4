package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DarkMK69/PTsTest/internal/handler"
	"github.com/DarkMK69/PTsTest/internal/model"
	"github.com/DarkMK69/PTsTest/internal/repository"
	"github.com/DarkMK69/PTsTest/internal/router"
	"github.com/DarkMK69/PTsTest/pkg/uid"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*chi.Mux, *repository.MemoryEntityRepository) {
	t.Helper()

	repo := repository.NewMemoryEntityRepository()
	r := router.New(router.Config{
		Handler:       handler.New("test", repo),
		EntityHandler: handler.NewEntityHandler(repo),
		Logger:        zap.NewNop(),
	})
	return r, repo
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestCreateEntity(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/entities", `{"name":"Widget"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	var view model.EntityView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.True(t, uid.IsValid(view.ID))
	assert.Equal(t, "Widget", view.Name)
	assert.True(t, view.IsActive)
	assert.Equal(t, model.PriorityMedium, view.Priority)
}

func TestCreateEntity_ValidationErrors(t *testing.T) {
	r, repo := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{}`},
		{"blank name", `{"name":"   "}`},
		{"long name", `{"name":"` + strings.Repeat("x", 101) + `"}`},
		{"negative quantity", `{"name":"n","quantity":-1}`},
		{"negative price", `{"name":"n","price":-0.5}`},
		{"bad priority", `{"name":"n","priority":"urgent"}`},
		{"blank tag", `{"name":"n","tags":["ok",""]}`},
		{"bad email", `{"name":"n","email":"not-an-email"}`},
		{"bad refId", `{"name":"n","refId":"123"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doRequest(t, r, http.MethodPost, "/api/v1/entities", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		})
	}

	// nothing was stored
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateEntity_MalformedJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/entities", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestListEntities_Pagination(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/entities", `{"name":"Widget"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/entities?page=1&pageSize=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page model.PagedResult[model.EntityView]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)

	w, env = doRequest(t, r, http.MethodGet, "/api/v1/entities?page=2&pageSize=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page2 model.PagedResult[model.EntityView]
	require.NoError(t, json.Unmarshal(env.Data, &page2))
	require.Len(t, page2.Items, 1)
	assert.NotEqual(t, page.Items[0].ID, page2.Items[0].ID)
}

func TestListEntities_RejectsOutOfRangePaging(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/entities?page=0",
		"/api/v1/entities?pageSize=0",
		"/api/v1/entities?pageSize=101",
		"/api/v1/entities?page=abc",
		"/api/v1/entities?pageSize=abc",
	} {
		w, env := doRequest(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		require.NotNil(t, env.Error, path)
	}
}

func TestGetEntity(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/entities/"+repository.SeedEntityID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var view model.EntityView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "Initial Item", view.Name)
}

func TestGetEntity_NotFoundAndBadID(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/entities/"+uid.New(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, env = doRequest(t, r, http.MethodGet, "/api/v1/entities/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
}

func TestUpdateEntity_Partial(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doRequest(t, r, http.MethodPut, "/api/v1/entities/"+repository.SeedEntityID, `{"name":"Renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var view model.EntityView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "Renamed", view.Name)
	assert.Equal(t, []string{"demo"}, view.Tags) // untouched
	assert.NotNil(t, view.UpdatedAt)
}

func TestUpdateEntity_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doRequest(t, r, http.MethodPut, "/api/v1/entities/"+uid.New(), `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestDeleteEntity(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doRequest(t, r, http.MethodDelete, "/api/v1/entities/"+repository.SeedEntityID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/api/v1/entities/"+repository.SeedEntityID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// deleting again reports not found
	w, _ = doRequest(t, r, http.MethodDelete, "/api/v1/entities/"+repository.SeedEntityID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/status", "/api/v1/health", "/api/v1/ready"} {
		w, env := doRequest(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.True(t, env.Success, path)
	}
}
