package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DarkMK69/PTsTest/internal/metrics"
	"github.com/DarkMK69/PTsTest/internal/model"
	"github.com/DarkMK69/PTsTest/internal/repository"
	"github.com/DarkMK69/PTsTest/pkg/apierror"
	"github.com/DarkMK69/PTsTest/pkg/response"
	"github.com/DarkMK69/PTsTest/pkg/uid"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
	maxNameLength   = 100
)

// EntityHandler handles entity CRUD HTTP requests.
type EntityHandler struct {
	repo     repository.EntityRepository
	recorder metrics.Recorder
}

// NewEntityHandler creates a new entity handler.
func NewEntityHandler(repo repository.EntityRepository) *EntityHandler {
	return &EntityHandler{repo: repo}
}

// SetRecorder enables the stored-entity gauge.
func (h *EntityHandler) SetRecorder(r metrics.Recorder) {
	h.recorder = r
}

// List handles GET /api/v1/entities?page=&pageSize=
// Out-of-range paging values are rejected, not clamped.
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		response.Error(w, apierror.BadRequest("page must be an integer"))
		return
	}
	pageSize, err := queryInt(r, "pageSize", defaultPageSize)
	if err != nil {
		response.Error(w, apierror.BadRequest("pageSize must be an integer"))
		return
	}

	if page < 1 {
		response.Error(w, apierror.ValidationError("Page must be at least 1"))
		return
	}
	if pageSize < 1 {
		response.Error(w, apierror.ValidationError("PageSize must be at least 1"))
		return
	}
	if pageSize > maxPageSize {
		response.Error(w, apierror.ValidationError("PageSize cannot exceed 100"))
		return
	}

	result, err := h.repo.List(r.Context(), page, pageSize)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, result)
}

// Get handles GET /api/v1/entities/{id}
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !uid.IsValid(id) {
		response.Error(w, apierror.BadRequest("id must be a valid UUID"))
		return
	}

	view, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.NotFound("Entity not found"))
			return
		}
		response.Error(w, err)
		return
	}

	response.OK(w, view)
}

// Create handles POST /api/v1/entities
func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CreateEntityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON: "+err.Error()))
		return
	}

	if details := validateCreate(&input); len(details) > 0 {
		response.Error(w, apierror.ValidationError("invalid entity payload", details...))
		return
	}

	view, err := h.repo.Create(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	h.updateGauge(r.Context())
	response.Created(w, view)
}

// Update handles PUT /api/v1/entities/{id}
func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !uid.IsValid(id) {
		response.Error(w, apierror.BadRequest("id must be a valid UUID"))
		return
	}

	var patch model.EntityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON: "+err.Error()))
		return
	}

	if details := validatePatch(&patch); len(details) > 0 {
		response.Error(w, apierror.ValidationError("invalid entity payload", details...))
		return
	}

	view, err := h.repo.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.NotFound("Entity not found"))
			return
		}
		response.Error(w, err)
		return
	}

	response.OK(w, view)
}

// Delete handles DELETE /api/v1/entities/{id}
func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !uid.IsValid(id) {
		response.Error(w, apierror.BadRequest("id must be a valid UUID"))
		return
	}

	removed, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if !removed {
		response.Error(w, apierror.NotFound("Entity not found"))
		return
	}

	h.updateGauge(r.Context())
	response.NoContent(w)
}

func (h *EntityHandler) updateGauge(ctx context.Context) {
	if h.recorder == nil {
		return
	}
	if count, err := h.repo.Count(ctx); err == nil {
		h.recorder.SetEntityCount(count)
	}
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func validateCreate(input *model.CreateEntityInput) []apierror.FieldError {
	var details []apierror.FieldError

	if strings.TrimSpace(input.Name) == "" {
		details = append(details, apierror.FieldError{Field: "name", Message: "name is required"})
	} else if len(input.Name) > maxNameLength {
		details = append(details, apierror.FieldError{Field: "name", Message: "name cannot exceed 100 characters"})
	}
	if input.Quantity < 0 {
		details = append(details, apierror.FieldError{Field: "quantity", Message: "quantity must be greater than or equal to 0"})
	}
	if input.Price < 0 {
		details = append(details, apierror.FieldError{Field: "price", Message: "price must be greater than or equal to 0"})
	}
	if input.Priority != nil && !input.Priority.Valid() {
		details = append(details, apierror.FieldError{Field: "priority", Message: "priority must be one of low, medium, high"})
	}
	details = append(details, validateTags(input.Tags)...)
	details = append(details, validateEmail(input.Email)...)
	details = append(details, validateRefID(input.RefID)...)

	return details
}

func validatePatch(patch *model.EntityPatch) []apierror.FieldError {
	var details []apierror.FieldError

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			details = append(details, apierror.FieldError{Field: "name", Message: "name cannot be blank"})
		} else if len(*patch.Name) > maxNameLength {
			details = append(details, apierror.FieldError{Field: "name", Message: "name cannot exceed 100 characters"})
		}
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		details = append(details, apierror.FieldError{Field: "quantity", Message: "quantity must be greater than or equal to 0"})
	}
	if patch.Price != nil && *patch.Price < 0 {
		details = append(details, apierror.FieldError{Field: "price", Message: "price must be greater than or equal to 0"})
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		details = append(details, apierror.FieldError{Field: "priority", Message: "priority must be one of low, medium, high"})
	}
	if patch.Tags != nil {
		details = append(details, validateTags(*patch.Tags)...)
	}
	details = append(details, validateEmail(patch.Email)...)
	details = append(details, validateRefID(patch.RefID)...)

	return details
}

func validateTags(tags []string) []apierror.FieldError {
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return []apierror.FieldError{{Field: "tags", Message: "tags cannot contain blank entries"}}
		}
	}
	return nil
}

func validateEmail(email *string) []apierror.FieldError {
	if email == nil || *email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(*email); err != nil {
		return []apierror.FieldError{{Field: "email", Message: "email is not a valid address"}}
	}
	return nil
}

func validateRefID(refID *string) []apierror.FieldError {
	if refID == nil || *refID == "" {
		return nil
	}
	if !uid.IsValid(*refID) {
		return []apierror.FieldError{{Field: "refId", Message: "refId must be a valid UUID"}}
	}
	return nil
}
