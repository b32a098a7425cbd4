package handler

import (
	"net/http"

	"github.com/DarkMK69/PTsTest/internal/service"
	"github.com/DarkMK69/PTsTest/pkg/response"
)

// ExportHandler handles export-related HTTP requests.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportResponse is the success body of an export invocation.
type ExportResponse struct {
	Message  string `json:"message"`
	Format   string `json:"format"`
	Count    int    `json:"count"`
	MimeType string `json:"mimeType"`
}

// Export handles POST /api/v1/entities/export?format=json|csv|excel
// The format defaults to json. Unrecognized values are rejected by the
// export service before any network call is made.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("format")
	format, ok := service.ParseFormat(raw)
	if !ok {
		// hand the offending value through so the service reports it
		format = service.Format(raw)
	}

	result := h.exportService.Export(r.Context(), format)
	if !result.Success {
		response.Error(w, result.Err)
		return
	}

	mimeType, _ := h.exportService.MimeType(result.Format)
	response.OK(w, ExportResponse{
		Message:  result.Message,
		Format:   string(result.Format),
		Count:    result.Count,
		MimeType: mimeType,
	})
}
