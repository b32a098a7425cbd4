package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DarkMK69/PTsTest/internal/cache"
	"github.com/DarkMK69/PTsTest/internal/metrics"
	"github.com/DarkMK69/PTsTest/internal/model"
	"github.com/DarkMK69/PTsTest/internal/repository"
	"github.com/DarkMK69/PTsTest/pkg/apierror"
)

// ExportSender is the delivery dependency of ExportService.
type ExportSender interface {
	Send(ctx context.Context, payload []byte, contentType, endpoint string) bool
}

// ExportResult is the unified outcome of one export invocation.
type ExportResult struct {
	Success bool
	Message string
	Format  Format
	Count   int
	Err     *apierror.Error
}

// ExportService composes store, formatter and sender into one
// export-and-deliver operation. Failures never propagate raw: every
// outcome is an ExportResult.
type ExportService struct {
	repo     repository.EntityRepository
	sender   ExportSender
	endpoint string
	logger   *zap.Logger

	payloadCache cache.Cache
	cacheTTL     time.Duration
	recorder     metrics.Recorder
}

// NewExportService creates a new export service.
// Returns nil if repo or sender is nil (required dependencies).
func NewExportService(repo repository.EntityRepository, sender ExportSender, endpoint string, logger *zap.Logger) *ExportService {
	if repo == nil || sender == nil {
		return nil
	}
	return &ExportService{
		repo:     repo,
		sender:   sender,
		endpoint: endpoint,
		logger:   logger,
	}
}

// SetPayloadCache enables caching of formatted payloads. Entries are
// keyed by (store revision, format); the formatter is pure, so a hit
// is always byte-correct for that revision.
func (s *ExportService) SetPayloadCache(c cache.Cache, ttl time.Duration) {
	s.payloadCache = c
	s.cacheTTL = ttl
}

// SetRecorder enables export outcome metrics.
func (s *ExportService) SetRecorder(r metrics.Recorder) {
	s.recorder = r
}

// Export serializes the full entity collection in the requested format
// and delivers it to the configured mock service endpoint.
func (s *ExportService) Export(ctx context.Context, format Format) (result ExportResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during export",
				zap.String("format", string(format)),
				zap.Any("panic", r),
			)
			result = s.fail(format, "error", apierror.ExportFailed())
		}
	}()

	if !format.Valid() {
		return s.fail(format, "unsupported_format", apierror.UnsupportedFormat(string(format), Formats()))
	}

	views, revision, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to read entities for export", zap.Error(err))
		return s.fail(format, "error", apierror.ExportFailed())
	}

	if len(views) == 0 {
		return s.fail(format, "empty", apierror.NothingToExport())
	}

	payload, err := s.formatPayload(ctx, views, revision, format)
	if err != nil {
		s.logger.Error("failed to format entities",
			zap.String("format", string(format)),
			zap.Error(err),
		)
		return s.fail(format, "error", apierror.ExportFailed())
	}

	mimeType, err := format.MimeType()
	if err != nil {
		return s.fail(format, "error", apierror.ExportFailed())
	}

	if !s.sender.Send(ctx, payload, mimeType, s.endpoint) {
		return s.fail(format, "delivery_failed", apierror.DeliveryFailed(""))
	}

	if s.recorder != nil {
		s.recorder.RecordExport(string(format), "success")
	}
	s.logger.Info("export completed",
		zap.String("format", string(format)),
		zap.Int("count", len(views)),
	)

	return ExportResult{
		Success: true,
		Message: "Exported successfully to mock service",
		Format:  format,
		Count:   len(views),
	}
}

// MimeType exposes the format MIME lookup to the HTTP surface.
func (s *ExportService) MimeType(format Format) (string, error) {
	return format.MimeType()
}

func (s *ExportService) formatPayload(ctx context.Context, views []model.EntityView, revision uint64, format Format) ([]byte, error) {
	if s.payloadCache == nil {
		return FormatEntities(views, format)
	}
	key := fmt.Sprintf("export:%d:%s", revision, format)
	return s.payloadCache.GetOrSet(ctx, key, s.cacheTTL, func() ([]byte, error) {
		return FormatEntities(views, format)
	})
}

func (s *ExportService) fail(format Format, outcome string, apiErr *apierror.Error) ExportResult {
	if s.recorder != nil {
		s.recorder.RecordExport(string(format), outcome)
	}
	return ExportResult{
		Success: false,
		Format:  format,
		Err:     apiErr,
	}
}
