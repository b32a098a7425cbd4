package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WebhookSender delivers formatted export payloads to an external HTTP
// endpoint. Failures are logged and reported as false; the sender never
// panics past its own boundary and never retries.
type WebhookSender struct {
	client *http.Client
	logger *zap.Logger
}

// NewWebhookSender creates a sender whose requests time out after the
// given duration.
func NewWebhookSender(timeout time.Duration, logger *zap.Logger) *WebhookSender {
	return &WebhookSender{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Send POSTs the payload to the endpoint with the given content type.
// Any transport fault or non-2xx response counts as failure.
func (s *WebhookSender) Send(ctx context.Context, payload []byte, contentType, endpoint string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		s.logger.Error("failed to build delivery request",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return false
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("failed to deliver export payload",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("mock service rejected export payload",
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode),
		)
		return false
	}

	s.logger.Info("export payload delivered",
		zap.String("endpoint", endpoint),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("size_bytes", len(payload)),
	)
	return true
}
