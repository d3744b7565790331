package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/CosmosChiang/LifeSwap/internal/config"

	"go.uber.org/zap"
)

// Service forwards human-readable messages to a Microsoft Teams incoming
// webhook. Delivery is best-effort: every failure is logged and returned,
// and callers are expected to log-and-continue rather than fail the
// triggering operation.
type Service struct {
	cfg    config.TeamsConfig
	client *http.Client
	logger *zap.Logger
}

func NewService(cfg config.TeamsConfig, logger ...*zap.Logger) *Service {
	l := zap.L().Named("teams.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("teams.service")
	}
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: l,
	}
}

// SendMessage posts a plain text card to the configured webhook. A disabled
// or unconfigured channel is a silent no-op.
func (s *Service) SendMessage(ctx context.Context, message string) error {
	if !s.cfg.Enabled || s.cfg.WebhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("teams notification failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("teams notification rejected", zap.Int("status_code", resp.StatusCode))
		return fmt.Errorf("teams webhook returned status %d", resp.StatusCode)
	}

	return nil
}
