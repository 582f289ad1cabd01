package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/openskyvn/paragliding-backend/pkg/db/models"
	"github.com/openskyvn/paragliding-backend/pkg/logger"
	"github.com/openskyvn/paragliding-backend/pkg/metrics"
)

// DeliveryResult is one recipient's outcome. Failures surface as diagnostics
// on an otherwise successful booking response.
type DeliveryResult struct {
	Recipient string `json:"recipient"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// Service fans a booking summary out to every configured recipient. Delivery
// failures are collected, never fatal: the booking is already durable by the
// time this runs.
type Service interface {
	Notify(ctx context.Context, booking *models.Booking, customer *models.Customer) []DeliveryResult
}

type service struct {
	sender           Sender
	chatIDs          []string
	recipientTimeout time.Duration
	logg             *logger.Logger
	metrics          *metrics.PipelineMetrics
}

// NewService builds the fan-out service. A nil sender or empty recipient list
// degrades to the synthetic "not configured" result instead of failing.
func NewService(sender Sender, chatIDs []string, recipientTimeout time.Duration, logg *logger.Logger, pipelineMetrics *metrics.PipelineMetrics) Service {
	if recipientTimeout <= 0 {
		recipientTimeout = defaultSenderTimeout
	}
	return &service{
		sender:           sender,
		chatIDs:          chatIDs,
		recipientTimeout: recipientTimeout,
		logg:             logg,
		metrics:          pipelineMetrics,
	}
}

func (s *service) Notify(ctx context.Context, booking *models.Booking, customer *models.Customer) []DeliveryResult {
	if s.sender == nil || len(s.chatIDs) == 0 {
		if s.logg != nil {
			s.logg.Warn(ctx, "no notification recipients configured, skipping fan-out")
		}
		s.metrics.IncNotification("not_configured")
		return []DeliveryResult{{
			Recipient: "none",
			Delivered: false,
			Error:     "no notification recipients configured",
		}}
	}

	text := RenderSummary(booking, customer)

	results := make([]DeliveryResult, len(s.chatIDs))
	var wg sync.WaitGroup
	for i, chatID := range s.chatIDs {
		wg.Add(1)
		go func(i int, chatID string) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, s.recipientTimeout)
			defer cancel()

			result := DeliveryResult{Recipient: chatID, Delivered: true}
			if err := s.sender.Send(sendCtx, chatID, text); err != nil {
				result.Delivered = false
				result.Error = err.Error()
			}
			results[i] = result
		}(i, chatID)
	}
	wg.Wait()

	var failures error
	for _, result := range results {
		if result.Delivered {
			s.metrics.IncNotification("delivered")
			continue
		}
		s.metrics.IncNotification("failed")
		failures = multierr.Append(failures, fmt.Errorf("recipient %s: %s", result.Recipient, result.Error))
	}
	if failures != nil && s.logg != nil {
		s.logg.Error(ctx, "booking notification delivery failed for some recipients", failures)
	}

	return results
}
