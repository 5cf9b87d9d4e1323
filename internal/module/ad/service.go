// Package ad implements ad copy generation: prompt composition, remote
// completion and response shaping for both the one-shot and streaming
// paths.
package ad

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adcraft/server/internal/model"
	"github.com/adcraft/server/internal/module/ad/prompt"
	"github.com/adcraft/server/internal/provider"
	apperrors "github.com/adcraft/server/internal/shared/errors"
	"github.com/adcraft/server/internal/shared/metrics"
)

// Progress is a heuristic proportional to accumulated output length,
// capped below 100 so the terminal event is always the completion
// signal.
const (
	progressFullLength = 500
	progressCap        = 95.0
)

// Service orchestrates ad generation.
type Service struct {
	prompts *prompt.Registry
	text    provider.TextGenerator
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates an ad generation service. Metrics may be nil, as
// in tests.
func NewService(prompts *prompt.Registry, text provider.TextGenerator, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		prompts: prompts,
		text:    text,
		logger:  logger,
		metrics: m,
	}
}

func (s *Service) recordGeneration(kind, status string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordGeneration(kind, status, elapsed)
	}
}

// Generate produces a complete ad for the request. The response is
// fully populated or the call fails; there is no partial result.
func (s *Service) Generate(ctx context.Context, req *model.GenerationRequest) (*model.GenerationResponse, error) {
	start := time.Now()
	requestID := uuid.New().String()

	s.logger.Info("starting ad generation",
		zap.String("request_id", requestID),
		zap.String("product", req.ProductName),
		zap.String("ad_type", string(req.AdType)),
		zap.String("ad_tone", string(req.AdTone)),
	)

	system, err := s.prompts.Compose(req.AdType, req.AdTone)
	if err != nil {
		return nil, err
	}

	content, err := s.text.GenerateText(ctx, system, flattenProduct(req))
	if err != nil {
		s.logger.Error("ad generation failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		s.recordGeneration("ad", "error", time.Since(start))
		return nil, apperrors.GenerationFailed("ad generation failed", err)
	}
	s.recordGeneration("ad", "success", time.Since(start))

	elapsed := time.Since(start).Seconds()
	s.logger.Info("ad generated",
		zap.String("request_id", requestID),
		zap.Float64("generation_time", elapsed),
	)

	return &model.GenerationResponse{
		AdContent:      content,
		ProductInfo:    model.ProductInfoFromRequest(req),
		AdSettings:     model.AdSettings{AdType: req.AdType, AdTone: req.AdTone},
		GenerationTime: elapsed,
		ModelUsed:      s.text.Model(),
		RequestID:      requestID,
		Timestamp:      time.Now(),
	}, nil
}

// GenerateStream produces a sequence of stream events for the request:
// one processing event, zero or more streaming events with monotonically
// non-decreasing progress, and exactly one terminal completed or error
// event. The channel closes after the terminal event, or early when the
// consumer's context is cancelled, which also releases the remote
// stream.
func (s *Service) GenerateStream(ctx context.Context, req *model.GenerationRequest) <-chan model.StreamEvent {
	events := make(chan model.StreamEvent)

	go func() {
		defer close(events)

		start := time.Now()
		requestID := uuid.New().String()

		send := func(ev model.StreamEvent) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// Immediate feedback before any remote call.
		if !send(model.NewProcessingEvent(requestID)) {
			return
		}

		system, err := s.prompts.Compose(req.AdType, req.AdTone)
		if err != nil {
			s.recordGeneration("ad_stream", "error", time.Since(start))
			send(model.NewErrorEvent(requestID, apperrors.GetCode(err), err.Error()))
			return
		}

		var acc strings.Builder
		chars := 0

		err = s.text.GenerateTextStream(ctx, system, flattenProduct(req), func(fragment string) error {
			acc.WriteString(fragment)
			chars += utf8.RuneCountInString(fragment)
			if s.metrics != nil {
				s.metrics.StreamFragments.Inc()
			}

			progress := float64(chars) / progressFullLength * 100
			if progress > progressCap {
				progress = progressCap
			}

			if !send(model.NewStreamingEvent(requestID, fragment, progress)) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				// Consumer stopped reading; nobody is listening for a
				// terminal event.
				s.logger.Debug("stream consumer gone",
					zap.String("request_id", requestID),
				)
				return
			}
			s.logger.Error("streaming ad generation failed",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			s.recordGeneration("ad_stream", "error", time.Since(start))
			send(model.NewErrorEvent(requestID, "generation_failed", err.Error()))
			return
		}

		s.recordGeneration("ad_stream", "success", time.Since(start))
		send(model.NewCompletedEvent(
			requestID,
			acc.String(),
			model.ProductInfoFromRequest(req),
			model.AdSettings{AdType: req.AdType, AdTone: req.AdTone},
			time.Since(start).Seconds(),
			s.text.Model(),
		))
	}()

	return events
}

// flattenProduct renders the request's populated product fields as
// newline-delimited "field: value" lines in declaration order. Absent
// fields are omitted entirely.
func flattenProduct(req *model.GenerationRequest) string {
	var b strings.Builder

	writeField := func(name, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", name, value)
	}

	writeField("product_name", req.ProductName)
	writeField("brand_name", req.BrandName)
	if len(req.Category) > 0 {
		quoted := make([]string, len(req.Category))
		for i, c := range req.Category {
			quoted[i] = "'" + c + "'"
		}
		writeField("category", "["+strings.Join(quoted, ", ")+"]")
	}
	writeField("description", req.Description)
	if req.Price != nil {
		writeField("price", strconv.FormatFloat(*req.Price, 'f', -1, 64))
	}
	if req.DiscountedPrice != nil {
		writeField("discounted_price", strconv.FormatFloat(*req.DiscountedPrice, 'f', -1, 64))
	}
	writeField("product_url", req.ProductURL)
	writeField("image_url", req.ImageURL)

	return b.String()
}
