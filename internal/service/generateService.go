package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/toonify"
	"github.com/sirupsen/logrus"
)

// Generate makes a single upstream attempt. Anything short of a usable
// output from the upstream degrades to echoing the input; only faults
// (network, undecodable responses) are returned as errors.
func (s *generateService) Generate(ctx context.Context, req entity.GenerateRequest) (entity.TransformResult, error) {
	if req.Image.Empty() {
		s.metrics.ObserveOutcome("invalid")
		return entity.TransformResult{}, entity.ErrNoImage
	}

	start := time.Now()
	output, err := s.upstream.Transform(ctx, req.Image)
	s.metrics.ObserveUpstream(time.Since(start), upstreamLabel(err))

	var statusErr *toonify.StatusError
	switch {
	case err == nil:
		s.metrics.ObserveOutcome(entity.OutcomeSuccess.String())
		return entity.Success(output), nil
	case errors.As(err, &statusErr):
		logrus.WithFields(logrus.Fields{
			"status": statusErr.StatusCode,
		}).Warn("upstream refused transform, answering in preview mode")
		s.metrics.ObserveOutcome(entity.OutcomeDegraded.String())
		return entity.Degraded(req.Image), nil
	case errors.Is(err, entity.ErrEmptyOutput):
		logrus.Warn("upstream returned no output, answering in preview mode")
		s.metrics.ObserveOutcome(entity.OutcomeDegraded.String())
		return entity.Degraded(req.Image), nil
	default:
		s.metrics.ObserveOutcome("failure")
		return entity.TransformResult{}, fmt.Errorf("transform image: %w", err)
	}
}

func upstreamLabel(err error) string {
	var statusErr *toonify.StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, entity.ErrEmptyOutput):
		return "empty"
	default:
		return "error"
	}
}
