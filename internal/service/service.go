package service

import (
	"context"

	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/toonify"
	"github.com/ds124wfegd/animegen/internal/telemetry"
)

type GenerateService interface {
	Generate(ctx context.Context, req entity.GenerateRequest) (entity.TransformResult, error)
}

type generateService struct {
	upstream toonify.Transformer
	metrics  *telemetry.Metrics
}

func NewGenerateService(upstream toonify.Transformer, metrics *telemetry.Metrics) GenerateService {
	return &generateService{
		upstream: upstream,
		metrics:  metrics,
	}
}
