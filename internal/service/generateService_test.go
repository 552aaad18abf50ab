package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/toonify"
	"github.com/ds124wfegd/animegen/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpstream struct {
	output entity.Payload
	err    error
	calls  int
}

func (f *fakeUpstream) Transform(ctx context.Context, image entity.Payload) (entity.Payload, error) {
	f.calls++
	return f.output, f.err
}

const input = entity.Payload("data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ==")

func TestGenerateRejectsMissingImage(t *testing.T) {
	upstream := &fakeUpstream{output: "https://cdn/out.png"}
	metrics := telemetry.NewMetrics()
	svc := NewGenerateService(upstream, metrics)

	_, err := svc.Generate(context.Background(), entity.GenerateRequest{})

	assert.ErrorIs(t, err, entity.ErrNoImage)
	assert.Zero(t, upstream.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GenerateRequests.WithLabelValues("invalid")))
}

func TestGenerateOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		upstream    *fakeUpstream
		wantOutcome entity.Outcome
		wantOutput  entity.Payload
		wantMessage string
		wantErr     bool
	}{
		{
			name:        "upstream success",
			upstream:    &fakeUpstream{output: "https://cdn/out.png"},
			wantOutcome: entity.OutcomeSuccess,
			wantOutput:  "https://cdn/out.png",
		},
		{
			name:        "upstream unavailable echoes input",
			upstream:    &fakeUpstream{err: &toonify.StatusError{StatusCode: http.StatusServiceUnavailable}},
			wantOutcome: entity.OutcomeDegraded,
			wantOutput:  input,
			wantMessage: entity.PreviewModeMessage,
		},
		{
			name:        "upstream unauthorized echoes input",
			upstream:    &fakeUpstream{err: &toonify.StatusError{StatusCode: http.StatusUnauthorized}},
			wantOutcome: entity.OutcomeDegraded,
			wantOutput:  input,
			wantMessage: entity.PreviewModeMessage,
		},
		{
			name:        "upstream without output echoes input",
			upstream:    &fakeUpstream{err: entity.ErrEmptyOutput},
			wantOutcome: entity.OutcomeDegraded,
			wantOutput:  input,
			wantMessage: entity.PreviewModeMessage,
		},
		{
			name:     "network fault",
			upstream: &fakeUpstream{err: errors.New("dial tcp: connection refused")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGenerateService(tt.upstream, nil)

			result, err := svc.Generate(context.Background(), entity.GenerateRequest{Image: input})

			assert.Equal(t, 1, tt.upstream.calls)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection refused")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, result.Outcome)
			assert.Equal(t, tt.wantOutput, result.Output)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

func TestDegradedOutputIsByteIdentical(t *testing.T) {
	payloads := []entity.Payload{
		input,
		"data:image/png;base64,iVBORw0KGgo=",
		"  data:image/png;base64,iVBORw0KGgo=\n",
	}
	upstream := &fakeUpstream{err: &toonify.StatusError{StatusCode: http.StatusBadGateway}}
	svc := NewGenerateService(upstream, nil)

	for _, p := range payloads {
		result, err := svc.Generate(context.Background(), entity.GenerateRequest{Image: p})
		require.NoError(t, err)
		assert.Equal(t, []byte(p), []byte(result.Output))
	}
}
