package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

type MockBookingProcessor struct {
	mock.Mock
	configured bool
}

func (m *MockBookingProcessor) Configured() bool {
	return m.configured
}

func (m *MockBookingProcessor) Execute(ctx context.Context, input usecase.ProcessBookingInput) (*usecase.ProcessBookingOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ProcessBookingOutput), args.Error(1)
}

type MockSequenceRunner struct {
	mock.Mock
}

func (m *MockSequenceRunner) Execute(ctx context.Context, tenantID string, clock usecase.Clock) (*usecase.SequenceSummary, error) {
	args := m.Called(ctx, tenantID, clock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SequenceSummary), args.Error(1)
}

type MockActionQueuer struct {
	mock.Mock
}

func (m *MockActionQueuer) Execute(ctx context.Context, summary *usecase.SequenceSummary, clock usecase.Clock) (*usecase.QueueActionsOutput, error) {
	args := m.Called(ctx, summary, clock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.QueueActionsOutput), args.Error(1)
}

type MockLeadCapturer struct {
	mock.Mock
}

func (m *MockLeadCapturer) Execute(ctx context.Context, input usecase.CaptureLeadInput) (*usecase.CaptureLeadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CaptureLeadOutput), args.Error(1)
}

type MockCadenceGetter struct {
	mock.Mock
}

func (m *MockCadenceGetter) Execute(ctx context.Context, tenantID string) (*entity.CadencePolicy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CadencePolicy), args.Error(1)
}

type MockCadenceUpdater struct {
	mock.Mock
}

func (m *MockCadenceUpdater) Execute(ctx context.Context, tenantID string, input usecase.UpdateCadenceInput) (*entity.CadencePolicy, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CadencePolicy), args.Error(1)
}
