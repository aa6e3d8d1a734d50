package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zhulik/fleetscaler/internal/core"
)

// MockEventPublisher is a mock type for the core.EventPublisher type.
type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishScalingEvent(ctx context.Context, result core.ScalingResult) error {
	ret := _m.Called(ctx, result)

	return ret.Error(0)
}

func (_m *MockEventPublisher) HealthCheck() error {
	ret := _m.Called()

	return ret.Error(0)
}

func (_m *MockEventPublisher) Shutdown() error {
	ret := _m.Called()

	return ret.Error(0)
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing interface on
// the mock and a cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
