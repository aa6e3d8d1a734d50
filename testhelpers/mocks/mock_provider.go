package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zhulik/fleetscaler/internal/core"
)

// MockProvider is a mock type for the core.Provider type.
type MockProvider struct {
	mock.Mock
}

func (_m *MockProvider) Name() string {
	ret := _m.Called()

	return ret.String(0)
}

func (_m *MockProvider) Info(ctx context.Context) (map[string]any, error) {
	ret := _m.Called(ctx)

	var r0 map[string]any
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]any) //nolint:forcetypeassert
	}

	return r0, ret.Error(1)
}

func (_m *MockProvider) ListInstances(ctx context.Context) ([]core.Instance, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) ([]core.Instance, error)); ok {
		return rf(ctx)
	}

	var r0 []core.Instance
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]core.Instance) //nolint:forcetypeassert
	}

	return r0, ret.Error(1)
}

func (_m *MockProvider) StartInstances(ctx context.Context, instanceIDs []string) error {
	ret := _m.Called(ctx, instanceIDs)

	return ret.Error(0)
}

func (_m *MockProvider) StopInstances(ctx context.Context, instanceIDs []string) error {
	ret := _m.Called(ctx, instanceIDs)

	return ret.Error(0)
}

func (_m *MockProvider) HealthCheck() error {
	ret := _m.Called()

	return ret.Error(0)
}

func (_m *MockProvider) Shutdown() error {
	ret := _m.Called()

	return ret.Error(0)
}

// NewMockProvider creates a new instance of MockProvider. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
