package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunLease is a mock type for the core.RunLease type.
type MockRunLease struct {
	mock.Mock
}

func (_m *MockRunLease) Acquire(ctx context.Context, holder string) (func(), error) {
	ret := _m.Called(ctx, holder)

	var r0 func()
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(func()) //nolint:forcetypeassert
	}

	return r0, ret.Error(1)
}

// NewMockRunLease creates a new instance of MockRunLease. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewMockRunLease(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockRunLease {
	m := &MockRunLease{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
