package mocks

import (
	"context"

	"genrelens/internal/domain/service"

	mock "github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

// Close provides a mock function with given fields:
func (_m *MockEventPublisher) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	if rf, ok := ret.Get(0).(func() error); ok {
		return rf()
	}

	r0 := ret.Error(0)

	return r0
}

// MockEventPublisher_Close_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Close'
type MockEventPublisher_Close_Call struct {
	*mock.Call
}

// Close is a helper method to define mock.On call
func (_e *MockEventPublisher_Expecter) Close() *MockEventPublisher_Close_Call {
	return &MockEventPublisher_Close_Call{Call: _e.mock.On("Close")}
}

func (_c *MockEventPublisher_Close_Call) Run(run func()) *MockEventPublisher_Close_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})

	return _c
}

func (_c *MockEventPublisher_Close_Call) Return(_a0 error) *MockEventPublisher_Close_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockEventPublisher_Close_Call) RunAndReturn(run func() error) *MockEventPublisher_Close_Call {
	_c.Call.Return(run)

	return _c
}

// PublishClassificationEvent provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishClassificationEvent(ctx context.Context, event *service.ClassificationEvent) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for PublishClassificationEvent")
	}

	if rf, ok := ret.Get(0).(func(context.Context, *service.ClassificationEvent) error); ok {
		return rf(ctx, event)
	}

	r0 := ret.Error(0)

	return r0
}

// MockEventPublisher_PublishClassificationEvent_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PublishClassificationEvent'
type MockEventPublisher_PublishClassificationEvent_Call struct {
	*mock.Call
}

// PublishClassificationEvent is a helper method to define mock.On call
func (_e *MockEventPublisher_Expecter) PublishClassificationEvent(ctx interface{}, event interface{}) *MockEventPublisher_PublishClassificationEvent_Call {
	return &MockEventPublisher_PublishClassificationEvent_Call{Call: _e.mock.On("PublishClassificationEvent", ctx, event)}
}

func (_c *MockEventPublisher_PublishClassificationEvent_Call) Run(run func(ctx context.Context, event *service.ClassificationEvent)) *MockEventPublisher_PublishClassificationEvent_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*service.ClassificationEvent))
	})

	return _c
}

func (_c *MockEventPublisher_PublishClassificationEvent_Call) Return(_a0 error) *MockEventPublisher_PublishClassificationEvent_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockEventPublisher_PublishClassificationEvent_Call) RunAndReturn(run func(context.Context, *service.ClassificationEvent) error) *MockEventPublisher_PublishClassificationEvent_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	mock := &MockEventPublisher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
