package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
)

// MockStateStore is a mock type for the StateStore type
type MockStateStore struct {
	mock.Mock
}

type MockStateStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockStateStore) EXPECT() *MockStateStore_Expecter {
	return &MockStateStore_Expecter{mock: &_m.Mock}
}

// Consume provides a mock function with given fields: ctx, state
func (_m *MockStateStore) Consume(ctx context.Context, state string) (bool, error) {
	ret := _m.Called(ctx, state)

	if len(ret) == 0 {
		panic("no return value specified for Consume")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) (bool, error)); ok {
		return rf(ctx, state)
	}

	r0 := ret.Get(0).(bool)
	r1 := ret.Error(1)

	return r0, r1
}

// MockStateStore_Consume_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Consume'
type MockStateStore_Consume_Call struct {
	*mock.Call
}

// Consume is a helper method to define mock.On call
func (_e *MockStateStore_Expecter) Consume(ctx interface{}, state interface{}) *MockStateStore_Consume_Call {
	return &MockStateStore_Consume_Call{Call: _e.mock.On("Consume", ctx, state)}
}

func (_c *MockStateStore_Consume_Call) Run(run func(ctx context.Context, state string)) *MockStateStore_Consume_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})

	return _c
}

func (_c *MockStateStore_Consume_Call) Return(_a0 bool, _a1 error) *MockStateStore_Consume_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockStateStore_Consume_Call) RunAndReturn(run func(context.Context, string) (bool, error)) *MockStateStore_Consume_Call {
	_c.Call.Return(run)

	return _c
}

// Save provides a mock function with given fields: ctx, state
func (_m *MockStateStore) Save(ctx context.Context, state string) error {
	ret := _m.Called(ctx, state)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		return rf(ctx, state)
	}

	r0 := ret.Error(0)

	return r0
}

// MockStateStore_Save_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Save'
type MockStateStore_Save_Call struct {
	*mock.Call
}

// Save is a helper method to define mock.On call
func (_e *MockStateStore_Expecter) Save(ctx interface{}, state interface{}) *MockStateStore_Save_Call {
	return &MockStateStore_Save_Call{Call: _e.mock.On("Save", ctx, state)}
}

func (_c *MockStateStore_Save_Call) Run(run func(ctx context.Context, state string)) *MockStateStore_Save_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})

	return _c
}

func (_c *MockStateStore_Save_Call) Return(_a0 error) *MockStateStore_Save_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockStateStore_Save_Call) RunAndReturn(run func(context.Context, string) error) *MockStateStore_Save_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockStateStore creates a new instance of MockStateStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockStateStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStateStore {
	mock := &MockStateStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
