package mocks

import (
	"context"

	"genrelens/internal/domain/entity"

	mock "github.com/stretchr/testify/mock"
)

// MockClassifier is a mock type for the Classifier type
type MockClassifier struct {
	mock.Mock
}

type MockClassifier_Expecter struct {
	mock *mock.Mock
}

func (_m *MockClassifier) EXPECT() *MockClassifier_Expecter {
	return &MockClassifier_Expecter{mock: &_m.Mock}
}

// Classify provides a mock function with given fields: ctx, upload
func (_m *MockClassifier) Classify(ctx context.Context, upload *entity.TransientUpload) (entity.Verdict, error) {
	ret := _m.Called(ctx, upload)

	if len(ret) == 0 {
		panic("no return value specified for Classify")
	}

	if rf, ok := ret.Get(0).(func(context.Context, *entity.TransientUpload) (entity.Verdict, error)); ok {
		return rf(ctx, upload)
	}

	var r0 entity.Verdict
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(entity.Verdict)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockClassifier_Classify_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Classify'
type MockClassifier_Classify_Call struct {
	*mock.Call
}

// Classify is a helper method to define mock.On call
func (_e *MockClassifier_Expecter) Classify(ctx interface{}, upload interface{}) *MockClassifier_Classify_Call {
	return &MockClassifier_Classify_Call{Call: _e.mock.On("Classify", ctx, upload)}
}

func (_c *MockClassifier_Classify_Call) Run(run func(ctx context.Context, upload *entity.TransientUpload)) *MockClassifier_Classify_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.TransientUpload))
	})

	return _c
}

func (_c *MockClassifier_Classify_Call) Return(_a0 entity.Verdict, _a1 error) *MockClassifier_Classify_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockClassifier_Classify_Call) RunAndReturn(run func(context.Context, *entity.TransientUpload) (entity.Verdict, error)) *MockClassifier_Classify_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockClassifier creates a new instance of MockClassifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockClassifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClassifier {
	mock := &MockClassifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
