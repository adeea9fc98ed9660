package mocks

import (
	"context"
	"io"

	"genrelens/internal/domain/entity"

	mock "github.com/stretchr/testify/mock"
)

// MockUploadReceiver is a mock type for the UploadReceiver type
type MockUploadReceiver struct {
	mock.Mock
}

type MockUploadReceiver_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUploadReceiver) EXPECT() *MockUploadReceiver_Expecter {
	return &MockUploadReceiver_Expecter{mock: &_m.Mock}
}

// Receive provides a mock function with given fields: ctx, contentType, body
func (_m *MockUploadReceiver) Receive(ctx context.Context, contentType string, body io.Reader) (*entity.TransientUpload, error) {
	ret := _m.Called(ctx, contentType, body)

	if len(ret) == 0 {
		panic("no return value specified for Receive")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string, io.Reader) (*entity.TransientUpload, error)); ok {
		return rf(ctx, contentType, body)
	}

	var r0 *entity.TransientUpload
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.TransientUpload)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockUploadReceiver_Receive_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Receive'
type MockUploadReceiver_Receive_Call struct {
	*mock.Call
}

// Receive is a helper method to define mock.On call
func (_e *MockUploadReceiver_Expecter) Receive(ctx interface{}, contentType interface{}, body interface{}) *MockUploadReceiver_Receive_Call {
	return &MockUploadReceiver_Receive_Call{Call: _e.mock.On("Receive", ctx, contentType, body)}
}

func (_c *MockUploadReceiver_Receive_Call) Run(run func(ctx context.Context, contentType string, body io.Reader)) *MockUploadReceiver_Receive_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(io.Reader))
	})

	return _c
}

func (_c *MockUploadReceiver_Receive_Call) Return(_a0 *entity.TransientUpload, _a1 error) *MockUploadReceiver_Receive_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockUploadReceiver_Receive_Call) RunAndReturn(run func(context.Context, string, io.Reader) (*entity.TransientUpload, error)) *MockUploadReceiver_Receive_Call {
	_c.Call.Return(run)

	return _c
}

// Release provides a mock function with given fields: ctx, upload
func (_m *MockUploadReceiver) Release(ctx context.Context, upload *entity.TransientUpload) {
	_m.Called(ctx, upload)
}

// MockUploadReceiver_Release_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Release'
type MockUploadReceiver_Release_Call struct {
	*mock.Call
}

// Release is a helper method to define mock.On call
func (_e *MockUploadReceiver_Expecter) Release(ctx interface{}, upload interface{}) *MockUploadReceiver_Release_Call {
	return &MockUploadReceiver_Release_Call{Call: _e.mock.On("Release", ctx, upload)}
}

func (_c *MockUploadReceiver_Release_Call) Run(run func(ctx context.Context, upload *entity.TransientUpload)) *MockUploadReceiver_Release_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.TransientUpload))
	})

	return _c
}

func (_c *MockUploadReceiver_Release_Call) Return() *MockUploadReceiver_Release_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUploadReceiver_Release_Call) RunAndReturn(run func(context.Context, *entity.TransientUpload)) *MockUploadReceiver_Release_Call {
	_c.Run(run)

	return _c
}

// NewMockUploadReceiver creates a new instance of MockUploadReceiver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUploadReceiver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUploadReceiver {
	mock := &MockUploadReceiver{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
