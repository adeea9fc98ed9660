package mocks

import (
	"time"

	"genrelens/internal/domain/service"

	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// MockTokenService is a mock type for the TokenService type
type MockTokenService struct {
	mock.Mock
}

type MockTokenService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTokenService) EXPECT() *MockTokenService_Expecter {
	return &MockTokenService_Expecter{mock: &_m.Mock}
}

// Issue provides a mock function with given fields: userID
func (_m *MockTokenService) Issue(userID uuid.UUID) (string, error) {
	ret := _m.Called(userID)

	if len(ret) == 0 {
		panic("no return value specified for Issue")
	}

	if rf, ok := ret.Get(0).(func(uuid.UUID) (string, error)); ok {
		return rf(userID)
	}

	r0 := ret.Get(0).(string)
	r1 := ret.Error(1)

	return r0, r1
}

// MockTokenService_Issue_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Issue'
type MockTokenService_Issue_Call struct {
	*mock.Call
}

// Issue is a helper method to define mock.On call
func (_e *MockTokenService_Expecter) Issue(userID interface{}) *MockTokenService_Issue_Call {
	return &MockTokenService_Issue_Call{Call: _e.mock.On("Issue", userID)}
}

func (_c *MockTokenService_Issue_Call) Run(run func(userID uuid.UUID)) *MockTokenService_Issue_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uuid.UUID))
	})

	return _c
}

func (_c *MockTokenService_Issue_Call) Return(_a0 string, _a1 error) *MockTokenService_Issue_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockTokenService_Issue_Call) RunAndReturn(run func(uuid.UUID) (string, error)) *MockTokenService_Issue_Call {
	_c.Call.Return(run)

	return _c
}

// TTL provides a mock function with given fields:
func (_m *MockTokenService) TTL() time.Duration {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for TTL")
	}

	if rf, ok := ret.Get(0).(func() time.Duration); ok {
		return rf()
	}

	r0 := ret.Get(0).(time.Duration)

	return r0
}

// MockTokenService_TTL_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'TTL'
type MockTokenService_TTL_Call struct {
	*mock.Call
}

// TTL is a helper method to define mock.On call
func (_e *MockTokenService_Expecter) TTL() *MockTokenService_TTL_Call {
	return &MockTokenService_TTL_Call{Call: _e.mock.On("TTL")}
}

func (_c *MockTokenService_TTL_Call) Run(run func()) *MockTokenService_TTL_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})

	return _c
}

func (_c *MockTokenService_TTL_Call) Return(_a0 time.Duration) *MockTokenService_TTL_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockTokenService_TTL_Call) RunAndReturn(run func() time.Duration) *MockTokenService_TTL_Call {
	_c.Call.Return(run)

	return _c
}

// Verify provides a mock function with given fields: tokenString
func (_m *MockTokenService) Verify(tokenString string) (*service.Claims, error) {
	ret := _m.Called(tokenString)

	if len(ret) == 0 {
		panic("no return value specified for Verify")
	}

	if rf, ok := ret.Get(0).(func(string) (*service.Claims, error)); ok {
		return rf(tokenString)
	}

	var r0 *service.Claims
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.Claims)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockTokenService_Verify_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Verify'
type MockTokenService_Verify_Call struct {
	*mock.Call
}

// Verify is a helper method to define mock.On call
func (_e *MockTokenService_Expecter) Verify(tokenString interface{}) *MockTokenService_Verify_Call {
	return &MockTokenService_Verify_Call{Call: _e.mock.On("Verify", tokenString)}
}

func (_c *MockTokenService_Verify_Call) Run(run func(tokenString string)) *MockTokenService_Verify_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})

	return _c
}

func (_c *MockTokenService_Verify_Call) Return(_a0 *service.Claims, _a1 error) *MockTokenService_Verify_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockTokenService_Verify_Call) RunAndReturn(run func(string) (*service.Claims, error)) *MockTokenService_Verify_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockTokenService creates a new instance of MockTokenService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	mock := &MockTokenService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
