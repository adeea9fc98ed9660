package mocks

import (
	"context"

	"genrelens/internal/domain/entity"
	"genrelens/internal/domain/service"

	mock "github.com/stretchr/testify/mock"
)

// MockOAuthService is a mock type for the OAuthService type
type MockOAuthService struct {
	mock.Mock
}

type MockOAuthService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockOAuthService) EXPECT() *MockOAuthService_Expecter {
	return &MockOAuthService_Expecter{mock: &_m.Mock}
}

// BuildAuthorizationURL provides a mock function with given fields: state
func (_m *MockOAuthService) BuildAuthorizationURL(state string) string {
	ret := _m.Called(state)

	if len(ret) == 0 {
		panic("no return value specified for BuildAuthorizationURL")
	}

	if rf, ok := ret.Get(0).(func(string) string); ok {
		return rf(state)
	}

	r0 := ret.Get(0).(string)

	return r0
}

// MockOAuthService_BuildAuthorizationURL_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'BuildAuthorizationURL'
type MockOAuthService_BuildAuthorizationURL_Call struct {
	*mock.Call
}

// BuildAuthorizationURL is a helper method to define mock.On call
func (_e *MockOAuthService_Expecter) BuildAuthorizationURL(state interface{}) *MockOAuthService_BuildAuthorizationURL_Call {
	return &MockOAuthService_BuildAuthorizationURL_Call{Call: _e.mock.On("BuildAuthorizationURL", state)}
}

func (_c *MockOAuthService_BuildAuthorizationURL_Call) Run(run func(state string)) *MockOAuthService_BuildAuthorizationURL_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})

	return _c
}

func (_c *MockOAuthService_BuildAuthorizationURL_Call) Return(_a0 string) *MockOAuthService_BuildAuthorizationURL_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockOAuthService_BuildAuthorizationURL_Call) RunAndReturn(run func(string) string) *MockOAuthService_BuildAuthorizationURL_Call {
	_c.Call.Return(run)

	return _c
}

// ExchangeCode provides a mock function with given fields: ctx, code
func (_m *MockOAuthService) ExchangeCode(ctx context.Context, code string) (*service.OAuthUser, error) {
	ret := _m.Called(ctx, code)

	if len(ret) == 0 {
		panic("no return value specified for ExchangeCode")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) (*service.OAuthUser, error)); ok {
		return rf(ctx, code)
	}

	var r0 *service.OAuthUser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.OAuthUser)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockOAuthService_ExchangeCode_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ExchangeCode'
type MockOAuthService_ExchangeCode_Call struct {
	*mock.Call
}

// ExchangeCode is a helper method to define mock.On call
func (_e *MockOAuthService_Expecter) ExchangeCode(ctx interface{}, code interface{}) *MockOAuthService_ExchangeCode_Call {
	return &MockOAuthService_ExchangeCode_Call{Call: _e.mock.On("ExchangeCode", ctx, code)}
}

func (_c *MockOAuthService_ExchangeCode_Call) Run(run func(ctx context.Context, code string)) *MockOAuthService_ExchangeCode_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})

	return _c
}

func (_c *MockOAuthService_ExchangeCode_Call) Return(_a0 *service.OAuthUser, _a1 error) *MockOAuthService_ExchangeCode_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockOAuthService_ExchangeCode_Call) RunAndReturn(run func(context.Context, string) (*service.OAuthUser, error)) *MockOAuthService_ExchangeCode_Call {
	_c.Call.Return(run)

	return _c
}

// GetProvider provides a mock function with given fields:
func (_m *MockOAuthService) GetProvider() entity.ProviderType {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetProvider")
	}

	if rf, ok := ret.Get(0).(func() entity.ProviderType); ok {
		return rf()
	}

	r0 := ret.Get(0).(entity.ProviderType)

	return r0
}

// MockOAuthService_GetProvider_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetProvider'
type MockOAuthService_GetProvider_Call struct {
	*mock.Call
}

// GetProvider is a helper method to define mock.On call
func (_e *MockOAuthService_Expecter) GetProvider() *MockOAuthService_GetProvider_Call {
	return &MockOAuthService_GetProvider_Call{Call: _e.mock.On("GetProvider")}
}

func (_c *MockOAuthService_GetProvider_Call) Run(run func()) *MockOAuthService_GetProvider_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})

	return _c
}

func (_c *MockOAuthService_GetProvider_Call) Return(_a0 entity.ProviderType) *MockOAuthService_GetProvider_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockOAuthService_GetProvider_Call) RunAndReturn(run func() entity.ProviderType) *MockOAuthService_GetProvider_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockOAuthService creates a new instance of MockOAuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockOAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOAuthService {
	mock := &MockOAuthService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
