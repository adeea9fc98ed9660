package mocks

import (
	"context"

	"genrelens/internal/domain/entity"

	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

type MockUserRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUserRepository) EXPECT() *MockUserRepository_Expecter {
	return &MockUserRepository_Expecter{mock: &_m.Mock}
}

// AppendHistory provides a mock function with given fields: ctx, userID, entry
func (_m *MockUserRepository) AppendHistory(ctx context.Context, userID uuid.UUID, entry entity.HistoryEntry) error {
	ret := _m.Called(ctx, userID, entry)

	if len(ret) == 0 {
		panic("no return value specified for AppendHistory")
	}

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, entity.HistoryEntry) error); ok {
		return rf(ctx, userID, entry)
	}

	r0 := ret.Error(0)

	return r0
}

// MockUserRepository_AppendHistory_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'AppendHistory'
type MockUserRepository_AppendHistory_Call struct {
	*mock.Call
}

// AppendHistory is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) AppendHistory(ctx interface{}, userID interface{}, entry interface{}) *MockUserRepository_AppendHistory_Call {
	return &MockUserRepository_AppendHistory_Call{Call: _e.mock.On("AppendHistory", ctx, userID, entry)}
}

func (_c *MockUserRepository_AppendHistory_Call) Run(run func(ctx context.Context, userID uuid.UUID, entry entity.HistoryEntry)) *MockUserRepository_AppendHistory_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(entity.HistoryEntry))
	})

	return _c
}

func (_c *MockUserRepository_AppendHistory_Call) Return(_a0 error) *MockUserRepository_AppendHistory_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockUserRepository_AppendHistory_Call) RunAndReturn(run func(context.Context, uuid.UUID, entity.HistoryEntry) error) *MockUserRepository_AppendHistory_Call {
	_c.Call.Return(run)

	return _c
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for FindByID")
	}

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*entity.User, error)); ok {
		return rf(ctx, id)
	}

	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockUserRepository_FindByID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindByID'
type MockUserRepository_FindByID_Call struct {
	*mock.Call
}

// FindByID is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) FindByID(ctx interface{}, id interface{}) *MockUserRepository_FindByID_Call {
	return &MockUserRepository_FindByID_Call{Call: _e.mock.On("FindByID", ctx, id)}
}

func (_c *MockUserRepository_FindByID_Call) Run(run func(ctx context.Context, id uuid.UUID)) *MockUserRepository_FindByID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})

	return _c
}

func (_c *MockUserRepository_FindByID_Call) Return(_a0 *entity.User, _a1 error) *MockUserRepository_FindByID_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockUserRepository_FindByID_Call) RunAndReturn(run func(context.Context, uuid.UUID) (*entity.User, error)) *MockUserRepository_FindByID_Call {
	_c.Call.Return(run)

	return _c
}

// FindOrCreate provides a mock function with given fields: ctx, googleID, username
func (_m *MockUserRepository) FindOrCreate(ctx context.Context, googleID string, username string) (*entity.User, error) {
	ret := _m.Called(ctx, googleID, username)

	if len(ret) == 0 {
		panic("no return value specified for FindOrCreate")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string, string) (*entity.User, error)); ok {
		return rf(ctx, googleID, username)
	}

	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockUserRepository_FindOrCreate_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindOrCreate'
type MockUserRepository_FindOrCreate_Call struct {
	*mock.Call
}

// FindOrCreate is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) FindOrCreate(ctx interface{}, googleID interface{}, username interface{}) *MockUserRepository_FindOrCreate_Call {
	return &MockUserRepository_FindOrCreate_Call{Call: _e.mock.On("FindOrCreate", ctx, googleID, username)}
}

func (_c *MockUserRepository_FindOrCreate_Call) Run(run func(ctx context.Context, googleID string, username string)) *MockUserRepository_FindOrCreate_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(string))
	})

	return _c
}

func (_c *MockUserRepository_FindOrCreate_Call) Return(_a0 *entity.User, _a1 error) *MockUserRepository_FindOrCreate_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockUserRepository_FindOrCreate_Call) RunAndReturn(run func(context.Context, string, string) (*entity.User, error)) *MockUserRepository_FindOrCreate_Call {
	_c.Call.Return(run)

	return _c
}

// ListHistory provides a mock function with given fields: ctx, userID
func (_m *MockUserRepository) ListHistory(ctx context.Context, userID uuid.UUID) ([]entity.HistoryEntry, error) {
	ret := _m.Called(ctx, userID)

	if len(ret) == 0 {
		panic("no return value specified for ListHistory")
	}

	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]entity.HistoryEntry, error)); ok {
		return rf(ctx, userID)
	}

	var r0 []entity.HistoryEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.HistoryEntry)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockUserRepository_ListHistory_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListHistory'
type MockUserRepository_ListHistory_Call struct {
	*mock.Call
}

// ListHistory is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) ListHistory(ctx interface{}, userID interface{}) *MockUserRepository_ListHistory_Call {
	return &MockUserRepository_ListHistory_Call{Call: _e.mock.On("ListHistory", ctx, userID)}
}

func (_c *MockUserRepository_ListHistory_Call) Run(run func(ctx context.Context, userID uuid.UUID)) *MockUserRepository_ListHistory_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})

	return _c
}

func (_c *MockUserRepository_ListHistory_Call) Return(_a0 []entity.HistoryEntry, _a1 error) *MockUserRepository_ListHistory_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockUserRepository_ListHistory_Call) RunAndReturn(run func(context.Context, uuid.UUID) ([]entity.HistoryEntry, error)) *MockUserRepository_ListHistory_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	mock := &MockUserRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
