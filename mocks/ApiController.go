package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// ApiController is a mock type for the contracts.ApiController type
type ApiController struct {
	mock.Mock
}

func (_m *ApiController) SetCellAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) GetCellAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) GetSheetAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) GetDependentsAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) SubscribeAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) SetStyleAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) UndoAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) RedoAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) InsertRowAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) DeleteRowAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) InsertColumnAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) DeleteColumnAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) FindReplaceAction(c *gin.Context) {
	_m.Called(c)
}

func (_m *ApiController) RemoveDuplicatesAction(c *gin.Context) {
	_m.Called(c)
}

type mockConstructorTestingTNewApiController interface {
	mock.TestingT
	Cleanup(func())
}

// NewApiController creates a new instance of ApiController. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewApiController(t mockConstructorTestingTNewApiController) *ApiController {
	mock := &ApiController{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
