package mocks

import (
	"gridCalc/contracts"

	"github.com/stretchr/testify/mock"
)

// SheetRepository is a mock type for the contracts.SheetRepository type
type SheetRepository struct {
	mock.Mock
}

func (_m *SheetRepository) SetCell(sheetId string, cellId string, input string) (*contracts.CellView, error) {
	ret := _m.Called(sheetId, cellId, input)

	var r0 *contracts.CellView
	if rf, ok := ret.Get(0).(func(string, string, string) *contracts.CellView); ok {
		r0 = rf(sheetId, cellId, input)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*contracts.CellView)
	}

	return r0, ret.Error(1)
}

func (_m *SheetRepository) GetCell(sheetId string, cellId string) (*contracts.CellView, error) {
	ret := _m.Called(sheetId, cellId)

	var r0 *contracts.CellView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*contracts.CellView)
	}

	return r0, ret.Error(1)
}

func (_m *SheetRepository) GetCellList(sheetId string) (*contracts.CellViewList, error) {
	ret := _m.Called(sheetId)

	var r0 *contracts.CellViewList
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*contracts.CellViewList)
	}

	return r0, ret.Error(1)
}

func (_m *SheetRepository) GetDependents(sheetId string, cellId string) ([]string, error) {
	ret := _m.Called(sheetId, cellId)

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}

	return r0, ret.Error(1)
}

func (_m *SheetRepository) SetStyle(sheetId string, cellId string, style contracts.CellStyle) (*contracts.CellView, error) {
	ret := _m.Called(sheetId, cellId, style)

	var r0 *contracts.CellView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*contracts.CellView)
	}

	return r0, ret.Error(1)
}

func (_m *SheetRepository) Undo(sheetId string) (*contracts.CellViewList, error) {
	ret := _m.Called(sheetId)

	var r0 *contracts.CellViewList
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*contracts.CellViewList)
	}

	return r0, ret.Error(1)
}

func (_m *SheetRepository) Redo(sheetId string) (*contracts.CellViewList, error) {
	ret := _m.Called(sheetId)

	var r0 *contracts.CellViewList
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*contracts.CellViewList)
	}

	return r0, ret.Error(1)
}

func (_m *SheetRepository) InsertRow(sheetId string, cellId string) error {
	return _m.Called(sheetId, cellId).Error(0)
}

func (_m *SheetRepository) DeleteRow(sheetId string, cellId string) error {
	return _m.Called(sheetId, cellId).Error(0)
}

func (_m *SheetRepository) InsertColumn(sheetId string, cellId string) error {
	return _m.Called(sheetId, cellId).Error(0)
}

func (_m *SheetRepository) DeleteColumn(sheetId string, cellId string) error {
	return _m.Called(sheetId, cellId).Error(0)
}

func (_m *SheetRepository) FindReplace(sheetId string, rangeToken string, find string, replace string) (int, error) {
	ret := _m.Called(sheetId, rangeToken, find, replace)

	return ret.Int(0), ret.Error(1)
}

func (_m *SheetRepository) RemoveDuplicates(sheetId string, rangeToken string) (int, error) {
	ret := _m.Called(sheetId, rangeToken)

	return ret.Int(0), ret.Error(1)
}

type mockConstructorTestingTNewSheetRepository interface {
	mock.TestingT
	Cleanup(func())
}

// NewSheetRepository creates a new instance of SheetRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSheetRepository(t mockConstructorTestingTNewSheetRepository) *SheetRepository {
	mock := &SheetRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
