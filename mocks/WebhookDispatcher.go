package mocks

import (
	"gridCalc/contracts"

	"github.com/stretchr/testify/mock"
)

// WebhookDispatcher is a mock type for the contracts.WebhookDispatcher type
type WebhookDispatcher struct {
	mock.Mock
}

func (_m *WebhookDispatcher) SetWebhookUrl(canonicalSheetId string, canonicalCellId string, webhookUrl string) {
	_m.Called(canonicalSheetId, canonicalCellId, webhookUrl)
}

func (_m *WebhookDispatcher) GetWebhookUrl(canonicalSheetId string, canonicalCellId string) string {
	ret := _m.Called(canonicalSheetId, canonicalCellId)

	var r0 string
	if rf, ok := ret.Get(0).(func(string, string) string); ok {
		r0 = rf(canonicalSheetId, canonicalCellId)
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

func (_m *WebhookDispatcher) Notify(canonicalSheetId string, cells []*contracts.CellView) {
	_m.Called(canonicalSheetId, cells)
}

func (_m *WebhookDispatcher) Start() {
	_m.Called()
}

func (_m *WebhookDispatcher) Close() {
	_m.Called()
}

type mockConstructorTestingTNewWebhookDispatcher interface {
	mock.TestingT
	Cleanup(func())
}

// NewWebhookDispatcher creates a new instance of WebhookDispatcher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewWebhookDispatcher(t mockConstructorTestingTNewWebhookDispatcher) *WebhookDispatcher {
	mock := &WebhookDispatcher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
