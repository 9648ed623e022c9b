package main

import (
	"gridCalc/contracts"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func _newTestWebhookDispatcher() *WebhookDispatcher {
	config := DefaultConfig
	config.WebhookWorkers = 2
	config.WebhookTimeout = time.Second

	return NewWebhookDispatcher(config, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWebhookDispatcher_SetWebhookUrl(t *testing.T) {
	dispatcher := _newTestWebhookDispatcher()

	assert.Equal(t, "", dispatcher.GetWebhookUrl("sheet1", "A1"))

	dispatcher.SetWebhookUrl("sheet1", "A1", "http://localhost/a1")
	assert.Equal(t, "http://localhost/a1", dispatcher.GetWebhookUrl("sheet1", "A1"))
	assert.Equal(t, "", dispatcher.GetWebhookUrl("sheet2", "A1"))

	dispatcher.SetWebhookUrl("sheet1", "A1", "")
	assert.Equal(t, "", dispatcher.GetWebhookUrl("sheet1", "A1"))
}

func TestWebhookDispatcher_Notify(t *testing.T) {
	var mutex sync.Mutex
	received := map[string]contracts.CellView{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		cell := contracts.CellView{}
		if err := json.Unmarshal(body, &cell); err == nil {
			mutex.Lock()
			received[r.URL.Path] = cell
			mutex.Unlock()
		}

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	dispatcher := _newTestWebhookDispatcher()
	dispatcher.SetWebhookUrl("sheet1", "A1", server.URL+"/a1")
	dispatcher.SetWebhookUrl("sheet1", "B1", server.URL+"/b1")
	dispatcher.SetWebhookUrl("sheet2", "A1", server.URL+"/other")
	dispatcher.Start()

	dispatcher.Notify("sheet1", []*contracts.CellView{
		{Address: "A1", Value: "2", Result: "2"},
		{Address: "B1", Value: "=A1*3", Result: "6"},
		{Address: "C1", Value: "=B1", Result: "6"},
	})
	dispatcher.Notify("sheet3", []*contracts.CellView{{Address: "A1"}})

	dispatcher.Close()

	mutex.Lock()
	defer mutex.Unlock()

	require.Len(t, received, 2)
	assert.Equal(t, contracts.CellView{Address: "A1", Value: "2", Result: "2"}, received["/a1"])
	assert.Equal(t, contracts.CellView{Address: "B1", Value: "=A1*3", Result: "6"}, received["/b1"])

	// no delivery once closed
	dispatcher.Notify("sheet1", []*contracts.CellView{{Address: "A1"}})
}

func TestWebhookDispatcher_failedDelivery(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dispatcher := _newTestWebhookDispatcher()
	dispatcher.SetWebhookUrl("sheet1", "A1", server.URL)
	dispatcher.SetWebhookUrl("sheet1", "A2", "http://127.0.0.1:1/unreachable")
	dispatcher.Start()

	dispatcher.Notify("sheet1", []*contracts.CellView{{Address: "A1"}, {Address: "A2"}})
	dispatcher.Close()

	assert.Equal(t, int32(1), calls.Load())
}
