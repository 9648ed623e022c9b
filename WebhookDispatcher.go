package main

import (
	"bytes"
	"gridCalc/contracts"
	"log/slog"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"
)

type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Cell    *contracts.CellView
}

// WebhookDispatcher posts updated cells to the urls subscribed to them.
// Delivery is best effort: failures are logged and dropped.
type WebhookDispatcher struct {
	mutex    sync.RWMutex
	webhooks map[string]SheetWebhooks
	closed   bool

	queue   chan WebhookSendCommand
	pending sync.WaitGroup
	workers sync.WaitGroup
	started bool
	count   int
	client  *http.Client
	logger  *slog.Logger
}

func NewWebhookDispatcher(config Config, logger *slog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan WebhookSendCommand, config.WebhookQueueSize),
		webhooks: map[string]SheetWebhooks{},
		count:    config.WebhookWorkers,
		client: &http.Client{
			Timeout: config.WebhookTimeout,
		},
		logger: logger,
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(canonicalSheetId string, canonicalCellId string, webhookUrl string) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if _, ok := manager.webhooks[canonicalSheetId]; !ok {
		manager.webhooks[canonicalSheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(manager.webhooks[canonicalSheetId], canonicalCellId)
	} else {
		manager.webhooks[canonicalSheetId][canonicalCellId] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(canonicalSheetId string, canonicalCellId string) string {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	return manager.webhooks[canonicalSheetId][canonicalCellId]
}

func (manager *WebhookDispatcher) Notify(canonicalSheetId string, cells []*contracts.CellView) {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	if manager.closed {
		return
	}

	commands := make([]WebhookSendCommand, 0)
	for _, cell := range cells {
		if webhook, ok := manager.webhooks[canonicalSheetId][cell.Address]; ok {
			commands = append(commands, WebhookSendCommand{
				Webhook: webhook,
				Cell:    cell,
			})
		}
	}

	if len(commands) == 0 {
		return
	}

	manager.pending.Add(1)
	go manager.addToQueue(commands)
}

func (manager *WebhookDispatcher) addToQueue(commands []WebhookSendCommand) {
	defer manager.pending.Done()

	for _, command := range commands {
		manager.queue <- command
	}
}

func (manager *WebhookDispatcher) Start() {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if manager.started {
		return
	}
	manager.started = true

	for i := 0; i < manager.count; i++ {
		manager.workers.Add(1)
		go manager.runWebhookSenderWorker()
	}
}

// Close stops accepting notifications and waits until the queued ones are sent
func (manager *WebhookDispatcher) Close() {
	manager.mutex.Lock()
	if manager.closed {
		manager.mutex.Unlock()
		return
	}
	manager.closed = true
	manager.mutex.Unlock()

	manager.pending.Wait()
	close(manager.queue)
	manager.workers.Wait()
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	defer manager.workers.Done()

	for command := range manager.queue {
		manager.send(command)
	}
}

func (manager *WebhookDispatcher) send(command WebhookSendCommand) {
	payload, err := json.Marshal(command.Cell)
	if err != nil {
		manager.logger.Error("webhook payload", "error", err)
		return
	}

	started := time.Now()
	response, err := manager.client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		manager.logger.Warn("webhook send error", "url", command.Webhook, "error", err)
		return
	}
	_ = response.Body.Close()

	if response.StatusCode >= 300 {
		manager.logger.Warn("unexpected webhook response", "url", command.Webhook, "status", response.Status)
		return
	}

	manager.logger.Debug("webhook sent",
		"url", command.Webhook, "cell", command.Cell.Address, "latency", time.Since(started))
}
