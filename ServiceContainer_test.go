package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBuildServiceContainer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		serviceContainer, err := BuildServiceContainer(DefaultConfig, logger)

		assert.NoError(t, err)
		assert.Equal(t, DefaultConfig, serviceContainer.Config)
		assert.Equal(t, logger, serviceContainer.Logger)

		// check canonicalizer
		assert.NotNil(t, serviceContainer.Canonicalizer)
		assert.IsType(t, &Canonicalizer{}, serviceContainer.Canonicalizer)

		// check webhook dispatcher
		assert.NotNil(t, serviceContainer.WebhookDispatcher)
		assert.IsType(t, &WebhookDispatcher{}, serviceContainer.WebhookDispatcher)

		webhookDispatcher := serviceContainer.WebhookDispatcher.(*WebhookDispatcher)
		assert.Equal(t, DefaultConfig.WebhookWorkers, webhookDispatcher.count)
		assert.Equal(t, DefaultConfig.WebhookQueueSize, cap(webhookDispatcher.queue))
		assert.Equal(t, DefaultConfig.WebhookTimeout, webhookDispatcher.client.Timeout)

		// check sheet repository
		assert.NotNil(t, serviceContainer.SheetRepository)
		assert.IsType(t, &SheetRepository{}, serviceContainer.SheetRepository)

		sheetRepository := serviceContainer.SheetRepository.(*SheetRepository)
		assert.Equal(t, serviceContainer.WebhookDispatcher, sheetRepository.webhookDispatcher)
		assert.Equal(t, serviceContainer.Canonicalizer, sheetRepository.canonicalizer)
		assert.Equal(t, DefaultConfig.MaxDepth, sheetRepository.maxDepth)
		assert.Equal(t, DefaultConfig.HistoryLimit, sheetRepository.historyLimit)

		// check api controller
		assert.NotNil(t, serviceContainer.ApiController)
		assert.IsType(t, &ApiController{}, serviceContainer.ApiController)

		apiController := serviceContainer.ApiController.(*ApiController)
		assert.Equal(t, serviceContainer.SheetRepository, apiController.SheetRepository)
		assert.Equal(t, serviceContainer.WebhookDispatcher, apiController.WebhookDispatcher)
		assert.Equal(t, serviceContainer.Canonicalizer, apiController.Canonicalizer)

		// check router
		assert.NotNil(t, serviceContainer.Router)
		assert.IsType(t, &gin.Engine{}, serviceContainer.Router)

		// 14 api routes + health check
		assert.Len(t, serviceContainer.Router.Routes(), 15)
	})

	t.Run("invalid config", func(t *testing.T) {
		config := DefaultConfig
		config.MaxDepth = -1

		_, err := BuildServiceContainer(config, logger)

		assert.ErrorIs(t, err, InvalidConfigError)
	})
}
