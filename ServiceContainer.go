package main

import (
	"gridCalc/contracts"
	"log/slog"

	"github.com/gin-gonic/gin"
)

type ServiceContainer struct {
	Config            Config
	Logger            *slog.Logger
	Canonicalizer     contracts.Canonicalizer
	WebhookDispatcher contracts.WebhookDispatcher
	SheetRepository   contracts.SheetRepository
	ApiController     contracts.ApiController
	Router            *gin.Engine
}

func BuildServiceContainer(config Config, logger *slog.Logger) (container ServiceContainer, err error) {
	if err = config.Validate(); err != nil {
		return
	}

	container.Config = config
	container.Logger = logger
	container.Canonicalizer = NewCanonicalizer()
	container.WebhookDispatcher = NewWebhookDispatcher(config, logger)
	container.SheetRepository = NewSheetRepository(container.Canonicalizer, container.WebhookDispatcher, config.MaxDepth, config.HistoryLimit, logger)
	container.ApiController = NewApiController(container.SheetRepository, container.WebhookDispatcher, container.Canonicalizer)

	container.Router = SetupRouter(container.ApiController, gin.Recovery(), RequestLogger(logger))

	return
}
