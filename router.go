package main

import (
	"gridCalc/contracts"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const ApiVersion = "v1"

const subscribePath = "subscribe"
const dependentsPath = "dependents"
const insertRowPath = "insertRow"
const deleteRowPath = "deleteRow"
const insertColumnPath = "insertColumn"
const deleteColumnPath = "deleteColumn"
const findReplacePath = "findReplace"
const removeDuplicatesPath = "removeDuplicates"
const stylePath = "style"
const undoPath = "undo"
const redoPath = "redo"

func SetupRouter(controller contracts.ApiController, middlewares ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middlewares...)

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+subscribePath, controller.SubscribeAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id/"+dependentsPath, controller.GetDependentsAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+insertRowPath, controller.InsertRowAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+deleteRowPath, controller.DeleteRowAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+insertColumnPath, controller.InsertColumnAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+deleteColumnPath, controller.DeleteColumnAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+findReplacePath, controller.FindReplaceAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+removeDuplicatesPath, controller.RemoveDuplicatesAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+stylePath, controller.SetStyleAction)
	apiRouterGroup.POST("/:sheet_id/"+undoPath, controller.UndoAction)
	apiRouterGroup.POST("/:sheet_id/"+redoPath, controller.RedoAction)

	apiRouterGroup.POST("/:sheet_id/:cell_id", controller.SetCellAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id", controller.GetCellAction)
	apiRouterGroup.GET("/:sheet_id", controller.GetSheetAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}

// RequestLogger writes one structured line per request
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(started),
		)
	}
}
