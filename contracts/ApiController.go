package contracts

import "github.com/gin-gonic/gin"

type ApiController interface {
	SetCellAction(c *gin.Context)
	GetCellAction(c *gin.Context)
	GetSheetAction(c *gin.Context)
	GetDependentsAction(c *gin.Context)
	SubscribeAction(c *gin.Context)
	SetStyleAction(c *gin.Context)
	UndoAction(c *gin.Context)
	RedoAction(c *gin.Context)
	InsertRowAction(c *gin.Context)
	DeleteRowAction(c *gin.Context)
	InsertColumnAction(c *gin.Context)
	DeleteColumnAction(c *gin.Context)
	FindReplaceAction(c *gin.Context)
	RemoveDuplicatesAction(c *gin.Context)
}
