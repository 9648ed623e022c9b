package main

import (
	"errors"
	"fmt"
	"gridCalc/contracts"
	"gridCalc/edits"
	"gridCalc/engine"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ApiController struct {
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
	Canonicalizer     contracts.Canonicalizer
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

// SetCellRequest.Value is a pointer so an empty string, which clears the cell, still passes `required`
type SetCellRequest struct {
	Value *string `json:"value" binding:"required"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"omitempty,url"`
}

type FindReplaceRequest struct {
	Find    string `json:"find" binding:"required"`
	Replace string `json:"replace"`
}

var RequestValidationError = errors.New("invalid request")

func NewApiController(
	sheetRepository contracts.SheetRepository,
	webhookDispatcher contracts.WebhookDispatcher,
	canonicalizer contracts.Canonicalizer,
) *ApiController {
	return &ApiController{
		SheetRepository:   sheetRepository,
		WebhookDispatcher: webhookDispatcher,
		Canonicalizer:     canonicalizer,
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.CellView

	err := bindUri(c, &params)

	if err == nil {
		response, err = api.SheetRepository.GetCell(params.SheetId, params.CellId)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	var response *contracts.CellView

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		response, err = api.SheetRepository.SetCell(params.SheetId, params.CellId, *request.Value)
	}

	if err != nil {
		if response == nil {
			response = &contracts.CellView{Address: params.CellId}
		}
		if request.Value != nil {
			response.Value = *request.Value
		}
		response.Result = err.Error()
		c.JSON(http.StatusUnprocessableEntity, response)
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	var response *contracts.CellViewList

	err := bindUri(c, &params)

	if err == nil {
		response, err = api.SheetRepository.GetCellList(params.SheetId)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) GetDependentsAction(c *gin.Context) {
	params := CellEndpointParams{}
	var dependents []string

	err := bindUri(c, &params)

	if err == nil {
		dependents, err = api.SheetRepository.GetDependents(params.SheetId, params.CellId)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, gin.H{"dependents": dependents})
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}

	err := bindUri(c, &params)
	if err == nil {
		if bindErr := c.ShouldBindJSON(&request); bindErr != nil {
			err = fmt.Errorf("%w: %w", RequestValidationError, bindErr)
		}
	}

	var sheetId, cellId string
	if err == nil {
		sheetId = api.Canonicalizer.CanonicalizeSheetId(params.SheetId)
		cellId = api.Canonicalizer.CanonicalizeCellId(params.CellId)
		if _, err = engine.DecodeAddress(cellId); err == nil {
			api.WebhookDispatcher.SetWebhookUrl(sheetId, cellId, request.WebhookUrl)
		}
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusCreated, gin.H{"webhook_url": request.WebhookUrl})
	}
}

// SetStyleAction merges the posted style fields into the cell style
func (api *ApiController) SetStyleAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := contracts.CellStyle{}
	var response *contracts.CellView

	err := bindUri(c, &params)
	if err == nil {
		if bindErr := c.ShouldBindJSON(&request); bindErr != nil {
			err = fmt.Errorf("%w: %w", RequestValidationError, bindErr)
		}
	}

	if err == nil {
		response, err = api.SheetRepository.SetStyle(params.SheetId, params.CellId, request)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) UndoAction(c *gin.Context) {
	api.historyStep(c, api.SheetRepository.Undo)
}

func (api *ApiController) RedoAction(c *gin.Context) {
	api.historyStep(c, api.SheetRepository.Redo)
}

func (api *ApiController) InsertRowAction(c *gin.Context) {
	api.structuralEdit(c, api.SheetRepository.InsertRow)
}

func (api *ApiController) DeleteRowAction(c *gin.Context) {
	api.structuralEdit(c, api.SheetRepository.DeleteRow)
}

func (api *ApiController) InsertColumnAction(c *gin.Context) {
	api.structuralEdit(c, api.SheetRepository.InsertColumn)
}

func (api *ApiController) DeleteColumnAction(c *gin.Context) {
	api.structuralEdit(c, api.SheetRepository.DeleteColumn)
}

func (api *ApiController) FindReplaceAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := FindReplaceRequest{}
	changed := 0

	err := bindUri(c, &params)
	if err == nil {
		if bindErr := c.ShouldBindJSON(&request); bindErr != nil {
			err = fmt.Errorf("%w: %w", RequestValidationError, bindErr)
		}
	}

	if err == nil {
		changed, err = api.SheetRepository.FindReplace(params.SheetId, params.CellId, request.Find, request.Replace)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, gin.H{"changed": changed})
	}
}

func (api *ApiController) RemoveDuplicatesAction(c *gin.Context) {
	params := CellEndpointParams{}
	removed := 0

	err := bindUri(c, &params)
	if err == nil {
		removed, err = api.SheetRepository.RemoveDuplicates(params.SheetId, params.CellId)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	}
}

// structuralEdit runs a row or column edit and answers with the whole updated sheet
func (api *ApiController) structuralEdit(c *gin.Context, apply func(sheetId string, cellId string) error) {
	params := CellEndpointParams{}
	var response *contracts.CellViewList

	err := bindUri(c, &params)
	if err == nil {
		err = apply(params.SheetId, params.CellId)
	}

	if err == nil {
		response, err = api.SheetRepository.GetCellList(params.SheetId)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) historyStep(c *gin.Context, step func(sheetId string) (*contracts.CellViewList, error)) {
	params := SheetEndpointParams{}
	var response *contracts.CellViewList

	err := bindUri(c, &params)
	if err == nil {
		response, err = step(params.SheetId)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func bindUri(c *gin.Context, params any) error {
	if err := c.ShouldBindUri(params); err != nil {
		return fmt.Errorf("%w: %w", RequestValidationError, err)
	}

	return nil
}

func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, contracts.CellNotFoundError), errors.Is(err, contracts.SheetNotFoundError):
		return http.StatusNotFound
	case errors.Is(err, contracts.HistoryEmptyError):
		return http.StatusConflict
	case errors.Is(err, RequestValidationError),
		errors.Is(err, contracts.InvalidAddressError),
		errors.Is(err, contracts.InvalidRangeError),
		errors.Is(err, engine.RangeTooLargeError),
		errors.Is(err, edits.InvalidIndexError):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
