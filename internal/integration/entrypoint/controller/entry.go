package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/application/usecase/entry"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// EntryController handles the entry form endpoints.
type EntryController struct {
	categoryOptionsUseCase *entry.CategoryOptionsUseCase
	saveTransactionUseCase *entry.SaveTransactionUseCase
	saveGoalUseCase        *entry.SaveGoalUseCase
}

// NewEntryController creates a new entry controller instance.
func NewEntryController(
	categoryOptionsUseCase *entry.CategoryOptionsUseCase,
	saveTransactionUseCase *entry.SaveTransactionUseCase,
	saveGoalUseCase *entry.SaveGoalUseCase,
) *EntryController {
	return &EntryController{
		categoryOptionsUseCase: categoryOptionsUseCase,
		saveTransactionUseCase: saveTransactionUseCase,
		saveGoalUseCase:        saveGoalUseCase,
	}
}

// CategoryOptions handles GET /entries/categories requests.
func (c *EntryController) CategoryOptions(ctx *gin.Context) {
	output, err := c.categoryOptionsUseCase.Execute(ctx.Request.Context(), ctx.Query("mode"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryOptionsResponse(output.Mode, output.Categories, output.Applied))
}

// SaveTransaction handles POST /entries/transactions requests.
func (c *EntryController) SaveTransaction(ctx *gin.Context) {
	var req dto.SaveTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx)
		return
	}

	tx, err := c.saveTransactionUseCase.Execute(ctx.Request.Context(), entry.SaveTransactionInput{
		ID:          req.ID,
		Type:        req.Type,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(*tx))
}

// SaveGoal handles POST /entries/goals requests.
func (c *EntryController) SaveGoal(ctx *gin.Context) {
	var req dto.SaveGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx)
		return
	}

	goal, err := c.saveGoalUseCase.Execute(ctx.Request.Context(), entry.SaveGoalInput{
		ID:          req.ID,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(*goal))
}
