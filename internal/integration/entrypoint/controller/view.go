package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/application/usecase/view"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

const monthLayout = "2006-01"

// ViewController serves the screen view models.
type ViewController struct {
	homeAssembler       *view.HomeAssembler
	analysisAssembler   *view.AnalysisAssembler
	categoriesAssembler *view.CategoriesAssembler
	now                 func() time.Time
}

// NewViewController creates a new view controller instance.
func NewViewController(
	homeAssembler *view.HomeAssembler,
	analysisAssembler *view.AnalysisAssembler,
	categoriesAssembler *view.CategoriesAssembler,
) *ViewController {
	return &ViewController{
		homeAssembler:       homeAssembler,
		analysisAssembler:   analysisAssembler,
		categoriesAssembler: categoriesAssembler,
		now:                 time.Now,
	}
}

// Home handles GET /views/home requests. The date query defaults to today.
func (c *ViewController) Home(ctx *gin.Context) {
	reference := entity.CalendarDate(c.now())
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(entity.DateLayout, raw, time.Local)
		if err != nil {
			handleError(ctx, domainerror.NewValidationError(domainerror.ErrCodeInvalidDate, "date", "validation failed", domainerror.ErrInvalidDateFormat))
			return
		}
		reference = parsed
	}

	output, err := c.homeAssembler.Execute(ctx.Request.Context(), reference)
	if output == nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(viewStatus(err), dto.ToHomeResponse(output.View, output.Applied))
}

// Analysis handles GET /views/analysis requests. The month query defaults to the current month.
func (c *ViewController) Analysis(ctx *gin.Context) {
	month := c.now()
	if raw := ctx.Query("month"); raw != "" {
		parsed, err := time.ParseInLocation(monthLayout, raw, time.Local)
		if err != nil {
			handleError(ctx, domainerror.NewValidationError(domainerror.ErrCodeInvalidDate, "month", "validation failed", domainerror.ErrInvalidDateFormat))
			return
		}
		month = parsed
	}

	output, err := c.analysisAssembler.Execute(ctx.Request.Context(), view.AnalysisInput{
		Type:  ctx.Query("type"),
		Year:  month.Year(),
		Month: month.Month(),
	})
	if output == nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(viewStatus(err), dto.ToAnalysisResponse(output.View, output.Applied))
}

// Categories handles GET /views/categories requests.
func (c *ViewController) Categories(ctx *gin.Context) {
	output, err := c.categoriesAssembler.Execute(ctx.Request.Context(), ctx.Query("type"))
	if output == nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(viewStatus(err), dto.ToCategoriesResponse(output.View, output.Applied))
}

// viewStatus picks the status code for a view that carries its own state.
func viewStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, view.ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	status, _ := errorStatus(err)
	return status
}
