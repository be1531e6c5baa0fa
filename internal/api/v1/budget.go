package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/flexprice/budgetpdf/internal/api/dto"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/service"
	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	budgetService service.BudgetService
	logger        *logger.Logger
}

func NewBudgetHandler(budgetService service.BudgetService, logger *logger.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// GetBudgetPDF godoc
// @Summary Get PDF for a budget
// @Description Render the PDF document for one of the caller's budgets
// @Tags Budgets
// @Param id path int true "Budget ID"
// @Param url query bool false "Return presigned URL from s3 instead of PDF"
// @Success 200 {file} application/pdf
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /budgets/{id}/pdf [get]
func (h *BudgetHandler) GetBudgetPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Error(ierr.NewErrorf("invalid budget id %q", c.Param("id")).
			WithHint("Invalid budget ID").
			Mark(ierr.ErrValidation))
		return
	}

	if c.Query("url") == "true" {
		url, err := h.budgetService.GetBudgetPDFUrl(c.Request.Context(), id)
		if err != nil {
			h.logger.Errorw("failed to get budget pdf url", "error", err, "budget_id", id)
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, dto.BudgetPDFUrlResponse{PresignedURL: url})
		return
	}

	pdf, err := h.budgetService.GetBudgetPDF(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to generate budget pdf", "error", err, "budget_id", id)
		c.Error(err)
		return
	}

	writePDF(c, pdf)
}

// PreviewBudgetPDF godoc
// @Summary Preview a budget PDF
// @Description Render a budget sent in the request body without storing it
// @Tags Budgets
// @Accept json
// @Produce application/pdf
// @Param budget body dto.RenderBudgetRequest true "Budget"
// @Success 200 {file} application/pdf
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /budgets/preview [post]
func (h *BudgetHandler) PreviewBudgetPDF(c *gin.Context) {
	var req dto.RenderBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	doc, err := req.ToDocument(h.logger)
	if err != nil {
		c.Error(err)
		return
	}

	pdf, err := h.budgetService.PreviewBudgetPDF(c.Request.Context(), doc)
	if err != nil {
		h.logger.Errorw("failed to preview budget pdf", "error", err, "budget_number", doc.Number)
		c.Error(err)
		return
	}

	writePDF(c, pdf)
}

func writePDF(c *gin.Context, pdf *service.BudgetPDF) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", pdf.Filename))
	c.Header("Cache-Control", "no-cache")
	if pdf.URL != "" {
		c.Header(types.HeaderPDFURL, pdf.URL)
	}
	c.Data(http.StatusOK, "application/pdf", pdf.Data)
}
