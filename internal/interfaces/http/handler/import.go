package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opticore/backend/internal/infrastructure/spreadsheet"
	"github.com/opticore/backend/internal/interfaces/http/dto"

	importerapp "github.com/opticore/backend/internal/application/importer"
)

// ImportHandler exposes batch order import: a dry-run validation endpoint
// and a commit endpoint that re-validates before writing.
type ImportHandler struct {
	BaseHandler
	importService *importerapp.OrderImportService
	maxRows       int
}

// NewImportHandler creates a new ImportHandler. maxRows caps the rows
// accepted per call; zero disables the cap.
func NewImportHandler(importService *importerapp.OrderImportService, maxRows int) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		maxRows:       maxRows,
	}
}

// ImportRowRequest is one raw spreadsheet row. LineNumber is the row's
// position in the source file for error reporting; when omitted it is
// derived from the slice position.
type ImportRowRequest struct {
	LineNumber int               `json:"line_number"`
	Data       map[string]string `json:"data" binding:"required"`
}

// ImportBatchRequest binds a batch of raw rows
type ImportBatchRequest struct {
	Rows []ImportRowRequest `json:"rows" binding:"required,min=1"`
}

// ImportCommitResponse pairs the validation outcome with the commit outcome
type ImportCommitResponse struct {
	Validation *importerapp.ValidationResult `json:"validation"`
	Commit     *importerapp.CommitResult     `json:"commit"`
}

func (h *ImportHandler) bindRows(c *gin.Context) ([]spreadsheet.Row, bool) {
	var req ImportBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}
	if h.maxRows > 0 && len(req.Rows) > h.maxRows {
		h.BadRequest(c, "Batch exceeds the row limit per call")
		return nil, false
	}

	rows := make([]spreadsheet.Row, len(req.Rows))
	for i, r := range req.Rows {
		lineNumber := r.LineNumber
		if lineNumber == 0 {
			lineNumber = i + 1
		}
		rows[i] = spreadsheet.Row{LineNumber: lineNumber, Data: r.Data}
	}
	return rows, true
}

// ValidateBatch handles POST /import/orders/validate. The full
// ValidationResult goes back regardless of outcome; field errors and
// duplicates are classifications, not transport errors.
func (h *ImportHandler) ValidateBatch(c *gin.Context) {
	rows, ok := h.bindRows(c)
	if !ok {
		return
	}

	result, err := h.importService.ValidateBatch(c.Request.Context(), rows)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CommitBatch handles POST /import/orders: validate, then commit when
// valid. An invalid batch returns 400 with the validation result attached
// so the caller can discriminate field errors from all-duplicates. A commit
// that stopped partway is still a 200: the result carries FirstFailure and
// the progress counts, and nothing is rolled back.
func (h *ImportHandler) CommitBatch(c *gin.Context) {
	rows, ok := h.bindRows(c)
	if !ok {
		return
	}

	validation, err := h.importService.ValidateBatch(c.Request.Context(), rows)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !validation.IsValid {
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeValidation,
			"Batch is not valid for commit", getRequestID(c))
		resp.Data = ImportCommitResponse{Validation: validation}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	commit, err := h.importService.CommitBatch(c.Request.Context(), validation)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ImportCommitResponse{
		Validation: validation,
		Commit:     commit,
	})
}

// RegisterRoutes registers import routes
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/import")
	{
		imports.POST("/orders/validate", h.ValidateBatch)
		imports.POST("/orders", h.CommitBatch)
	}
}
