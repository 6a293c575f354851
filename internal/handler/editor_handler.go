package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrdesk/review-api/internal/dto"
	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
	"github.com/hrdesk/review-api/pkg/export"
	"github.com/hrdesk/review-api/pkg/response"
)

// editorService is the surface the handler needs; implemented by
// service.EditorService.
type editorService interface {
	Snapshot(ctx context.Context, actor string, refresh bool) (*dto.SnapshotResponse, error)
	RecordEdits(ctx context.Context, actor string, req dto.BatchEditRequest) (*dto.BatchEditResponse, error)
	Pending(actor string) *dto.PendingResponse
	Reset(actor string)
	Commit(ctx context.Context, actor string) (*models.CommitResult, error)
	SnapshotDataset(ctx context.Context, actor string) (export.Dataset, error)
}

// EditorHandler exposes the employee edit-review-commit endpoints.
type EditorHandler struct {
	editor editorService
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
}

// NewEditorHandler constructs handler.
func NewEditorHandler(editor editorService) *EditorHandler {
	return &EditorHandler{editor: editor, csv: export.NewCSVExporter(), pdf: export.NewPDFExporter()}
}

// Snapshot godoc
// @Summary Current employee snapshot
// @Tags Employees
// @Produce json
// @Param refresh query bool false "Force a re-load from the store"
// @Success 200 {object} response.Envelope
// @Router /employees [get]
func (h *EditorHandler) Snapshot(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	snapshot, err := h.editor.Snapshot(c.Request.Context(), actorFromContext(c), refresh)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot)
}

// RecordEdits godoc
// @Summary Record pending cell edits
// @Tags Employees
// @Accept json
// @Produce json
// @Param payload body dto.BatchEditRequest true "Edit batch"
// @Success 200 {object} response.Envelope
// @Router /employees/edits [post]
func (h *EditorHandler) RecordEdits(c *gin.Context) {
	var req dto.BatchEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.editor.RecordEdits(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Pending godoc
// @Summary List pending edits
// @Tags Employees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /employees/edits [get]
func (h *EditorHandler) Pending(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.editor.Pending(actorFromContext(c)))
}

// Reset godoc
// @Summary Discard pending edits
// @Tags Employees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /employees/edits [delete]
func (h *EditorHandler) Reset(c *gin.Context) {
	h.editor.Reset(actorFromContext(c))
	response.JSON(c, http.StatusOK, gin.H{"status": "reset"})
}

// Commit godoc
// @Summary Commit pending edits
// @Tags Employees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /employees/commit [post]
func (h *EditorHandler) Commit(c *gin.Context) {
	result, err := h.editor.Commit(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ExportCSV godoc
// @Summary Download the snapshot as CSV
// @Tags Employees
// @Produce text/csv
// @Success 200 {file} file
// @Router /employees/export.csv [get]
func (h *EditorHandler) ExportCSV(c *gin.Context) {
	data, err := h.editor.SnapshotDataset(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.csv.Render(data)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed"))
		return
	}
	response.File(c, "text/csv", "employees.csv", payload)
}

// ExportPDF godoc
// @Summary Download the snapshot as a PDF report
// @Tags Employees
// @Produce application/pdf
// @Success 200 {file} file
// @Router /employees/export.pdf [get]
func (h *EditorHandler) ExportPDF(c *gin.Context) {
	data, err := h.editor.SnapshotDataset(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.pdf.Render(data, "Employee Table")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed"))
		return
	}
	response.File(c, "application/pdf", "employees.pdf", payload)
}
