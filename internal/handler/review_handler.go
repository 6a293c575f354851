package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hrdesk/review-api/internal/dto"
	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
	"github.com/hrdesk/review-api/pkg/response"
)

type reviewService interface {
	Pages() []models.PageView
	Progress() (approved, total int)
	Page(page int) (*models.PageView, error)
	Approve(page int) (*models.PageView, error)
	SaveText(page int, text string) (*models.PageView, error)
}

// ReviewHandler exposes the per-page document review endpoints.
type ReviewHandler struct {
	review reviewService
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(review reviewService) *ReviewHandler {
	return &ReviewHandler{review: review}
}

func pageParam(c *gin.Context) (int, error) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "page must be a number")
	}
	return page, nil
}

// List godoc
// @Summary List pages
// @Description Returns every page with its review status and stored text
// @Tags Review
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pages [get]
func (h *ReviewHandler) List(c *gin.Context) {
	approved, total := h.review.Progress()
	meta := map[string]interface{}{
		"approved": approved,
		"total":    total,
	}
	response.JSON(c, http.StatusOK, h.review.Pages(), meta)
}

// Page godoc
// @Summary Get a page
// @Description Returns one page's review status and stored text
// @Tags Review
// @Produce json
// @Param page path int true "Page number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pages/{page} [get]
func (h *ReviewHandler) Page(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.review.Page(page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Approve godoc
// @Summary Approve a page
// @Description Marks a page approved; approval is one-way and persisted before it is acknowledged
// @Tags Review
// @Produce json
// @Param page path int true "Page number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /pages/{page}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.review.Approve(page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SaveText godoc
// @Summary Save page text
// @Description Replaces the stored text for a page regardless of its review status
// @Tags Review
// @Accept json
// @Produce json
// @Param page path int true "Page number"
// @Param payload body dto.SaveTextRequest true "Page text"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pages/{page}/text [put]
func (h *ReviewHandler) SaveText(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.SaveTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid text payload"))
		return
	}
	view, err := h.review.SaveText(page, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
