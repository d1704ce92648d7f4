package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/aakritisaxena/ExpenseManagement/internal/middleware"
	"github.com/gin-gonic/gin"
)

// segmentHandler handles HTTP requests related to budget segments.
type segmentHandler struct {
	segmentService portssvc.SegmentSvcFacade
}

func newSegmentHandler(ss portssvc.SegmentSvcFacade) *segmentHandler {
	return &segmentHandler{segmentService: ss}
}

// registerSegmentRoutes registers routes related to segments.
func registerSegmentRoutes(rg *gin.RouterGroup, segmentService portssvc.SegmentSvcFacade) {
	h := newSegmentHandler(segmentService)

	segments := rg.Group("/segments")
	{
		segments.POST("", h.createSegment)
		segments.GET("", h.listSegments)
		segments.GET("/:id", h.getSegmentByID)
		segments.GET("/:id/usage", h.getSegmentUsage)
		segments.PUT("/:id", h.updateSegment)
	}
}

// createSegment godoc
// @Summary Create a new segment
// @Description Adds a new expense category segment
// @Tags segments
// @Accept json
// @Produce json
// @Param segment body dto.CreateSegmentRequest true "Segment details"
// @Success 201 {object} dto.SegmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Segment name already exists"
// @Failure 500 {object} map[string]string "Failed to create segment"
// @Security BearerAuth
// @Router /segments [post]
func (h *segmentHandler) createSegment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.segmentService.CreateSegment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Segment name already exists"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create segment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create segment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSegmentResponse(created))
}

// listSegments godoc
// @Summary List segments
// @Description Retrieves segments, optionally only active ones
// @Tags segments
// @Produce json
// @Param activeOnly query bool false "Only return active segments"
// @Success 200 {array} dto.SegmentResponse
// @Failure 500 {object} map[string]string "Failed to list segments"
// @Security BearerAuth
// @Router /segments [get]
func (h *segmentHandler) listSegments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))

	segments, err := h.segmentService.ListSegments(c.Request.Context(), activeOnly)
	if err != nil {
		logger.Error("Failed to list segments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list segments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSegmentResponse(segments))
}

// getSegmentByID godoc
// @Summary Get a segment by ID
// @Description Retrieves details for a specific segment
// @Tags segments
// @Produce json
// @Param id path string true "Segment ID"
// @Success 200 {object} dto.SegmentResponse
// @Failure 404 {object} map[string]string "Segment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve segment"
// @Security BearerAuth
// @Router /segments/{id} [get]
func (h *segmentHandler) getSegmentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	segmentID := c.Param("id")

	segment, err := h.segmentService.GetSegmentByID(c.Request.Context(), segmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Segment not found"})
			return
		}
		logger.Error("Failed to get segment", slog.String("error", err.Error()), slog.String("segment_id", segmentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve segment"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSegmentResponse(segment))
}

// getSegmentUsage godoc
// @Summary Get segment usage
// @Description Reports how many expense allocations reference the segment
// @Tags segments
// @Produce json
// @Param id path string true "Segment ID"
// @Success 200 {object} dto.SegmentUsageResponse
// @Failure 404 {object} map[string]string "Segment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve segment usage"
// @Security BearerAuth
// @Router /segments/{id}/usage [get]
func (h *segmentHandler) getSegmentUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	segmentID := c.Param("id")

	usage, err := h.segmentService.GetSegmentUsage(c.Request.Context(), segmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Segment not found"})
			return
		}
		logger.Error("Failed to get segment usage", slog.String("error", err.Error()), slog.String("segment_id", segmentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve segment usage"})
		return
	}

	c.JSON(http.StatusOK, usage)
}

// updateSegment godoc
// @Summary Update a segment
// @Description Updates segment fields. Deactivation is refused while the segment is referenced by expense allocations.
// @Tags segments
// @Accept json
// @Produce json
// @Param id path string true "Segment ID"
// @Param segment body dto.UpdateSegmentRequest true "Fields to update"
// @Success 200 {object} dto.SegmentResponse
// @Failure 400 {object} map[string]string "Invalid input or segment in use"
// @Failure 404 {object} map[string]string "Segment not found"
// @Failure 500 {object} map[string]string "Failed to update segment"
// @Security BearerAuth
// @Router /segments/{id} [put]
func (h *segmentHandler) updateSegment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	segmentID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.segmentService.UpdateSegment(c.Request.Context(), segmentID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Segment not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update segment", slog.String("error", err.Error()), slog.String("segment_id", segmentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update segment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSegmentResponse(updated))
}
