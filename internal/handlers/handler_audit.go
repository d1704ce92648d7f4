package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/aakritisaxena/ExpenseManagement/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler handles HTTP requests over the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers routes related to the audit trail.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit-logs")
	{
		audit.GET("", h.listAuditLogs)
	}
}

// listAuditLogs godoc
// @Summary List audit trail entries
// @Description Retrieves audit entries matching the filter, timestamp ascending. Restricted to finance admins and auditors.
// @Tags audit
// @Produce json
// @Param actorID query string false "Filter by acting user"
// @Param entityType query string false "Filter by entity type"
// @Param entityID query string false "Filter by entity ID"
// @Param from query string false "Filter from timestamp (RFC3339)"
// @Param to query string false "Filter to timestamp (RFC3339)"
// @Param limit query int false "Max results (default 50)"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list audit logs"
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter := portsrepo.AuditLogFilter{
		ActorID:    c.Query("actorID"),
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityID"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from, expected RFC3339"})
			return
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to, expected RFC3339"})
			return
		}
		filter.To = &t
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	entries, newNextToken, err := h.auditService.ListAuditLogs(c.Request.Context(), filter, requestingUserID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to read the audit trail"})
			return
		}
		logger.Error("Failed to list audit logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit logs"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAuditLogsResponse{
		Entries:   dto.ToListAuditLogResponse(entries),
		NextToken: newNextToken,
	})
}
