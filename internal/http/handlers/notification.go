package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/deliverysla-backend/internal/http/response"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/services"
)

type NotificationHandler struct {
	inbox services.InboxService
}

func NewNotificationHandler(inbox services.InboxService) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

type dismissRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// GET /api/users/:id/notifications
func (h *NotificationHandler) ListForUser(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	items, err := h.inbox.List(dbctx.New(c.Request.Context()), userID)
	if err != nil {
		response.RespondServiceError(c, "list_notifications_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"notifications": items})
}

// PATCH /api/notifications/:id
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_notification_id", err)
		return
	}
	var req dismissRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.inbox.Dismiss(dbctx.New(c.Request.Context()), id, req.UserID); err != nil {
		response.RespondServiceError(c, "dismiss_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"id": id, "dismissed": true})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
