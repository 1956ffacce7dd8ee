package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/service"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type NotificationResponse struct {
	ID        uint64  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	OrderID   *string `json:"order_id,omitempty"`
	RequestID *string `json:"request_id,omitempty"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"created_at"`
}

func toNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		OrderID:   n.OrderID,
		RequestID: n.RequestID,
		Read:      n.ReadAt != nil,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func (h *NotificationHandler) List(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	unreadOnly := c.QueryParam("unread") == "true"
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	list, err := h.svc.List(c.Request().Context(), sess.UserID, unreadOnly, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch notifications"))
	}
	resp := make([]NotificationResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toNotificationResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	if err := h.svc.MarkAllRead(c.Request().Context(), sess.UserID); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to mark notifications read"))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) CountUnread(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	cnt, err := h.svc.CountUnread(c.Request().Context(), sess.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to count notifications"))
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread": cnt})
}
