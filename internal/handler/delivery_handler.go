package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/service"
	"github.com/labstack/echo/v4"
)

type DeliveryHandler struct {
	svc service.DeliveryService
}

func NewDeliveryHandler(svc service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

type DeliveryRequestResponse struct {
	ID            string `json:"id"`
	Product       string `json:"product"`
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	Quantity      int    `json:"quantity"`
	ClientContact string `json:"client_contact"`
	Status        string `json:"status"`
}

func toRequestResponse(r *model.DeliveryRequest) DeliveryRequestResponse {
	return DeliveryRequestResponse{
		ID:            r.ID,
		Product:       r.Product,
		Source:        r.Source,
		Destination:   r.Destination,
		Quantity:      r.Quantity,
		ClientContact: r.ClientContact,
		Status:        string(r.Status),
	}
}

type DeliveryStatusResponse struct {
	ID            string `json:"id"`
	RequestID     string `json:"request_id"`
	Product       string `json:"product"`
	Quantity      int    `json:"quantity"`
	ClientContact string `json:"client_contact"`
	Date          string `json:"date,omitempty"`
	Status        string `json:"status"`
}

func toStatusResponse(ds *model.DeliveryStatus) DeliveryStatusResponse {
	resp := DeliveryStatusResponse{
		ID:            ds.ID,
		RequestID:     ds.RequestID,
		Product:       ds.Product,
		Quantity:      ds.Quantity,
		ClientContact: ds.ClientContact,
		Status:        string(ds.Status),
	}
	if !ds.Date.IsZero() {
		resp.Date = ds.Date.Format(time.RFC3339)
	}
	return resp
}

func (h *DeliveryHandler) writeErr(c echo.Context, err error, noun string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", noun+" not found"))
	case errors.Is(err, service.ErrAlreadyResolved):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", noun+" already resolved"))
	case errors.Is(err, service.ErrBadTransition):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "status transition not allowed"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update "+noun))
	}
}

func (h *DeliveryHandler) ListRequests(c echo.Context) error {
	reqs, err := h.svc.ListRequests(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch delivery requests"))
	}
	resp := make([]DeliveryRequestResponse, 0, len(reqs))
	for i := range reqs {
		resp = append(resp, toRequestResponse(&reqs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DeliveryHandler) ListConfirmedRequests(c echo.Context) error {
	reqs, err := h.svc.ListConfirmedRequests(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch confirmed orders"))
	}
	resp := make([]DeliveryRequestResponse, 0, len(reqs))
	for i := range reqs {
		resp = append(resp, toRequestResponse(&reqs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type createRequestBody struct {
	Product       string `json:"product"`
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	Quantity      int    `json:"quantity"`
	ClientContact string `json:"client_contact"`
}

func (h *DeliveryHandler) CreateRequest(c echo.Context) error {
	var body createRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	req := &model.DeliveryRequest{
		Product:       body.Product,
		Source:        body.Source,
		Destination:   body.Destination,
		Quantity:      body.Quantity,
		ClientContact: body.ClientContact,
	}
	if err := h.svc.CreateRequest(c.Request().Context(), req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toRequestResponse(req))
}

func (h *DeliveryHandler) Accept(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	ds, err := h.svc.Accept(c.Request().Context(), c.Param("id"), sess.UserID)
	if err != nil {
		return h.writeErr(c, err, "delivery request")
	}
	return c.JSON(http.StatusOK, toStatusResponse(ds))
}

func (h *DeliveryHandler) Decline(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	req, err := h.svc.Decline(c.Request().Context(), c.Param("id"), sess.UserID)
	if err != nil {
		return h.writeErr(c, err, "delivery request")
	}
	return c.JSON(http.StatusOK, toRequestResponse(req))
}

func (h *DeliveryHandler) ListActive(c echo.Context) error {
	list, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch deliveries"))
	}
	resp := make([]DeliveryStatusResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toStatusResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DeliveryHandler) ListDelivered(c echo.Context) error {
	list, err := h.svc.ListDelivered(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch deliveries"))
	}
	resp := make([]DeliveryStatusResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toStatusResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type updateDeliveryStateRequest struct {
	Status string `json:"status"`
}

func (h *DeliveryHandler) UpdateDeliveryState(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	var req updateDeliveryStateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	ds, err := h.svc.UpdateDeliveryState(c.Request().Context(), c.Param("id"), model.DeliveryState(req.Status), sess.UserID)
	if err != nil {
		return h.writeErr(c, err, "delivery")
	}
	return c.JSON(http.StatusOK, toStatusResponse(ds))
}
