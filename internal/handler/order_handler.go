package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type logisticsResponse struct {
	Company           string `json:"company"`
	TrackingNumber    string `json:"trackingNumber"`
	EstimatedDelivery string `json:"estimatedDelivery"`
	CurrentLocation   string `json:"currentLocation"`
}

type OrderResponse struct {
	OrderID     string            `json:"order_id"`
	ProductID   uint64            `json:"product_id"`
	ProductName string            `json:"product_name"`
	BuyerID     uint64            `json:"buyer_id"`
	BuyerName   string            `json:"buyer_name"`
	Location    string            `json:"location"`
	Quantity    uint              `json:"quantity"`
	UnitPrice   float64           `json:"unit_price"`
	TotalAmount float64           `json:"totalAmount"`
	Status      string            `json:"status"`
	Confirmed   bool              `json:"confirmed"`
	Logistics   logisticsResponse `json:"logistics"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

func toOrderResponse(o *model.Order) OrderResponse {
	return OrderResponse{
		OrderID:     o.ID,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		BuyerID:     o.BuyerID,
		BuyerName:   o.BuyerName,
		Location:    o.Location,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		Confirmed:   o.Confirmed,
		Logistics: logisticsResponse{
			Company:           o.Carrier,
			TrackingNumber:    o.TrackingNumber,
			EstimatedDelivery: o.EstimatedDelivery,
			CurrentLocation:   o.CurrentLocation,
		},
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
	}
}

type createOrderRequest struct {
	ProductID   FlexID `json:"product_id"`
	ProductName string `json:"product_name"`
	BuyerID     FlexID `json:"buyer_id"`
	BuyerName   string `json:"buyer_name"`
	Location    string `json:"location"`
	Quantity    uint   `json:"quantity"`
	Price       string `json:"price"`
	RequestID   string `json:"request_id"`
	Status      string `json:"status"` // accepted and ignored; orders always start Pending
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	buyerID := uint64(req.BuyerID)
	if sess := sessionFrom(c); sess != nil {
		buyerID = sess.UserID
		if req.BuyerName == "" {
			req.BuyerName = sess.Name
		}
	}
	o, created, err := h.svc.Create(c.Request().Context(), service.CreateOrderInput{
		ProductID:   uint64(req.ProductID),
		ProductName: req.ProductName,
		BuyerID:     buyerID,
		BuyerName:   req.BuyerName,
		Location:    req.Location,
		Quantity:    req.Quantity,
		Price:       req.Price,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	return c.JSON(status, toOrderResponse(o))
}

func (h *OrderHandler) Get(c echo.Context) error {
	o, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch order"))
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) List(c echo.Context) error {
	var buyerID uint64
	if sess := sessionFrom(c); sess != nil {
		buyerID = sess.UserID
	}
	if raw := c.QueryParam("buyer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid buyer_id"))
		}
		buyerID = id
	}
	orders, err := h.svc.ListByBuyer(c.Request().Context(), buyerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	o, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) Confirm(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	o, err := h.svc.Confirm(c.Request().Context(), c.Param("id"), sess.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your order"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to confirm order"))
		}
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}
