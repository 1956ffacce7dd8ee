package handler

import (
	"errors"
	"net/http"

	"github.com/jefftrojan/afritrade-rev/internal/payment"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	client *payment.Client
}

func NewPaymentHandler(client *payment.Client) *PaymentHandler {
	return &PaymentHandler{client: client}
}

type createInvoiceBody struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type invoiceResponse struct {
	InvoiceNumber string  `json:"invoice_number"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Status        string  `json:"payment_status,omitempty"`
	PaymentURL    string  `json:"payment_url,omitempty"`
	PublicKey     string  `json:"public_key,omitempty"`
}

// CreateInvoice issues a provider invoice server-side; the public key in
// the response is what the browser widget needs for the modal hand-off.
func (h *PaymentHandler) CreateInvoice(c echo.Context) error {
	var body createInvoiceBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	inv, err := h.client.CreateInvoice(c.Request().Context(), body.Amount, body.Description)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotConfigured):
			return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "payment gateway not configured"))
		case errors.Is(err, payment.ErrGateway):
			return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "failed to create invoice"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, invoiceResponse{
		InvoiceNumber: inv.InvoiceNumber,
		TransactionID: inv.TransactionID,
		Amount:        inv.Amount,
		Status:        inv.Status,
		PaymentURL:    inv.PaymentURL,
		PublicKey:     h.client.PublicKey(),
	})
}

func (h *PaymentHandler) GetInvoice(c echo.Context) error {
	inv, err := h.client.GetInvoice(c.Request().Context(), c.Param("number"))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotConfigured):
			return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "payment gateway not configured"))
		default:
			return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "failed to fetch invoice"))
		}
	}
	return c.JSON(http.StatusOK, invoiceResponse{
		InvoiceNumber: inv.InvoiceNumber,
		TransactionID: inv.TransactionID,
		Amount:        inv.Amount,
		Status:        inv.Status,
		PaymentURL:    inv.PaymentURL,
	})
}
