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

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type ProductResponse struct {
	ID             uint64 `json:"id"`
	ProductName    string `json:"product_name"`
	Location       string `json:"location"`
	SupplierName   string `json:"supplier_name"`
	ProductDetails string `json:"product_details"`
	ImageURL       string `json:"image_url"`
	UserID         uint64 `json:"user_id"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type productRequest struct {
	ProductName    string `json:"product_name"`
	Location       string `json:"location"`
	SupplierName   string `json:"supplier_name"`
	ProductDetails string `json:"product_details"`
	ImageURL       string `json:"image_url"`
	UserID         FlexID `json:"user_id"`
}

func toProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		ProductName:    p.ProductName,
		Location:       p.Location,
		SupplierName:   p.SupplierName,
		ProductDetails: p.ProductDetails,
		ImageURL:       p.ImageURL,
		UserID:         p.UserID,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		products []model.Product
		err      error
	)
	if raw := c.QueryParam("user_id"); raw != "" {
		userID, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user_id"))
		}
		products, err = h.svc.ListByOwner(ctx, userID)
	} else {
		products, err = h.svc.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch products"))
	}
	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p := &model.Product{
		ProductName:    req.ProductName,
		Location:       req.Location,
		SupplierName:   req.SupplierName,
		ProductDetails: req.ProductDetails,
		ImageURL:       req.ImageURL,
		UserID:         uint64(req.UserID),
	}
	if err := h.svc.Create(c.Request().Context(), p); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) Update(c echo.Context) error {
	userID, name, err := ownerAndName(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	updated := &model.Product{
		ProductName:    req.ProductName,
		Location:       req.Location,
		SupplierName:   req.SupplierName,
		ProductDetails: req.ProductDetails,
		ImageURL:       req.ImageURL,
	}
	p, err := h.svc.Update(c.Request().Context(), userID, name, updated)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "product not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update product"))
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	userID, name, err := ownerAndName(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	if err := h.svc.Delete(c.Request().Context(), userID, name); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "product not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete product"))
	}
	return c.NoContent(http.StatusNoContent)
}

// ownerAndName reads the (user_id, product_name) pair that keys product
// updates and deletes on the wire.
func ownerAndName(c echo.Context) (uint64, string, error) {
	raw := c.QueryParam("user_id")
	name := c.QueryParam("product_name")
	if raw == "" || name == "" {
		return 0, "", errors.New("user_id and product_name are required")
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, "", errors.New("invalid user_id")
	}
	return userID, name, nil
}
