package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// FlexInt accepts a JSON number or a numeric string; the signup form has
// historically sent capacity both ways. The stored value is always an int.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

type registerClientRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Location        string `json:"location"`
	BusinessType    string `json:"business_type"`
	TradeFocus      string `json:"trade_focus"`
}

type registerSupplierRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	ConfirmPassword   string   `json:"confirm_password"`
	CompanyName       string   `json:"company_name"`
	Location          string   `json:"location"`
	ProductCategories []string `json:"product_categories"`
	Capacity          FlexInt  `json:"capacity"`
}

type registerTransporterRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Location        string   `json:"location"`
	TransportModes  []string `json:"transport_modes"`
	RegionsCovered  []string `json:"regions_covered"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// roleIDKey returns the response key the screens use to pick up the
// identifier: client_id, supplier_id or transporter_id.
func roleIDKey(role model.Role) string {
	switch role {
	case model.RoleBusiness:
		return "client_id"
	case model.RoleSupplier:
		return "supplier_id"
	case model.RoleCourier:
		return "transporter_id"
	}
	return "user_id"
}

func authResponse(u *model.User, token string) map[string]interface{} {
	return map[string]interface{}{
		roleIDKey(u.Role): u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"role":            string(u.Role),
		"token":           token,
	}
}

func (h *AuthHandler) writeAuthErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	case errors.Is(err, service.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", err.Error()))
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
}

func (h *AuthHandler) RegisterClient(c echo.Context) error {
	var req registerClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	u, token, err := h.svc.RegisterBusiness(c.Request().Context(), service.RegisterBusinessInput{
		Credentials: service.Credentials{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: confirmOrPassword(req.ConfirmPassword, req.Password),
		},
		Location:     req.Location,
		BusinessType: req.BusinessType,
		TradeFocus:   req.TradeFocus,
	})
	if err != nil {
		return h.writeAuthErr(c, err)
	}
	return c.JSON(http.StatusCreated, authResponse(u, token))
}

func (h *AuthHandler) RegisterSupplier(c echo.Context) error {
	var req registerSupplierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	u, token, err := h.svc.RegisterSupplier(c.Request().Context(), service.RegisterSupplierInput{
		Credentials: service.Credentials{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: confirmOrPassword(req.ConfirmPassword, req.Password),
		},
		CompanyName:       req.CompanyName,
		Location:          req.Location,
		ProductCategories: req.ProductCategories,
		Capacity:          int(req.Capacity),
	})
	if err != nil {
		return h.writeAuthErr(c, err)
	}
	return c.JSON(http.StatusCreated, authResponse(u, token))
}

func (h *AuthHandler) RegisterTransporter(c echo.Context) error {
	var req registerTransporterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	u, token, err := h.svc.RegisterCourier(c.Request().Context(), service.RegisterCourierInput{
		Credentials: service.Credentials{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: confirmOrPassword(req.ConfirmPassword, req.Password),
		},
		Location:       req.Location,
		TransportModes: req.TransportModes,
		RegionsCovered: req.RegionsCovered,
	})
	if err != nil {
		return h.writeAuthErr(c, err)
	}
	return c.JSON(http.StatusCreated, authResponse(u, token))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	u, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.writeAuthErr(c, err)
	}
	return c.JSON(http.StatusOK, authResponse(u, token))
}

// The step-1 form already blocked mismatches client-side, so the final
// submission may omit confirm_password; treat absence as agreement.
func confirmOrPassword(confirm, password string) string {
	if confirm == "" {
		return password
	}
	return confirm
}
