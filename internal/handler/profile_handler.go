package handler

import (
	"net/http"
	"strconv"

	"github.com/jefftrojan/afritrade-rev/internal/auth"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileResponse struct {
	UserID       string   `json:"user_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Vehicle      string   `json:"vehicle"`
	Availability []string `json:"availability"`
	LicenseURL   string   `json:"license_url,omitempty"`
}

func toProfileResponse(p *model.CourierProfile) ProfileResponse {
	avail := p.Availability
	if avail == nil {
		avail = []string{}
	}
	return ProfileResponse{
		UserID:       p.UserID,
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Vehicle:      p.Vehicle,
		Availability: avail,
		LicenseURL:   p.LicenseURL,
	}
}

func ownerFrom(sess *auth.Session) service.ProfileOwner {
	return service.ProfileOwner{
		UID:   strconv.FormatUint(sess.UserID, 10),
		Name:  sess.Name,
		Email: sess.Email,
	}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	p, err := h.svc.Get(c.Request().Context(), ownerFrom(sess))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}

type updateProfileRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Vehicle      string   `json:"vehicle"`
	Availability []string `json:"availability"`
}

func (h *ProfileHandler) Update(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p := &model.CourierProfile{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Vehicle:      req.Vehicle,
		Availability: req.Availability,
	}
	if err := h.svc.Update(c.Request().Context(), ownerFrom(sess), p); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update profile"))
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}

func (h *ProfileHandler) UploadLicense(c echo.Context) error {
	sess := sessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file is required"))
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable file"))
	}
	defer src.Close()
	url, err := h.svc.AttachLicense(c.Request().Context(), ownerFrom(sess), fh.Filename, fh.Header.Get("Content-Type"), src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to store license"))
	}
	return c.JSON(http.StatusOK, map[string]string{"license_url": url})
}
