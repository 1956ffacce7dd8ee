package handler

import (
	"net/http"

	"github.com/jefftrojan/afritrade-rev/internal/storage"
	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	uploads storage.Uploader
}

func NewUploadHandler(uploads storage.Uploader) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// UploadImage accepts the multipart "image" field and returns its stored
// URL for use on product listings.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	if h.uploads == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "image storage not configured"))
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image is required"))
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable image"))
	}
	defer src.Close()
	url, err := h.uploads.Upload(c.Request().Context(), "products", fh.Filename, fh.Header.Get("Content-Type"), src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to store image"))
	}
	return c.JSON(http.StatusOK, map[string]string{"image_url": url})
}
