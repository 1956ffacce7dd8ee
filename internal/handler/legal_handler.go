package handler

import (
	"errors"
	"net/http"

	"github.com/jefftrojan/afritrade-rev/internal/ai"
	"github.com/jefftrojan/afritrade-rev/internal/reqctx"
	"github.com/labstack/echo/v4"
)

type LegalHandler struct {
	rag *ai.RagClient
}

func NewLegalHandler(rag *ai.RagClient) *LegalHandler {
	return &LegalHandler{rag: rag}
}

type askLegalRequest struct {
	UserInput string `json:"user_input"`
}

// AskLegal proxies free-text trade/legal questions to the retrieval service
// and returns its answer verbatim under the key the screens read.
func (h *LegalHandler) AskLegal(c echo.Context) error {
	var req askLegalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.UserInput == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "user_input is required"))
	}
	ctx := reqctx.WithRID(c.Request().Context(), c.Response().Header().Get(echo.HeaderXRequestID))
	answer, err := h.rag.Ask(ctx, req.UserInput)
	if err != nil {
		if errors.Is(err, ai.ErrUpstream) {
			return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "Sorry, I couldn't get an answer at this time. Please try again later."))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to answer question"))
	}
	return c.JSON(http.StatusOK, map[string]string{"response": answer})
}
