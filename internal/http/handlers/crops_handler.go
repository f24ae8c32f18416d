package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/krishi-mitra/internal/advisory"
	"github.com/tbourn/krishi-mitra/internal/services"
)

// PostCrops godoc
// @ID          postCrops
// @Summary     Ask the crop doctor
// @Description Sends the farmer's question and/or a crop image to the advisory model and returns its markdown reply plus a sanitized HTML rendering.
// @Tags        Advisory
// @Accept      json
// @Produce     json
//
// @Param       body  body     advisory.CropsRequest  true  "Prompt text, language (en|ml) and optional base64 image"
//
// @Success     200   {object} advisory.CropsResponse
// @Failure     400   {object} handlers.ErrorResponse "Neither prompt nor image, bad image data or prompt too long"
// @Failure     502   {object} handlers.ErrorResponse "Advisory model failed"
// @Failure     503   {object} handlers.ErrorResponse "Advisory model not configured"
// @Router      /crops [post]
func (h *Handlers) PostCrops(c *gin.Context) {
	if h.adviceSvc == nil {
		unavailable(c, "advice")
		return
	}

	var body advisory.CropsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	out, err := h.adviceSvc.Advise(c.Request.Context(), services.AdviceInput{
		Prompt:    body.PromptText,
		Language:  body.Language,
		ImageData: body.ImageData,
	})
	if err != nil {
		var ge *advisory.GatewayError
		switch {
		case errors.Is(err, advisory.ErrInvalidRequest):
			badRequest(c, "promptText or imageData is required")
		case errors.Is(err, advisory.ErrInvalidImage), errors.Is(err, services.ErrTooLong):
			badRequest(c, err.Error())
		case errors.Is(err, advisory.ErrModelUnavailable):
			fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, err.Error())
		case errors.As(err, &ge):
			fail(c, http.StatusBadGateway, ErrCodeAdviceFailed, ge.Message)
		default:
			fail(c, http.StatusBadGateway, ErrCodeAdviceFailed, "advisory model request failed")
		}
		return
	}

	ok(c, http.StatusOK, advisory.CropsResponse{Advice: out.Text, HTML: out.HTML})
}
