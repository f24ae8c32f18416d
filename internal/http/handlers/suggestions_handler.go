package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/krishi-mitra/internal/services"
	"github.com/tbourn/krishi-mitra/internal/suggestions"
	"github.com/tbourn/krishi-mitra/internal/utils"
)

// SuggestionsResponse is the catalog plus, when a query was given, the search hits.
type SuggestionsResponse struct {
	suggestions.Catalog
	Query   string                   `json:"query,omitempty"`
	Results []services.SuggestionHit `json:"results,omitempty"`
}

// GetSuggestions godoc
// @ID          getSuggestions
// @Summary     Crop tips, schemes and soil advice
// @Description Returns the suggestions catalog in the requested language. With q, also returns keyword matches over tips, schemes and notes.
// @Tags        Suggestions
// @Produce     json
//
// @Param       lang   query  string  false  "Language (en|ml or a locale tag)"  default(en)
// @Param       q      query  string  false  "Keyword query"
// @Param       limit  query  int     false  "Maximum search hits"  minimum(1) maximum(20) default(5)
//
// @Success     200  {object} handlers.SuggestionsResponse
// @Failure     503  {object} handlers.ErrorResponse
// @Router      /suggestions [get]
func (h *Handlers) GetSuggestions(c *gin.Context) {
	if h.suggestSvc == nil {
		unavailable(c, "suggestions")
		return
	}
	ctx := c.Request.Context()
	lang := c.Query("lang")
	if lang == "" {
		lang = c.GetHeader("Accept-Language")
	}

	resp := SuggestionsResponse{Catalog: h.suggestSvc.Catalog(ctx, lang)}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		limit := utils.AtoiDefault(c.Query("limit"), 5)
		if limit < 1 {
			limit = 1
		}
		if limit > 20 {
			limit = 20
		}
		resp.Query = q
		resp.Results = h.suggestSvc.Search(ctx, lang, q, limit)
	}
	ok(c, http.StatusOK, resp)
}
