package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/krishi-mitra/internal/market"
)

// MarketPricesResponse lists reference prices per quintal in INR.
type MarketPricesResponse struct {
	Prices []market.ReferencePrice `json:"prices"`
	Unit   string                  `json:"unit" example:"INR/quintal"`
}

// ListMarketPrices godoc
// @ID          listMarketPrices
// @Summary     Reference market prices
// @Description Returns the current reference price table, optionally filtered by a case-insensitive substring of the crop name.
// @Tags        Market
// @Produce     json
//
// @Param       q  query  string  false  "Crop name filter"
//
// @Success     200  {object} handlers.MarketPricesResponse
// @Router      /market/prices [get]
func (h *Handlers) ListMarketPrices(c *gin.Context) {
	ok(c, http.StatusOK, MarketPricesResponse{
		Prices: market.SearchReference(c.Query("q")),
		Unit:   "INR/quintal",
	})
}
