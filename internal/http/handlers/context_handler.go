package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/krishi-mitra/internal/enrich"
	"github.com/tbourn/krishi-mitra/internal/utils"
)

// GetContext godoc
// @ID          getContext
// @Summary     Location and weather context
// @Description Reverse geocodes the coordinates and fetches the current weather. Lookups are best effort: failures or missing coordinates leave the corresponding fields empty and the endpoint still answers 200.
// @Tags        Context
// @Produce     json
//
// @Param       lat  query  number  false  "Latitude"   minimum(-90)  maximum(90)
// @Param       lon  query  number  false  "Longitude"  minimum(-180) maximum(180)
//
// @Success     200  {object} enrich.Context
// @Router      /context [get]
func (h *Handlers) GetContext(c *gin.Context) {
	lat, okLat := utils.ParseFloat(c.Query("lat"))
	lon, okLon := utils.ParseFloat(c.Query("lon"))
	if !okLat || !okLon || h.ctxSvc == nil || !enrich.ValidCoordinates(lat, lon) {
		ok(c, http.StatusOK, enrich.Context{})
		return
	}
	ok(c, http.StatusOK, h.ctxSvc.Lookup(c.Request.Context(), lat, lon))
}
