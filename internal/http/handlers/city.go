package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oriently/oriently-backend/internal/http/response"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/services"
)

type CityHandler struct {
	log         *logger.Logger
	cityService services.CityService
}

func NewCityHandler(log *logger.Logger, cityService services.CityService) *CityHandler {
	return &CityHandler{
		log:         log.With("handler", "CityHandler"),
		cityService: cityService,
	}
}

func (h *CityHandler) SearchCities(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	cities, err := h.cityService.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.log.Error("SearchCities failed", "error", err.Error())
		response.RespondError(c, http.StatusInternalServerError, "search_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"cities": cities})
}

func (h *CityHandler) GetCity(c *gin.Context) {
	name := c.Param("name")

	city, err := h.cityService.GetByName(c.Request.Context(), name)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		response.RespondError(c, http.StatusNotFound, "city_not_found", err)
		return
	}
	if errors.Is(err, pkgerrors.ErrInvalidArgument) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err != nil {
		h.log.Error("GetCity failed", "error", err.Error())
		response.RespondError(c, http.StatusInternalServerError, "lookup_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"city": city})
}
