package handler

import (
	"errors"
	"fmt"
	"net/http"

	"darb_pms/internal/apperror"
	"darb_pms/internal/model"
	"darb_pms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// StationHandler handles station information requests. The :stationCode
// parameter also accepts the numeric id.
type StationHandler struct {
	responder
	service service.StationService
}

// NewStationHandler creates a new StationHandler
func NewStationHandler(s service.StationService, production bool) *StationHandler {
	return &StationHandler{responder: responder{production: production}, service: s}
}

func (h *StationHandler) CreateStation(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req model.StationInput
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	station, err := h.service.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Station information created successfully", "data": station})
}

func (h *StationHandler) ListStations(c *gin.Context) {
	stations, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Station information retrieved successfully", "data": stations, "count": len(stations)})
}

func (h *StationHandler) GetStation(c *gin.Context) {
	station, err := h.service.Get(c.Request.Context(), c.Param("stationCode"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Station information retrieved successfully", "data": station})
}

func (h *StationHandler) UpdateStation(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req model.UpdateStationRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	station, err := h.service.Update(c.Request.Context(), c.Param("stationCode"), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Station information updated successfully", "data": station})
}

func (h *StationHandler) DeleteStation(c *gin.Context) {
	station, err := h.service.Delete(c.Request.Context(), c.Param("stationCode"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Station information deleted successfully", "data": station})
}

func (h *StationHandler) BulkCreateStations(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Rows failing their binding tags are still decoded; BulkImport reports
	// them per row instead of rejecting the batch.
	var req []model.StationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		var rowErrs binding.SliceValidationError
		if !errors.As(err, &rowErrs) {
			h.respondError(c, apperror.Validation("Expected an array of stations"))
			return
		}
	}

	result, err := h.service.BulkImport(c.Request.Context(), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      fmt.Sprintf("Processed %d stations", result.Processed),
		"successCount": len(result.Stations),
		"errorCount":   len(result.Errors),
		"data":         result.Stations,
		"errors":       result.Errors,
	})
}

// RegisterStationRoutes registers station routes
func (h *StationHandler) RegisterStationRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	stations := rg.Group("/stations", authMW)
	{
		stations.POST("", h.CreateStation)
		stations.POST("/bulk", h.BulkCreateStations)
		stations.GET("", h.ListStations)
		stations.GET("/:stationCode", h.GetStation)
		stations.PUT("/:stationCode", h.UpdateStation)
		stations.DELETE("/:stationCode", h.DeleteStation)
	}
}
