package handler

import (
	"net/http"

	"darb_pms/internal/model"
	"darb_pms/internal/service"

	"github.com/gin-gonic/gin"
)

// TankHandler handles tank requests
type TankHandler struct {
	responder
	service service.TankService
}

// NewTankHandler creates a new TankHandler
func NewTankHandler(s service.TankService, production bool) *TankHandler {
	return &TankHandler{responder: responder{production: production}, service: s}
}

func (h *TankHandler) CreateTank(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req model.CreateTankRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	tank, err := h.service.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Tank created successfully", "data": tank})
}

func (h *TankHandler) ListTanks(c *gin.Context) {
	tanks, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tanks retrieved successfully", "data": tanks, "count": len(tanks)})
}

func (h *TankHandler) ListTanksByStation(c *gin.Context) {
	tanks, err := h.service.ListByStation(c.Request.Context(), c.Param("stationCode"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tanks retrieved successfully", "data": tanks, "count": len(tanks)})
}

func (h *TankHandler) GetTank(c *gin.Context) {
	tank, err := h.service.Get(c.Request.Context(), c.Param("tankCode"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tank retrieved successfully", "data": tank})
}

func (h *TankHandler) UpdateTank(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req model.UpdateTankRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	tank, err := h.service.Update(c.Request.Context(), c.Param("tankCode"), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tank updated successfully", "data": tank})
}

func (h *TankHandler) DeleteTank(c *gin.Context) {
	tank, err := h.service.Delete(c.Request.Context(), c.Param("tankCode"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tank deleted successfully", "data": tank})
}

// RegisterTankRoutes registers tank routes
func (h *TankHandler) RegisterTankRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	tanks := rg.Group("/tanks", authMW)
	{
		tanks.POST("", h.CreateTank)
		tanks.GET("", h.ListTanks)
		tanks.GET("/station/:stationCode", h.ListTanksByStation)
		tanks.GET("/:tankCode", h.GetTank)
		tanks.PUT("/:tankCode", h.UpdateTank)
		tanks.DELETE("/:tankCode", h.DeleteTank)
	}
}
