package handler

import (
	"io"
	"mime"
	"net/http"

	"darb_pms/internal/model"
	"darb_pms/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// InvestmentProjectHandler handles investment project requests
type InvestmentProjectHandler struct {
	responder
	service service.InvestmentProjectService
}

// NewInvestmentProjectHandler creates a new InvestmentProjectHandler
func NewInvestmentProjectHandler(s service.InvestmentProjectService, production bool) *InvestmentProjectHandler {
	return &InvestmentProjectHandler{responder: responder{production: production}, service: s}
}

func (h *InvestmentProjectHandler) CreateProject(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req model.CreateInvestmentProjectRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	project, err := h.service.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Project created successfully", "data": project})
}

func (h *InvestmentProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context(), optionalQuery(c, "departmentType"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Projects retrieved successfully", "data": projects, "count": len(projects)})
}

func (h *InvestmentProjectHandler) ListProjectsByStation(c *gin.Context) {
	projects, err := h.service.ListByStation(c.Request.Context(), c.Param("stationCode"), optionalQuery(c, "departmentType"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Projects retrieved successfully", "data": projects, "count": len(projects)})
}

func (h *InvestmentProjectHandler) GetProject(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	project, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project retrieved successfully", "data": project})
}

func (h *InvestmentProjectHandler) UpdateProject(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.respondError(c, errInvalidBody)
		return
	}

	project, err := h.service.Update(c.Request.Context(), id, patch, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project updated successfully", "data": project})
}

func (h *InvestmentProjectHandler) UpdateReviewStatus(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	role, err := getAuthUserRole(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req model.ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	project, err := h.service.UpdateReviewStatus(c.Request.Context(), id, req, role, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project review status updated", "data": project})
}

func (h *InvestmentProjectHandler) DeleteProject(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	project, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully", "data": project})
}

func (h *InvestmentProjectHandler) FeasibilityStats(c *gin.Context) {
	stats, err := h.service.FeasibilityStats(c.Request.Context(), optionalQuery(c, "departmentType"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stats retrieved", "data": stats})
}

func (h *InvestmentProjectHandler) ContractStats(c *gin.Context) {
	stats, err := h.service.ContractStats(c.Request.Context(), optionalQuery(c, "departmentType"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract stats retrieved", "data": stats})
}

func (h *InvestmentProjectHandler) UploadAttachment(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, errMissingFile)
		return
	}

	project, err := h.service.UploadAttachment(c.Request.Context(), id, c.Param("kind"), fileHeader, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment uploaded successfully", "data": project})
}

func (h *InvestmentProjectHandler) DownloadAttachment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	rc, filename, err := h.service.OpenAttachment(c.Request.Context(), id, c.Param("kind"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		log.WithField("project_id", id).WithError(err).Warn("attachment download interrupted")
	}
}

// RegisterInvestmentProjectRoutes registers investment project routes
func (h *InvestmentProjectHandler) RegisterInvestmentProjectRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	projects := rg.Group("/investment-projects", authMW)
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/station/:stationCode", h.ListProjectsByStation)
		projects.GET("/feasibility-stats", h.FeasibilityStats)
		projects.GET("/contract-stats", h.ContractStats)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.PATCH("/:id/review", h.UpdateReviewStatus)
		projects.DELETE("/:id", h.DeleteProject)
		projects.POST("/:id/attachments/:kind", h.UploadAttachment)
		projects.GET("/:id/attachments/:kind", h.DownloadAttachment)
	}
}
