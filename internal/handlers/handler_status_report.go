package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
)

type statusReportHandler struct {
	reportService portssvc.StatusReportSvcFacade
}

// RegisterStatusReportRoutes registers the /api/project-status-report routes.
func RegisterStatusReportRoutes(rg *gin.RouterGroup, reportService portssvc.StatusReportSvcFacade) {
	h := &statusReportHandler{reportService: reportService}

	rg.POST("/add", h.createReport)
	rg.POST("/get", h.listReports)
	rg.GET("/get/:id", h.getReport)
	rg.PUT("/update/:id", h.updateReport)
	rg.GET("/dropdown/:type", h.dropdown)
}

// createReport godoc
// @Summary Add a project status report
// @Tags status-reports
// @Accept json
// @Produce json
// @Param request body dto.StatusReportRequest true "Report"
// @Success 201 {object} dto.Response{data=domain.ProjectStatusReport}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /project-status-report/add [post]
func (h *statusReportHandler) createReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StatusReportRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	report, err := h.reportService.CreateStatusReport(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "create status report")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Status report created successfully", report))
}

// listReports godoc
// @Summary List status reports, newest first
// @Tags status-reports
// @Accept json
// @Produce json
// @Param request body dto.PageRequest false "Page and limit"
// @Success 200 {object} dto.Response{data=dto.ListStatusReportsResponse}
// @Security BearerAuth
// @Router /project-status-report/get [post]
func (h *statusReportHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PageRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}
	resp, err := h.reportService.ListStatusReports(c.Request.Context(), domain.NewPagination(req.Page, req.Limit))
	if err != nil {
		respondError(c, logger, err, "list status reports")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Status reports fetched successfully", resp))
}

// getReport godoc
// @Summary Get a status report
// @Tags status-reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.Response{data=domain.ProjectStatusReport}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /project-status-report/get/{id} [get]
func (h *statusReportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.reportService.GetStatusReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "get status report")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Status report fetched successfully", report))
}

// updateReport godoc
// @Summary Replace a status report
// @Tags status-reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body dto.StatusReportRequest true "Report"
// @Success 200 {object} dto.Response{data=domain.ProjectStatusReport}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /project-status-report/update/{id} [put]
func (h *statusReportHandler) updateReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StatusReportRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	report, err := h.reportService.UpdateStatusReport(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "update status report")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Status report updated successfully", report))
}

// dropdown godoc
// @Summary Selection lists for the report form
// @Tags status-reports
// @Produce json
// @Param type path string true "projects or leads"
// @Success 200 {object} dto.Response{data=[]domain.DropdownItem}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /project-status-report/dropdown/{type} [get]
func (h *statusReportHandler) dropdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	items, err := h.reportService.Dropdown(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondError(c, logger, err, "build dropdown")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Dropdown fetched successfully", items))
}
