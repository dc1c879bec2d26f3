package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
)

type reportHandler struct {
	reportService    portssvc.ReportSvcFacade
	timesheetService portssvc.TimesheetSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade, ts portssvc.TimesheetSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs, timesheetService: ts}
}

// RegisterReportRoutes registers the admin report routes.
func RegisterReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade, timesheetService portssvc.TimesheetSvcFacade) {
	h := newReportHandler(reportService, timesheetService)

	rg.POST("/project-summary-report", h.hoursReport("project summary", reportService.ProjectSummary))
	rg.POST("/project-detail-report", h.hoursReport("project detail", reportService.ProjectDetail))
	rg.POST("/employee-summary-report", h.employeeReport("employee summary", reportService.EmployeeSummary))
	rg.POST("/employee-detail-report", h.employeeReport("employee detail", reportService.EmployeeDetail))
	rg.POST("/monthly-snapshot", h.monthlySnapshot)
	rg.POST("/timesummary", h.timeSummary)
	rg.POST("/pastdue", h.pastDue)
	rg.POST("/getduetimesheet", h.dueTimesheets)
}

// bindReport reads a ReportRequest and checks its range.
func bindReport(c *gin.Context, logger *slog.Logger) (domain.ReportQuery, bool) {
	var req dto.ReportRequest
	if !bindJSON(c, logger, &req) {
		return domain.ReportQuery{}, false
	}
	q := req.ToQuery()
	if !q.Range.Valid() {
		c.JSON(http.StatusBadRequest, dto.Fail("endDate must not be before startDate"))
		return domain.ReportQuery{}, false
	}
	return q, true
}

// hoursReport godoc
// @Summary Project hours report
// @Description Logged and approved hours per project for timesheets ending in the range. The detail variant adds a per category breakdown.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.ReportRequest true "Range and filters"
// @Success 200 {object} dto.Response{data=[]domain.ProjectHours}
// @Failure 400 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/project-summary-report [post]
// @Router /admin/project-detail-report [post]
func (h *reportHandler) hoursReport(name string, build func(ctx context.Context, q domain.ReportQuery) ([]domain.ProjectHours, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("report", name))
		q, ok := bindReport(c, logger)
		if !ok {
			return
		}
		rows, err := build(c.Request.Context(), q)
		if err != nil {
			respondError(c, logger, err, "build "+name+" report")
			return
		}
		c.JSON(http.StatusOK, dto.OK("Report fetched successfully", rows))
	}
}

// employeeReport godoc
// @Summary Employee hours report
// @Description Hours per employee and project for timesheets ending in the range. The detail variant adds a per category breakdown.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.ReportRequest true "Range and filters"
// @Success 200 {object} dto.Response{data=[]domain.EmployeeReport}
// @Failure 400 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/employee-summary-report [post]
// @Router /admin/employee-detail-report [post]
func (h *reportHandler) employeeReport(name string, build func(ctx context.Context, q domain.ReportQuery) ([]domain.EmployeeReport, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("report", name))
		q, ok := bindReport(c, logger)
		if !ok {
			return
		}
		rows, err := build(c.Request.Context(), q)
		if err != nil {
			respondError(c, logger, err, "build "+name+" report")
			return
		}
		c.JSON(http.StatusOK, dto.OK("Report fetched successfully", rows))
	}
}

// monthlySnapshot godoc
// @Summary Timesheet counts per status
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.MonthlySnapshotRequest true "Range and optional user"
// @Success 200 {object} dto.Response{data=[]domain.StatusCount}
// @Failure 400 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/monthly-snapshot [post]
func (h *reportHandler) monthlySnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	var req dto.MonthlySnapshotRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = callerID
	}

	counts, err := h.reportService.MonthlySnapshot(c.Request.Context(), userID, domain.NewDateRange(req.StartDate.Time, req.EndDate.Time))
	if err != nil {
		respondError(c, logger, err, "build monthly snapshot")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Snapshot fetched successfully", counts))
}

// timeSummary godoc
// @Summary Project hours per team member
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.TimeSummaryRequest true "Project and range"
// @Success 200 {object} dto.Response{data=[]domain.TimeSummaryRow}
// @Failure 400 {object} dto.Response "No Data"
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/timesummary [post]
func (h *reportHandler) timeSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TimeSummaryRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	rows, err := h.reportService.TimeSummary(c.Request.Context(), req.ProjectID, domain.NewDateRange(req.StartDate.Time, req.EndDate.Time))
	if err != nil {
		respondError(c, logger, err, "build time summary")
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, dto.Fail("No Data"))
		return
	}
	c.JSON(http.StatusOK, dto.OK("Time summary fetched successfully", rows))
}

// pastDue godoc
// @Summary Past due timesheets
// @Description Open or rejected timesheets of the user that ended before the current week. The user defaults to the caller.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.DueTimesheetRequest false "Optional user"
// @Success 200 {object} dto.Response{data=[]dto.TimesheetResponse}
// @Failure 400 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/pastdue [post]
func (h *reportHandler) pastDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	var req dto.DueTimesheetRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = callerID
	}

	timesheets, err := h.timesheetService.GetPastDueTimesheets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "list past due timesheets")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Past due timesheets fetched successfully", dto.ToTimesheetResponses(timesheets)))
}

// dueTimesheets godoc
// @Summary Due timesheets
// @Description Timesheets of the user overlapping the range that are not approved yet. Defaults to the caller and the current week.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.DueTimesheetRequest false "Optional user and range"
// @Success 200 {object} dto.Response{data=[]dto.TimesheetResponse}
// @Failure 400 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/getduetimesheet [post]
func (h *reportHandler) dueTimesheets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	var req dto.DueTimesheetRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = callerID
	}

	var r domain.DateRange
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() {
		r = domain.NewDateRange(req.StartDate.Time, req.EndDate.Time)
	}
	timesheets, err := h.timesheetService.GetDueTimesheets(c.Request.Context(), userID, r)
	if err != nil {
		respondError(c, logger, err, "list due timesheets")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Due timesheets fetched successfully", dto.ToTimesheetResponses(timesheets)))
}
