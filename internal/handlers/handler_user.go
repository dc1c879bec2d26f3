package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
)

// userHandler serves the self-service routes of the signed-in user.
type userHandler struct {
	userService         portssvc.UserSvcFacade
	timesheetService    portssvc.TimesheetSvcFacade
	notificationService portssvc.NotificationSvcFacade
}

// RegisterUserRoutes registers the /api/user routes.
func RegisterUserRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &userHandler{
		userService:         services.User,
		timesheetService:    services.Timesheet,
		notificationService: services.Notification,
	}

	rg.POST("/profile-view", h.profileView)
	rg.POST("/notifications", h.notifications)

	timesheets := rg.Group("/timesheets")
	{
		timesheets.POST("", h.createTimesheet)
		timesheets.POST("/:id/entries", h.updateEntries)
		timesheets.POST("/:id/submit", h.submitTimesheet)
	}
	rg.POST("/weekly-timesheets", h.weeklyTimesheets)
	rg.POST("/current-day-timesheets", h.currentDayTimesheets)
}

// profileView godoc
// @Summary Caller profile
// @Description Profile of the signed-in user with role and reporting manager names resolved.
// @Tags user
// @Produce json
// @Success 200 {object} dto.Response{data=domain.UserProfile}
// @Failure 401 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /user/profile-view [post]
func (h *userHandler) profileView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "load profile")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Profile fetched successfully", profile))
}

// notifications godoc
// @Summary Caller notifications, newest first
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.NotificationsRequest false "Page and limit"
// @Success 200 {object} dto.Response{data=[]domain.Notification}
// @Security BearerAuth
// @Router /user/notifications [post]
func (h *userHandler) notifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	var req dto.NotificationsRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}
	list, err := h.notificationService.ListNotifications(c.Request.Context(), userID, domain.NewPagination(req.Page, req.Limit))
	if err != nil {
		respondError(c, logger, err, "list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Notifications fetched successfully", list))
}

// createTimesheet godoc
// @Summary Create a timesheet
// @Tags timesheets
// @Accept json
// @Produce json
// @Param request body dto.CreateTimesheetRequest true "Timesheet"
// @Success 201 {object} dto.Response{data=dto.TimesheetResponse}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /user/timesheets [post]
func (h *userHandler) createTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	var req dto.CreateTimesheetRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	ts, err := h.timesheetService.CreateTimesheet(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "create timesheet")
		return
	}
	logger.Info("Timesheet created", slog.String("timesheet_id", ts.ID))
	c.JSON(http.StatusCreated, dto.OK("Timesheet created successfully", dto.ToTimesheetResponse(ts)))
}

// updateEntries godoc
// @Summary Upsert daily entries
// @Description Replaces the hours of the given days and may move the timesheet to in_progress or submitted.
// @Tags timesheets
// @Accept json
// @Produce json
// @Param id path string true "Timesheet ID"
// @Param request body dto.UpdateTimesheetEntriesRequest true "Entries"
// @Success 200 {object} dto.Response{data=dto.TimesheetResponse}
// @Failure 400 {object} dto.Response
// @Failure 403 {object} dto.Response "Approved or owned by another user"
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response "Status changed since it was read"
// @Security BearerAuth
// @Router /user/timesheets/{id}/entries [post]
func (h *userHandler) updateEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("timesheet_id", c.Param("id")))
	userID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateTimesheetEntriesRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	ts, err := h.timesheetService.UpdateTimesheetEntries(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "update timesheet entries")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Timesheet updated successfully", dto.ToTimesheetResponse(ts)))
}

// submitTimesheet godoc
// @Summary Submit a timesheet for review
// @Tags timesheets
// @Produce json
// @Param id path string true "Timesheet ID"
// @Success 200 {object} dto.Response{data=dto.TimesheetResponse}
// @Failure 400 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /user/timesheets/{id}/submit [post]
func (h *userHandler) submitTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("timesheet_id", c.Param("id")))
	userID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	ts, err := h.timesheetService.SubmitTimesheet(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "submit timesheet")
		return
	}
	logger.Info("Timesheet submitted")
	c.JSON(http.StatusOK, dto.OK("Timesheet submitted successfully", dto.ToTimesheetResponse(ts)))
}

// weeklyTimesheets godoc
// @Summary Caller timesheets overlapping a range
// @Tags timesheets
// @Accept json
// @Produce json
// @Param request body dto.WeekRequest true "Range"
// @Success 200 {object} dto.Response{data=[]dto.TimesheetResponse}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /user/weekly-timesheets [post]
func (h *userHandler) weeklyTimesheets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	var req dto.WeekRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	list, err := h.timesheetService.GetWeeklyTimesheets(c.Request.Context(), userID, domain.NewDateRange(req.StartDate.Time, req.EndDate.Time))
	if err != nil {
		respondError(c, logger, err, "list weekly timesheets")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Timesheets fetched successfully", dto.ToTimesheetResponses(list)))
}

// currentDayTimesheets godoc
// @Summary Caller timesheets with an entry for today
// @Tags timesheets
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.TimesheetResponse}
// @Security BearerAuth
// @Router /user/current-day-timesheets [post]
func (h *userHandler) currentDayTimesheets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	list, err := h.timesheetService.GetCurrentDayTimesheets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "list current day timesheets")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Timesheets fetched successfully", dto.ToTimesheetResponses(list)))
}
