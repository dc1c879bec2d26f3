package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
)

const noTimesheetsForReview = "No Timesheets for Review"

// approvalHandler serves the reviewer endpoints of the admin area.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{approvalService: as}
}

// RegisterApprovalRoutes registers the approval routes on an authenticated group.
func RegisterApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approvalService)

	rg.POST("/approvalcenter", h.approvalCenter)
	rg.POST("/managetimesheet", h.manageTimesheet)
	rg.POST("/manage-all-timesheet", h.manageAllTimesheets)
	rg.POST("/approval-history", h.approvalHistory)
}

// approvalCenter godoc
// @Summary Review queue
// @Description Team Leads get the rosters of the projects they lead, managers get the Team Leads.
// @Tags approval
// @Accept json
// @Produce json
// @Param request body dto.ApprovalCenterRequest false "Page and limit"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "No Timesheets for Review"
// @Failure 401 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/approvalcenter [post]
func (h *approvalHandler) approvalCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}

	var req dto.ApprovalCenterRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}

	view, err := h.approvalService.GetMembers(c.Request.Context(), callerID, domain.NewPagination(req.Page, req.Limit))
	if err != nil {
		logger.Error("Failed to build approval queue", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
		return
	}

	switch view.Kind {
	case domain.ReviewerTeamLead:
		c.JSON(http.StatusOK, dto.OK("Project Team fetched successfully", dto.ToProjectTeamResponses(view.Teams)))
	case domain.ReviewerManager:
		c.JSON(http.StatusOK, dto.OK("Team Leads fetched successfully", dto.ToTeamMemberResponses(view.TeamLeads)))
	default:
		logger.Info("Caller has no review queue")
		c.JSON(http.StatusBadRequest, dto.OK(noTimesheetsForReview, []any{}))
	}
}

// manageTimesheet godoc
// @Summary Change one timesheet's status
// @Tags approval
// @Accept json
// @Produce json
// @Param request body dto.ManageTimesheetRequest true "Timesheet and target state"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Timesheet Status not updated"
// @Failure 401 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/managetimesheet [post]
func (h *approvalHandler) manageTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reviewerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}

	var req dto.ManageTimesheetRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	logger = logger.With(slog.String("timesheet_id", req.TimesheetID), slog.String("state", req.State))

	ts, updated, err := h.approvalService.UpdateTimesheetStatus(c.Request.Context(), reviewerID, req.TimesheetID, req.State)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Timesheet status change rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.Fail(validationMessage(err)))
			return
		}
		logger.Error("Failed to update timesheet status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
		return
	}
	if !updated {
		logger.Warn("Timesheet status not updated")
		c.JSON(http.StatusBadRequest, dto.OK("Timesheet Status not updated", []any{}))
		return
	}

	logger.Info("Timesheet status updated")
	c.JSON(http.StatusOK, dto.OK("Timesheet Status updated successfully", dto.ToTimesheetResponse(ts)))
}

// manageAllTimesheets godoc
// @Summary Approve or reject a user's week
// @Description Applies the decision to every timesheet of the week and keeps the rejection note in step.
// @Tags approval
// @Accept json
// @Produce json
// @Param request body dto.ManageAllTimesheetRequest true "Decision"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response "Another decision on the same week is in progress"
// @Failure 422 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/manage-all-timesheet [post]
func (h *approvalHandler) manageAllTimesheets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reviewerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}

	// Field rules are checked by the service so failures surface as 422.
	var req dto.ManageAllTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ManageAllTimesheets", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.Fail("Invalid request format"))
		return
	}
	logger = logger.With(slog.String("target_user_id", req.UserID), slog.String("status", req.Status))

	result, err := h.approvalService.ManageAllTimesheets(c.Request.Context(), reviewerID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Week decision rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, dto.Fail(validationMessage(err)))
		case errors.Is(err, apperrors.ErrLockTimeout), errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Week decision already in progress", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, dto.Fail("Approval already in progress"))
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Timesheet not found for week decision")
			c.JSON(http.StatusNotFound, dto.Fail("Timesheet not found"))
		default:
			logger.Error("Failed to apply week decision", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
		}
		return
	}

	logger.Info("Week decision applied", slog.String("outcome", string(result.Outcome)), slog.Int64("updated", result.Updated))
	c.JSON(http.StatusOK, dto.OK(outcomeMessage(result.Outcome), []any{}))
}

func outcomeMessage(outcome domain.ApprovalOutcome) string {
	switch outcome {
	case domain.OutcomeRejectionCleared:
		return "Timesheet Approved"
	case domain.OutcomeNotesUpdated:
		return "Timesheet Notes updated successfully"
	default:
		return "Timesheet Status updated successfully"
	}
}

// approvalHistory godoc
// @Summary Review decisions on a user's timesheets
// @Tags approval
// @Accept json
// @Produce json
// @Param request body dto.ApprovalHistoryRequest true "User and limit"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 503 {object} dto.Response "Audit store disabled"
// @Security BearerAuth
// @Router /admin/approval-history [post]
func (h *approvalHandler) approvalHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireCaller(c, logger); !ok {
		return
	}

	var req dto.ApprovalHistoryRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	entries, err := h.approvalService.GetApprovalHistory(c.Request.Context(), req.UserID, req.Limit)
	if err != nil {
		respondError(c, logger, err, "read approval history")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Approval history fetched successfully", entries))
}
