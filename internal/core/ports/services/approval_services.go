package services

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
)

// ApprovalQueueSvc assembles the timesheets a reviewer is responsible for.
type ApprovalQueueSvc interface {
	// GetMembers returns the caller's review queue. Team Leads get their projects' rosters,
	// managers get the Team Leads, everyone else gets a ReviewerNone view.
	GetMembers(ctx context.Context, callerID string, page domain.Pagination) (*domain.QueueView, error)
}

// ApprovalDecisionSvc applies review decisions.
type ApprovalDecisionSvc interface {
	// UpdateTimesheetStatus sets one timesheet's status. A missing timesheet yields (nil, false, nil).
	UpdateTimesheetStatus(ctx context.Context, reviewerID, timesheetID, state string) (*domain.Timesheet, bool, error)

	// UpdateAllTimesheetStatus moves every eligible timesheet of the user overlapping week to status.
	UpdateAllTimesheetStatus(ctx context.Context, userID string, week domain.DateRange, status domain.TimesheetStatus) (int64, error)

	// ManageAllTimesheets approves or rejects a user's whole week and reconciles the rejection ledger.
	ManageAllTimesheets(ctx context.Context, reviewerID string, req dto.ManageAllTimesheetRequest) (*domain.ApprovalResult, error)
}

// ApprovalHistorySvc reads the approval audit trail.
type ApprovalHistorySvc interface {
	GetApprovalHistory(ctx context.Context, userID string, limit int) ([]domain.ApprovalAuditEntry, error)
}

// ApprovalSvcFacade combines all approval service interfaces
type ApprovalSvcFacade interface {
	ApprovalQueueSvc
	ApprovalDecisionSvc
	ApprovalHistorySvc
}
