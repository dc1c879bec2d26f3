package repositories

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// RejectionNoteReader defines read operations for the rejection ledger
type RejectionNoteReader interface {
	// FindByWeek returns the note for the user and week, or apperrors.ErrNotFound.
	FindByWeek(ctx context.Context, userID string, week domain.DateRange) (*domain.RejectionNote, error)
}

// RejectionNoteWriter defines write operations for the rejection ledger
type RejectionNoteWriter interface {
	// CreateRejectionNote inserts a note. It returns apperrors.ErrDuplicate if the week already has one.
	CreateRejectionNote(ctx context.Context, note domain.RejectionNote) (*domain.RejectionNote, error)

	// UpdateRejectionNotes replaces the notes text and refreshes the update timestamp.
	UpdateRejectionNotes(ctx context.Context, noteID string, notes string) error

	// DeleteRejectionNote removes a note. Deleting a missing note is not an error.
	DeleteRejectionNote(ctx context.Context, noteID string) error
}

// RejectionNoteRepositoryFacade combines all rejection ledger interfaces
type RejectionNoteRepositoryFacade interface {
	RejectionNoteReader
	RejectionNoteWriter
}

// ApprovalAuditRepository appends reviewer actions to the audit trail.
type ApprovalAuditRepository interface {
	RecordApproval(ctx context.Context, entry domain.ApprovalAuditEntry) error

	// ListApprovalsForUser returns the most recent entries for a user, newest first.
	ListApprovalsForUser(ctx context.Context, userID string, limit int) ([]domain.ApprovalAuditEntry, error)
}
