package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
)

// PgxApprovalAuditRepository stores the approval audit trail in PostgreSQL.
type PgxApprovalAuditRepository struct {
	BaseRepository
}

// NewApprovalAuditRepository creates a new repository for the approval audit trail.
func NewApprovalAuditRepository(pool *pgxpool.Pool) *PgxApprovalAuditRepository {
	return &PgxApprovalAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ApprovalAuditRepository = (*PgxApprovalAuditRepository)(nil)

// RecordApproval appends an entry to the audit trail.
func (r *PgxApprovalAuditRepository) RecordApproval(ctx context.Context, entry domain.ApprovalAuditEntry) error {
	query := `
		INSERT INTO approval_audits (reviewer_id, user_id, timesheet_id, week_start, week_end, decision, outcome, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.Pool.Exec(ctx, query,
		entry.ReviewerID,
		entry.UserID,
		entry.TimesheetID,
		entry.WeekStart,
		entry.WeekEnd,
		string(entry.Decision),
		string(entry.Outcome),
		entry.Notes,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record approval for timesheet %s: %w", entry.TimesheetID, err)
	}
	return nil
}

// ListApprovalsForUser returns the most recent audit entries about a user.
func (r *PgxApprovalAuditRepository) ListApprovalsForUser(ctx context.Context, userID string, limit int) ([]domain.ApprovalAuditEntry, error) {
	query := `
		SELECT id, reviewer_id, user_id, timesheet_id, week_start, week_end, decision, outcome, notes, created_at
		FROM approval_audits
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2;
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query approval audits for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries := []domain.ApprovalAuditEntry{}
	for rows.Next() {
		var e domain.ApprovalAuditEntry
		var decision, outcome string
		if err := rows.Scan(
			&e.ID,
			&e.ReviewerID,
			&e.UserID,
			&e.TimesheetID,
			&e.WeekStart,
			&e.WeekEnd,
			&decision,
			&outcome,
			&e.Notes,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan approval audit row: %w", err)
		}
		e.Decision = domain.TimesheetStatus(decision)
		e.Outcome = domain.ApprovalOutcome(outcome)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval audit rows: %w", err)
	}
	return entries, nil
}
