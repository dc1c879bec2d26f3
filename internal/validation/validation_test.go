package validation_test

import (
	"errors"
	"testing"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validID = "6750a1b2c3d4e5f601234567"

func TestValidator_ManageAllTimesheetRequest(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		req     dto.ManageAllTimesheetRequest
		wantMsg string
	}{
		{
			name: "valid rejection",
			req:  dto.ManageAllTimesheetRequest{TimesheetID: validID, Status: "rejected", UserID: "u1", Notes: "incomplete"},
		},
		{
			name: "approval without notes",
			req:  dto.ManageAllTimesheetRequest{TimesheetID: validID, Status: "approved", UserID: "u1"},
		},
		{
			name:    "rejection without notes",
			req:     dto.ManageAllTimesheetRequest{TimesheetID: validID, Status: "rejected", UserID: "u1"},
			wantMsg: "notes is required when status is rejected",
		},
		{
			name:    "missing timesheet id",
			req:     dto.ManageAllTimesheetRequest{Status: "approved", UserID: "u1"},
			wantMsg: "timesheetid is required",
		},
		{
			name:    "malformed timesheet id",
			req:     dto.ManageAllTimesheetRequest{TimesheetID: "T1", Status: "approved", UserID: "u1"},
			wantMsg: "timesheetid must be a valid id",
		},
		{
			name:    "unknown status",
			req:     dto.ManageAllTimesheetRequest{TimesheetID: validID, Status: "submitted", UserID: "u1"},
			wantMsg: "status must be one of [approved rejected]",
		},
		{
			name:    "missing user",
			req:     dto.ManageAllTimesheetRequest{TimesheetID: validID, Status: "approved"},
			wantMsg: "userid is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidator_CollectsEveryField(t *testing.T) {
	err := validation.New().Struct(dto.ManageAllTimesheetRequest{})
	require.Error(t, err)

	var verrs apperrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Equal(t, "timesheetid", verrs[0].Field)
}

func TestTranslate_PassesThroughOtherErrors(t *testing.T) {
	assert.NoError(t, validation.Translate(nil))
	assert.Equal(t, assert.AnError, validation.Translate(assert.AnError))
}

func TestRegisterGin(t *testing.T) {
	require.NoError(t, validation.RegisterGin())
}
