package mapping_test

import (
	"testing"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestToModelTimesheet_StoresHoursAsText(t *testing.T) {
	day := time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC)
	ts := domain.Timesheet{
		ProjectID:      bson.NewObjectID().Hex(),
		UserID:         bson.NewObjectID().Hex(),
		TaskCategoryID: bson.NewObjectID().Hex(),
		StartDate:      day,
		EndDate:        day.AddDate(0, 0, 5),
		DataSheet:      []domain.DataSheetEntry{{Date: day, Hours: decimal.RequireFromString("7.50")}},
		Status:         domain.TimesheetInProgress,
	}

	m, err := mapping.ToModelTimesheet(ts)
	require.NoError(t, err)
	assert.True(t, m.ID.IsZero())
	assert.Equal(t, "7.5", m.DataSheet[0].Hours)

	m.ID = bson.NewObjectID()
	back, err := mapping.ToDomainTimesheet(m)
	require.NoError(t, err)
	assert.Equal(t, m.ID.Hex(), back.ID)
	assert.True(t, back.DataSheet[0].Hours.Equal(decimal.RequireFromString("7.5")))
}

func TestToModelTimesheet_RejectsMalformedIDs(t *testing.T) {
	_, err := mapping.ToModelTimesheet(domain.Timesheet{ProjectID: "P1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestToDomainTimesheet_MalformedHours(t *testing.T) {
	_, err := mapping.ToDomainTimesheet(models.Timesheet{
		DataSheet: []models.DataSheetEntry{{Hours: "eight"}},
	})
	assert.Error(t, err)
}

func TestDecimal128Conversion(t *testing.T) {
	d128, err := mapping.ToDecimal128(decimal.RequireFromString("1234.56"))
	require.NoError(t, err)
	assert.Equal(t, "1234.56", mapping.FromDecimal128(d128).String())
	assert.True(t, mapping.FromDecimal128(bson.Decimal128{}).IsZero())
}

func TestOptionalObjectID(t *testing.T) {
	oid, err := mapping.ToOptionalObjectID("project_name", "")
	require.NoError(t, err)
	assert.Nil(t, oid)
	assert.Equal(t, "", mapping.FromOptionalObjectID(nil))
}
