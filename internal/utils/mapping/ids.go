package mapping

import (
	"fmt"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ToObjectID parses a hex id. A malformed id is reported as a validation error on field.
func ToObjectID(field, id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, apperrors.NewValidationError(field, fmt.Sprintf("%s must be a valid id", field))
	}
	return oid, nil
}

// ToObjectIDs parses a list of hex ids.
func ToObjectIDs(field string, ids []string) ([]bson.ObjectID, error) {
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ToObjectID(field, id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

// ToOptionalObjectID parses id, mapping the empty string to nil.
func ToOptionalObjectID(field, id string) (*bson.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := ToObjectID(field, id)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}

// FromObjectIDs converts ids to their hex form.
func FromObjectIDs(ids []bson.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

// FromOptionalObjectID returns the hex form of id, or "" for nil.
func FromOptionalObjectID(id *bson.ObjectID) string {
	if id == nil {
		return ""
	}
	return id.Hex()
}

// ToDecimal128 converts a decimal for storage.
func ToDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	out, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return bson.Decimal128{}, fmt.Errorf("converting %s to decimal128: %w", d.String(), err)
	}
	return out, nil
}

// FromDecimal128 converts a stored decimal. A zero value Decimal128 maps to zero.
func FromDecimal128(d bson.Decimal128) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return out
}
