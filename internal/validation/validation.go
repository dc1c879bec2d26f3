// Package validation wires go-playground/validator with the custom rules used by
// request DTOs and translates its errors into apperrors.ValidationErrors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Validator checks structs tagged with `validate`.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := register(v); err != nil {
		// Registration only fails on an empty tag name.
		panic(err)
	}
	return &Validator{validate: v}
}

// Struct validates s and returns apperrors.ValidationErrors on failure.
func (v *Validator) Struct(s any) error {
	return Translate(v.validate.Struct(s))
}

// RegisterGin adds the custom rules and json field naming to gin's binding engine.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return register(v)
}

func register(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)
	rules := map[string]validator.Func{
		"objectid":         isObjectID,
		"department":       isDepartment,
		"timesheet_status": isTimesheetStatus,
		"decision_status":  isDecisionStatus,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("registering %s: %w", tag, err)
		}
	}
	return nil
}

// fieldName reports a field by its json name, falling back to its form name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func isObjectID(fl validator.FieldLevel) bool {
	_, err := bson.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func isDepartment(fl validator.FieldLevel) bool {
	value := domain.Department(fl.Field().String())
	for _, d := range domain.Departments {
		if d == value {
			return true
		}
	}
	return false
}

func isTimesheetStatus(fl validator.FieldLevel) bool {
	return domain.TimesheetStatus(fl.Field().String()).IsValid()
}

func isDecisionStatus(fl validator.FieldLevel) bool {
	return domain.TimesheetStatus(fl.Field().String()).IsReviewDecision()
}

// Translate converts validator errors into apperrors.ValidationErrors.
// Any other error, including nil, is returned unchanged.
func Translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(apperrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperrors.NewValidationError(fe.Field(), message(fe)))
	}
	return out
}

// BindingMessage returns a client facing message for an error from gin's ShouldBind*.
func BindingMessage(err error) string {
	translated := Translate(err)
	var verrs apperrors.ValidationErrors
	if errors.As(translated, &verrs) {
		return verrs.Error()
	}
	return "Invalid request format: " + err.Error()
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, describeCondition(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "objectid":
		return field + " must be a valid id"
	case "department":
		names := make([]string, 0, len(domain.Departments))
		for _, d := range domain.Departments {
			names = append(names, string(d))
		}
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(names, " "))
	case "timesheet_status", "decision_status":
		return field + " is not a valid status"
	case "email":
		return field + " must be a valid email"
	case "numeric":
		return field + " must be a number"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// describeCondition renders a required_if parameter such as "Status rejected".
func describeCondition(param string) string {
	parts := strings.Fields(param)
	conds := make([]string, 0, len(parts)/2)
	for i := 0; i+1 < len(parts); i += 2 {
		conds = append(conds, fmt.Sprintf("%s is %s", lowerFirst(parts[i]), parts[i+1]))
	}
	return strings.Join(conds, " and ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
