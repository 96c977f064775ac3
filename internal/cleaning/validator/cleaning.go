package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"datacleaner/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

// Details flattens the errors for an API error response.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, e := range v {
		details[e.Field] = e.Message
	}
	return details
}

type CleaningValidator struct {
	validate *validator.Validate
}

func NewCleaningValidator() *CleaningValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names, the ones clients send
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &CleaningValidator{
		validate: v,
	}
}

// ValidateCleanRequest checks a batch request. maxRecords caps the batch.
func (v *CleaningValidator) ValidateCleanRequest(req *model.CleanRecordsRequest, maxRecords int) error {
	if err := v.check(req); err != nil {
		return err
	}
	if maxRecords > 0 && len(req.Records) > maxRecords {
		return ValidationErrors{{
			Field:   "records",
			Message: fmt.Sprintf("must contain at most %d records, got %d", maxRecords, len(req.Records)),
		}}
	}
	return nil
}

func (v *CleaningValidator) ValidateRun(run *model.CleaningRun) error {
	return v.check(run)
}

func (v *CleaningValidator) ValidateMessage(msg *model.RecordMessage) error {
	if err := v.check(msg); err != nil {
		return err
	}
	if strings.TrimSpace(msg.ID) == "" {
		return ValidationErrors{{Field: "id", Message: "cannot be blank"}}
	}
	return nil
}

func (v *CleaningValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *CleaningValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldPath(err),
			Message: message(err),
		})
	}

	return validationErrors
}

// fieldPath drops the top-level struct name: "CleanRecordsRequest.records[2]"
// becomes "records[2]".
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		if err.Kind() == reflect.Slice || err.Kind() == reflect.Map || err.Kind() == reflect.String {
			return fmt.Sprintf("must contain at least %s item(s)", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "gtefield":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "mongodb":
		return "must be a valid object id"
	default:
		return fmt.Sprintf("failed %q validation", err.Tag())
	}
}
