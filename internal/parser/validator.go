package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	idRegex   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	pathRegex = regexp.MustCompile(`^/[a-zA-Z0-9\-_/:{}]*$`)
)

var reportStatuses = map[Status]any{
	StatusPassed:           nil,
	StatusFailed:           nil,
	StatusCompilationError: nil,
	StatusNoTests:          nil,
	StatusUnknown:          nil,
}

var customValidators = map[string]validator.Func{
	"endpoint_id":   validateEndpointID,
	"http_method":   validateHTTPMethod,
	"endpoint_path": validateEndpointPath,
	"report_status": validateReportStatus,
}

func validateEndpointID(fl validator.FieldLevel) bool {
	return idRegex.MatchString(fl.Field().String())
}

func validateHTTPMethod(fl validator.FieldLevel) bool {
	method := fl.Field().String()

	for _, m := range httpMethods {
		if method == m {
			return true
		}
	}

	return false
}

func validateEndpointPath(fl validator.FieldLevel) bool {
	return pathRegex.MatchString(fl.Field().String())
}

func validateReportStatus(fl validator.FieldLevel) bool {
	_, ok := reportStatuses[Status(fl.Field().String())]

	return ok
}

var _ error = (*ValidationError)(nil)

type ValidationError struct {
	errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	errMsgs := make([]string, len(e.errors))
	for i, fe := range e.errors {
		errMsg := fe.Error()
		if _, ok := customValidators[fe.Tag()]; ok {
			errMsg = fmt.Sprintf("%s, bad value: '%v'", errMsg, fe.Value())
		}

		errMsgs[i] = errMsg
	}

	return fmt.Sprintf("found invalid values in the parsed report: %s", strings.Join(errMsgs, "; "))
}

// ValidateParsedReport checks a parsed report against the view-model
// invariants before it is exported or served.
func ValidateParsedReport(parsed *ParsedReport) error {
	validate := validator.New()
	for tag, validatorFunc := range customValidators {
		err := validate.RegisterValidation(tag, validatorFunc)
		if err != nil {
			return errors.Wrap(err, "couldn't build validator")
		}
	}

	err := validate.Struct(parsed)
	if err != nil {
		var validatorErr validator.ValidationErrors
		if errors.As(err, &validatorErr) {
			return &ValidationError{validatorErr}
		}

		return errors.Wrap(err, "couldn't validate parsed report")
	}

	return nil
}
