package service

import (
	"net/http"

	"github.com/vcsystems/incident-service/internal/domain"
)

// ResultType tags the outcome of a lifecycle engine operation.
type ResultType string

const (
	ResultSuccess        ResultType = "SUCCESS"
	ResultNotFound       ResultType = "NOT_FOUND"
	ResultBusinessError  ResultType = "BUSINESS_ERROR"
	ResultTechnicalError ResultType = "TECHNICAL_ERROR"
)

// Machine-readable codes carried by non-success results.
const (
	CodeNotFound          = "RESOURCE_NOT_FOUND"
	CodeValidation        = "BUSINESS_VALIDATION_ERROR"
	CodeInvalidRole       = "INVALID_TECHNICIAN_ROLE"
	CodeAlreadyAssigned   = "TECHNICIAN_ALREADY_ASSIGNED"
	CodeIllegalTransition = "ILLEGAL_STATUS_TRANSITION"
	CodeMissingTechnician = "TECHNICIAN_REQUIRED"
	CodeTechnical         = "TECHNICAL_ERROR"
)

// OperationResult is the tagged outcome of every mutating engine call. The
// engine never raises business or not-found conditions as errors; callers
// branch on Type and map it to their transport.
type OperationResult struct {
	Type     ResultType
	Incident *domain.Incident
	Message  string
	Code     string
}

// Success wraps the mutated incident.
func Success(incident *domain.Incident) OperationResult {
	return OperationResult{Type: ResultSuccess, Incident: incident}
}

// NotFound reports an unresolvable incident id.
func NotFound(message string) OperationResult {
	return OperationResult{Type: ResultNotFound, Message: message, Code: CodeNotFound}
}

// BusinessError reports a domain-rule violation.
func BusinessError(message, code string) OperationResult {
	if code == "" {
		code = CodeValidation
	}
	return OperationResult{Type: ResultBusinessError, Message: message, Code: code}
}

// TechnicalError reports an unexpected collaborator failure.
func TechnicalError(message string) OperationResult {
	return OperationResult{Type: ResultTechnicalError, Message: message, Code: CodeTechnical}
}

func (r OperationResult) IsSuccess() bool { return r.Type == ResultSuccess }

// HTTPStatus maps the result to a transport status code without the engine
// knowing about transport.
func (r OperationResult) HTTPStatus() int {
	switch r.Type {
	case ResultSuccess:
		return http.StatusOK
	case ResultNotFound:
		return http.StatusNotFound
	case ResultBusinessError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
