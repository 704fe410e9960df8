package errors

import "net/http"

// ErrorCode classifies failures for transports and metrics. Values are part
// of the wire format; append new codes, never reorder
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable is for transient errors where retry may succeed
	ErrorCodeUnavailable
	// ErrorCodeInvalidArgument is for bad parameters: threshold out of range, unknown scorer
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is for input files or payloads that break their contract:
	// missing column, empty registry
	ErrorCodeValidation
	// ErrorCodeJSON is for undecodable request bodies
	ErrorCodeJSON
	// ErrorCodeNotFound is for missing resources
	ErrorCodeNotFound
	// ErrorCodeDocumentParse is for unreadable or corrupt statements
	ErrorCodeDocumentParse
	// ErrorCodeTooLarge is for uploads over the configured size limit
	ErrorCodeTooLarge
)

// codeTable holds the label and http status of each code, indexed by code
var codeTable = [...]struct {
	label  string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDocumentParse:   {"document_parse", http.StatusUnprocessableEntity},
	ErrorCodeTooLarge:        {"too_large", http.StatusRequestEntityTooLarge},
}

// String returns the stable lowercase label used in logs, metrics and envelopes
func (c ErrorCode) String() string {
	if int(c) < len(codeTable) {
		return codeTable[c].label
	}
	return codeTable[ErrorCodeUnknown].label
}

// HTTPStatus maps c onto an http status; codes outside the table are 500
func (c ErrorCode) HTTPStatus() int {
	if int(c) < len(codeTable) {
		return codeTable[c].status
	}
	return http.StatusInternalServerError
}
