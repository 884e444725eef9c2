// Package engine provides the completion-service contract shared by the
// providers and the conversation session.
// This file contains error classification and handling.

package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrEmptyResponse is returned when the provider answers without any content choice.
var ErrEmptyResponse = errors.New("empty response from completion service")

// ErrorKind describes what went wrong with a completion call.
// It is diagnostic only: nothing in couch retries on any kind.
type ErrorKind string

const (
	KindNetwork   ErrorKind = "network"
	KindAuth      ErrorKind = "auth"
	KindQuota     ErrorKind = "quota"
	KindRateLimit ErrorKind = "rate_limit"
	KindServer    ErrorKind = "server"
	KindRequest   ErrorKind = "bad_request"
	KindMalformed ErrorKind = "malformed_response"
	KindUnknown   ErrorKind = "unknown"
)

// ServiceError wraps a failed completion call with classification metadata.
// It is the only error kind the conversation core models.
type ServiceError struct {
	Err         error
	Kind        ErrorKind
	Provider    string // "openai", "anthropic", ...
	HTTPStatus  int    // HTTP status code if applicable
	IsRateLimit bool   // True if this is a rate limit error
	IsTimeout   bool   // True if this is a timeout error
	IsNetwork   bool   // True if this is a network error
	IsAuth      bool   // True if this is an authentication error
	IsQuota     bool   // True if this is a quota exhaustion error
}

func (e *ServiceError) Error() string {
	prefix := "completion service"
	if e.Provider != "" {
		prefix = e.Provider
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", prefix, e.Err.Error())
	}
	return fmt.Sprintf("%s error: %s", prefix, e.Kind)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ClassifyLLMError classifies an error from an LLM provider call.
func ClassifyLLMError(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}

	if errors.Is(err, ErrEmptyResponse) {
		return KindMalformed
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") {
		return KindRateLimit
	}

	if strings.Contains(errStr, "402") ||
		strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "insufficient") ||
		strings.Contains(errStr, "billing") {
		return KindQuota
	}

	if strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "invalid api key") ||
		strings.Contains(errStr, "incorrect api key") ||
		strings.Contains(errStr, "authentication") {
		return KindAuth
	}

	if strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504") ||
		strings.Contains(errStr, "529") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "overloaded") {
		return KindServer
	}

	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "eof") {
		return KindNetwork
	}

	if strings.Contains(errStr, "400") ||
		strings.Contains(errStr, "bad request") ||
		strings.Contains(errStr, "invalid request") {
		return KindRequest
	}

	if strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "unexpected end of json") {
		return KindMalformed
	}

	return KindUnknown
}

// WrapServiceError wraps a provider error with classification metadata.
// httpStatus may be 0 when the SDK does not expose it; the kind is then
// inferred from the error text.
func WrapServiceError(provider string, err error, httpStatus int) error {
	if err == nil {
		return nil
	}

	var existing *ServiceError
	if errors.As(err, &existing) {
		return err
	}

	kind := kindForStatus(httpStatus)
	if kind == KindUnknown {
		kind = ClassifyLLMError(err)
	}

	return &ServiceError{
		Err:         err,
		Kind:        kind,
		Provider:    provider,
		HTTPStatus:  httpStatus,
		IsRateLimit: kind == KindRateLimit,
		IsTimeout:   httpStatus == http.StatusGatewayTimeout || httpStatus == http.StatusRequestTimeout,
		IsNetwork:   kind == KindNetwork,
		IsAuth:      kind == KindAuth,
		IsQuota:     kind == KindQuota,
	}
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == 0:
		return KindUnknown
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusPaymentRequired:
		return KindQuota
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindRequest
	}
	return KindUnknown
}

// IsServiceError reports whether err (or anything it wraps) is a ServiceError.
func IsServiceError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr)
}

// AsServiceError extracts the ServiceError from err, if any.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
