package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the review relay.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindConfiguration
	KindTimeout
	KindAuth
	KindRateLimit
	KindProviderUnavailable
	KindProvider
	KindMalformedResponse
	KindEmptyResponse
	KindNetwork
)

var kindNames = map[ErrorKind]string{
	KindUnknown:             "unknown",
	KindValidation:          "validation",
	KindConfiguration:       "configuration",
	KindTimeout:             "timeout",
	KindAuth:                "auth",
	KindRateLimit:           "rate_limit",
	KindProviderUnavailable: "provider_unavailable",
	KindProvider:            "provider",
	KindMalformedResponse:   "malformed_response",
	KindEmptyResponse:       "empty_response",
	KindNetwork:             "network",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Reason refines validation and configuration failures.
type Reason string

const (
	ReasonMissingOrEmptyPrompt       Reason = "missing_or_empty_prompt"
	ReasonPromptTooLong              Reason = "prompt_too_long"
	ReasonMissingOrInvalidCredential Reason = "missing_or_invalid_credential"
)

// Error is the structured failure returned by the gateway and the review client.
type Error struct {
	Kind   ErrorKind
	Reason Reason
	// Status is the provider HTTP status, when one was received.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ReasonOf returns the reason of the first *Error in err's chain.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

func NewValidationError(reason Reason, msg string) *Error {
	return &Error{Kind: KindValidation, Reason: reason, Message: msg}
}

func NewConfigurationError(reason Reason, msg string) *Error {
	return &Error{Kind: KindConfiguration, Reason: reason, Message: msg}
}

func NewTimeoutError(err error) *Error {
	return &Error{Kind: KindTimeout, Message: "request timeout: AI service took too long to respond", Err: err}
}

func NewNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "network error: cannot connect to AI service", Err: err}
}

func NewAuthError(status int, msg string) *Error {
	return &Error{Kind: KindAuth, Status: status, Message: msg}
}

func NewRateLimitError(status int, msg string) *Error {
	return &Error{Kind: KindRateLimit, Status: status, Message: msg}
}

func NewProviderUnavailableError(status int, msg string) *Error {
	return &Error{Kind: KindProviderUnavailable, Status: status, Message: msg}
}

func NewProviderError(status int, msg string) *Error {
	return &Error{Kind: KindProvider, Status: status, Message: msg}
}

func NewMalformedResponseError(err error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: "invalid response structure from provider", Err: err}
}

func NewEmptyResponseError() *Error {
	return &Error{Kind: KindEmptyResponse, Message: "empty response from provider"}
}
