package review

import (
	"errors"
	"net/http"

	"github.com/sevigo/code-critic/internal/api"
	"github.com/sevigo/code-critic/internal/core"
)

// Failure is the caller-facing form of an error returned by SubmitReview.
type Failure struct {
	Status  int
	Message string
	// Details carries the underlying error text for unclassified failures.
	Details string
}

// Classify maps an error to its HTTP status and caller-facing message. It
// switches on the structured error kind; message text is never inspected.
func Classify(err error) Failure {
	var cerr *core.Error
	if !errors.As(err, &cerr) {
		return generic(err)
	}

	switch cerr.Kind {
	case core.KindValidation:
		return Failure{Status: http.StatusBadRequest, Message: cerr.Message}
	case core.KindConfiguration, core.KindAuth:
		return Failure{
			Status:  http.StatusInternalServerError,
			Message: api.MsgConfigurationError,
		}
	case core.KindRateLimit:
		return Failure{
			Status:  http.StatusTooManyRequests,
			Message: "AI service rate limit exceeded. Please try again later.",
		}
	case core.KindTimeout:
		return Failure{
			Status:  http.StatusRequestTimeout,
			Message: "AI service request timeout. Please try again.",
		}
	case core.KindNetwork:
		return Failure{
			Status:  http.StatusServiceUnavailable,
			Message: "AI service network error. Please check your internet connection.",
		}
	case core.KindProviderUnavailable:
		return Failure{
			Status:  http.StatusServiceUnavailable,
			Message: "AI service is temporarily unavailable. Please try again later.",
		}
	default:
		return generic(err)
	}
}

func generic(err error) Failure {
	f := Failure{Status: http.StatusInternalServerError, Message: "Error generating AI response"}
	if err != nil {
		f.Details = err.Error()
	}
	return f
}
