package apiclient

import (
	"errors"
	"net/http"

	"github.com/sevigo/code-critic/internal/api"
)

// Describe turns a client error into a one-line message for end users.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnreachable) {
		return "❌ Connection Error: Cannot connect to backend server. Please ensure the server is running."
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusInternalServerError && apiErr.Message == api.MsgConfigurationError:
			return "❌ API Key Error: Invalid or missing Google Gemini API key. Check backend configuration."
		case apiErr.Status == http.StatusTooManyRequests:
			return "❌ Rate Limit: API quota exceeded. Please try again later."
		case apiErr.Status >= http.StatusInternalServerError && apiErr.Status != http.StatusServiceUnavailable:
			return "❌ Server Error: Backend server encountered an error. Check server logs for details."
		default:
			return "❌ Error: " + apiErr.Message
		}
	}

	return "❌ Error: " + err.Error()
}
