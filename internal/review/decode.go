package review

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sevigo/code-critic/internal/core"
)

// MaxBodyBytes bounds the size of an inbound request body.
const MaxBodyBytes = 10 << 20

type rawRequest struct {
	Prompt json.RawMessage `json:"prompt"`
}

// DecodeRequest reads a raw JSON body of the form {"prompt": "..."}. A body
// that is not a JSON object, or a prompt that is absent or not a string,
// yields a request with an empty prompt so validation reports it as missing.
// A body over the size limit is reported as a prompt that is too long; any
// other read failure is returned as is.
func DecodeRequest(body io.Reader) (*core.ReviewRequest, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, core.NewValidationError(core.ReasonPromptTooLong, msgPromptTooLong)
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	var raw rawRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		return &core.ReviewRequest{}, nil
	}

	trimmed := bytes.TrimSpace(raw.Prompt)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return &core.ReviewRequest{}, nil
	}

	var prompt string
	if err := json.Unmarshal(trimmed, &prompt); err != nil {
		return &core.ReviewRequest{}, nil
	}
	return &core.ReviewRequest{Prompt: prompt}, nil
}
