package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 1, 2, 4, 5, 6, 789_000_000, time.FixedZone("X", 2*3600))
	assert.Equal(t, "2025-01-02T02:05:06.789Z", FormatTimestamp(ts))
}

func TestErrorResponse_ReviewIsNull(t *testing.T) {
	b, err := json.Marshal(ErrorResponse{Error: "bad"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"bad","review":null}`, string(b))
}
