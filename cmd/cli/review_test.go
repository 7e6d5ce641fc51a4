package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/code-critic/internal/api"
)

func sampleResponse() *api.ReviewResponse {
	return &api.ReviewResponse{
		Review:       "## ❌ Problems Found:\n- No major problems found ✓",
		Timestamp:    "2026-01-02T03:04:05.000Z",
		PromptLength: 12,
		ReviewLength: 47,
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o600))

	code, err := readSource(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", code)

	code, err = readSource("-", strings.NewReader("print(1)"))
	require.NoError(t, err)
	assert.Equal(t, "print(1)", code)

	_, err = readSource("-", strings.NewReader("  \n"))
	assert.ErrorContains(t, err, "input is empty")

	_, err = readSource(filepath.Join(dir, "missing.go"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteReview_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReview(&buf, sampleResponse(), formatJSON, false))

	var got api.ReviewResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleResponse(), got)
}

func TestWriteReview_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReview(&buf, sampleResponse(), formatYAML, false))

	assert.Contains(t, buf.String(), "promptLength: 12")

	var got api.ReviewResponse
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleResponse(), got)
}

func TestWriteReview_Markdown(t *testing.T) {
	var raw bytes.Buffer
	require.NoError(t, writeReview(&raw, sampleResponse(), formatMarkdown, true))
	assert.Equal(t, sampleResponse().Review+"\n", raw.String())

	var rendered bytes.Buffer
	require.NoError(t, writeReview(&rendered, sampleResponse(), formatMarkdown, false))
	assert.Contains(t, rendered.String(), "Problems")
}
