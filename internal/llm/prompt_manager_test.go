package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-critic/internal/core"
)

func TestPromptManager_RenderCodeReview(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	code := "func main() { fmt.Println(\"{{ not a template }}\") }"
	out, err := pm.Render(CodeReviewPrompt, GeminiProvider, core.ReviewPromptData{Code: code})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, code+"\n"), "code must be embedded verbatim at the end")

	sections := []string{"Problems Found", "Suggestions for Improvement", "Optimized Code", "Additional Notes"}
	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		require.NotEqual(t, -1, idx, "missing section %q", section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}
	assert.Contains(t, out, "No major problems found")
}

func TestPromptManager_UnknownKey(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.Render(PromptKey("missing"), DefaultProvider, nil)
	assert.Error(t, err)
}

func TestParsePromptFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    promptID
		wantErr bool
	}{
		{name: "code_review_default.prompt", want: promptID{key: "code_review", provider: "default"}},
		{name: "review_gemini.prompt", want: promptID{key: "review", provider: "gemini"}},
		{name: "noprovider.prompt", wantErr: true},
		{name: "_gemini.prompt", wantErr: true},
		{name: "review_.prompt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePromptFilename(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
