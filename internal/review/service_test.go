package review

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/logger"
	"github.com/sevigo/code-critic/mocks"
)

func newTestService(t *testing.T) (*Service, *mocks.MockReviewClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockReviewClient(ctrl)
	return NewService(client, logger.Discard()), client
}

func TestSubmitReview_ValidationMakesNoCall(t *testing.T) {
	tests := []struct {
		name       string
		req        *core.ReviewRequest
		wantReason core.Reason
	}{
		{name: "missing request", req: nil, wantReason: core.ReasonMissingOrEmptyPrompt},
		{name: "empty prompt", req: &core.ReviewRequest{Prompt: ""}, wantReason: core.ReasonMissingOrEmptyPrompt},
		{name: "whitespace prompt", req: &core.ReviewRequest{Prompt: " \n\t  "}, wantReason: core.ReasonMissingOrEmptyPrompt},
		{name: "too long", req: &core.ReviewRequest{Prompt: strings.Repeat("a", core.MaxPromptLength+1)}, wantReason: core.ReasonPromptTooLong},
		{name: "too long multibyte", req: &core.ReviewRequest{Prompt: strings.Repeat("é", core.MaxPromptLength+1)}, wantReason: core.ReasonPromptTooLong},
		{name: "too long astral", req: &core.ReviewRequest{Prompt: strings.Repeat("😀", core.MaxPromptLength/2+1)}, wantReason: core.ReasonPromptTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No EXPECT: any GenerateReview call fails the test.
			svc, _ := newTestService(t)

			result, err := svc.SubmitReview(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, core.KindValidation, core.KindOf(err))
			assert.Equal(t, tt.wantReason, core.ReasonOf(err))
		})
	}
}

func TestSubmitReview_MaxLengthAccepted(t *testing.T) {
	svc, client := newTestService(t)
	prompt := strings.Repeat("é", core.MaxPromptLength)
	client.EXPECT().GenerateReview(gomock.Any(), prompt).Return("fine", nil)

	result, err := svc.SubmitReview(context.Background(), &core.ReviewRequest{Prompt: prompt})
	require.NoError(t, err)
	assert.Equal(t, core.MaxPromptLength, result.PromptLength)
}

func TestSubmitReview_AstralPromptLength(t *testing.T) {
	svc, client := newTestService(t)
	prompt := strings.Repeat("😀", core.MaxPromptLength/2)
	review := "Looks good 👍"
	client.EXPECT().GenerateReview(gomock.Any(), prompt).Return(review, nil)

	result, err := svc.SubmitReview(context.Background(), &core.ReviewRequest{Prompt: prompt})
	require.NoError(t, err)
	assert.Equal(t, core.MaxPromptLength, result.PromptLength)
	assert.Equal(t, 13, result.ReviewLength)
}

func TestSubmitReview_RoundTrip(t *testing.T) {
	svc, client := newTestService(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	svc.now = func() time.Time { return fixed }

	prompt := "  def add(a, b):\n    return a + b\n"
	review := "## ❌ Problems Found:\n- No major problems found"
	client.EXPECT().GenerateReview(gomock.Any(), prompt).Return(review, nil)

	result, err := svc.SubmitReview(context.Background(), &core.ReviewRequest{Prompt: prompt})
	require.NoError(t, err)
	assert.Equal(t, review, result.Review)
	assert.Equal(t, len([]rune(prompt)), result.PromptLength, "prompt is forwarded and measured untrimmed")
	assert.Equal(t, len([]rune(review)), result.ReviewLength)
	assert.Equal(t, fixed.UTC(), result.Timestamp)
}

func TestSubmitReview_PropagatesClientError(t *testing.T) {
	svc, client := newTestService(t)
	client.EXPECT().GenerateReview(gomock.Any(), "x").Return("", core.NewRateLimitError(429, "slow down"))

	_, err := svc.SubmitReview(context.Background(), &core.ReviewRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, core.KindRateLimit, core.KindOf(err))
}

func TestSubmitReview_EmptyClientResult(t *testing.T) {
	svc, client := newTestService(t)
	client.EXPECT().GenerateReview(gomock.Any(), "x").Return("", nil)

	_, err := svc.SubmitReview(context.Background(), &core.ReviewRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, core.KindEmptyResponse, core.KindOf(err))
}

func TestSubmitReview_UnclassifiedError(t *testing.T) {
	svc, client := newTestService(t)
	client.EXPECT().GenerateReview(gomock.Any(), "x").Return("", errors.New("template exploded"))

	_, err := svc.SubmitReview(context.Background(), &core.ReviewRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, core.KindUnknown, core.KindOf(err))
	assert.Contains(t, err.Error(), "template exploded")
}
