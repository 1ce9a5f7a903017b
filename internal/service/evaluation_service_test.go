package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluation(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantScore    int
		wantFeedback string
		wantErr      bool
	}{
		{"valid", `{"score": 9, "feedback": "Well done"}`, 9, "Well done", false},
		{"zero score", `{"score": 0, "feedback": "Wrong"}`, 0, "Wrong", false},
		{"clamped high", `{"score": 15, "feedback": "ok"}`, 10, "ok", false},
		{"clamped low", `{"score": -3, "feedback": "ok"}`, 0, "ok", false},
		{"not json", `the answer is good, 9/10`, 0, "", true},
		{"empty", ``, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEvaluation(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantFeedback, got.Feedback)
		})
	}
}

func TestGradingSystemPrompt(t *testing.T) {
	// 提示词必须要求 0-10 分并约束为 JSON 输出
	assert.True(t, strings.Contains(gradingSystemPrompt, "0 to 10"))
	assert.True(t, strings.Contains(gradingSystemPrompt, `{"score": <integer>, "feedback": "<string>"}`))
}
