package service

import (
	"context"
	"encoding/json"
	"fmt"

	"perception_backend/internal/config"
	"perception_backend/internal/model"
	"perception_backend/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// gradingFailureFeedback 对外统一的失败提示，不泄露上游错误细节
const gradingFailureFeedback = "An error occurred while evaluating the answer. Please try again."

const gradingSystemPrompt = `You are an expert AI evaluator for an online learning platform. Your task is to evaluate a student's answer based on a model answer provided by the teacher.

You must provide two things in your response:
1.  A 'score' from 0 to 10. The score should reflect how well the student's answer matches the key concepts of the model answer.
2.  A 'feedback' string. The feedback should be constructive, personalized, and written directly to the student. Explain what they did well and what they can improve.

Respond ONLY with a valid JSON object in the following format:
{"score": <integer>, "feedback": "<string>"}`

// EvaluationResult AI评分结果。Score 为 -1 表示评分失败，
// 这是唯一的失败信号，调用方必须显式检查。
type EvaluationResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Grader 评分适配器接口，便于在测试中替换外部调用
type Grader interface {
	Evaluate(ctx context.Context, modelAnswer, studentAnswer string) EvaluationResult
}

// EvaluationService 封装对 OpenAI 兼容接口的评分调用
type EvaluationService struct {
	api   *openai.Client
	model string
}

func NewEvaluationService(cfg config.AIConfig) *EvaluationService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &EvaluationService{
		api:   openai.NewClientWithConfig(clientConfig),
		model: cfg.Model,
	}
}

// Evaluate 将学生答案与参考答案交给 LLM 比对。
// 超时、配额、格式错误全部折叠为哨兵值加统一提示。
func (s *EvaluationService) Evaluate(ctx context.Context, modelAnswer, studentAnswer string) EvaluationResult {
	userPrompt := fmt.Sprintf("Please evaluate the following submission:\n\n**Model Answer:** %q\n\n**Student's Answer:** %q",
		modelAnswer, studentAnswer)

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: gradingSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		logger.Log.Error("AI evaluation call failed", zap.Error(err))
		return EvaluationResult{Score: model.AIScoreFailed, Feedback: gradingFailureFeedback}
	}

	if len(resp.Choices) == 0 {
		logger.Log.Error("AI evaluation returned no choices")
		return EvaluationResult{Score: model.AIScoreFailed, Feedback: gradingFailureFeedback}
	}

	result, err := parseEvaluation(resp.Choices[0].Message.Content)
	if err != nil {
		logger.Log.Error("AI evaluation response unparseable", zap.Error(err))
		return EvaluationResult{Score: model.AIScoreFailed, Feedback: gradingFailureFeedback}
	}

	return result
}

// parseEvaluation 解析 LLM 返回的 JSON，越界分数按 0-10 截断
func parseEvaluation(raw string) (EvaluationResult, error) {
	var result EvaluationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return EvaluationResult{}, fmt.Errorf("parse evaluation response: %w (raw: %s)", err, raw)
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 10 {
		result.Score = 10
	}
	return result, nil
}
