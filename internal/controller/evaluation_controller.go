package controller

import (
	"perception_backend/internal/model"
	"perception_backend/internal/service"
	"perception_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	Grader service.Grader
}

func NewEvaluationController(grader service.Grader) *EvaluationController {
	return &EvaluationController{Grader: grader}
}

type EvaluationRequest struct {
	ModelAnswer   string `json:"model_answer" binding:"required"`
	StudentAnswer string `json:"student_answer" binding:"required"`
}

// Evaluate 教师对任意 (参考答案, 学生答案) 的即席评分
func (c *EvaluationController) Evaluate(ctx *gin.Context) {
	var req EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result := c.Grader.Evaluate(ctx.Request.Context(), req.ModelAnswer, req.StudentAnswer)
	if result.Score == model.AIScoreFailed {
		util.InternalServerError(ctx, result.Feedback)
		return
	}

	util.Success(ctx, result)
}
