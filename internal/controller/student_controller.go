package controller

import (
	"errors"

	"perception_backend/internal/middleware"
	"perception_backend/internal/service"
	"perception_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

type SubmissionCreateRequest struct {
	QuestionSetID uint   `json:"question_set_id" binding:"required"`
	Answer        string `json:"answer" binding:"required,min=5"`
}

// ListQuestionSets 当前学生可见且尚未提交的题目集
func (c *StudentController) ListQuestionSets(ctx *gin.Context) {
	student := middleware.GetCurrentUser(ctx)
	outs, err := c.StudentService.ListAvailable(student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, outs)
}

// CreateSubmission 提交答案并触发AI评分
func (c *StudentController) CreateSubmission(ctx *gin.Context) {
	var req SubmissionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student := middleware.GetCurrentUser(ctx)
	out, err := c.StudentService.Submit(ctx.Request.Context(), student, req.QuestionSetID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(ctx, "Question set not found.")
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, "You have already submitted an answer for this set.")
		case errors.Is(err, util.ErrGradingFailed):
			util.InternalServerError(ctx, "An error occurred while evaluating the answer. Please try again.")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, out)
}

// ListSubmissions 当前学生的提交记录与评分结果
func (c *StudentController) ListSubmissions(ctx *gin.Context) {
	student := middleware.GetCurrentUser(ctx)
	outs, err := c.StudentService.MySubmissions(student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, outs)
}
