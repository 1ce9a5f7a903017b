package controller

import (
	"errors"
	"strconv"

	"perception_backend/internal/middleware"
	"perception_backend/internal/service"
	"perception_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeacherController struct {
	TeacherService *service.TeacherService
}

func NewTeacherController(teacherService *service.TeacherService) *TeacherController {
	return &TeacherController{TeacherService: teacherService}
}

type FinalizeRequest struct {
	FinalScore *int `json:"final_score" binding:"required,gte=0,lte=10"`
}

// CreateQuestionSet 创建题目集，可指定学生名单
func (c *TeacherController) CreateQuestionSet(ctx *gin.Context) {
	var req service.CreateQuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	teacher := middleware.GetCurrentUser(ctx)
	out, err := c.TeacherService.CreateQuestionSet(teacher, req)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx, "One or more student usernames not found.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, out)
}

// ListQuestionSets 当前教师创建的题目集
func (c *TeacherController) ListQuestionSets(ctx *gin.Context) {
	teacher := middleware.GetCurrentUser(ctx)
	outs, err := c.TeacherService.ListQuestionSets(teacher)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, outs)
}

// ListSubmissions 某题目集下的全部提交，非创建者与不存在同样返回 404
func (c *TeacherController) ListSubmissions(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid question set id")
		return
	}

	teacher := middleware.GetCurrentUser(ctx)
	outs, err := c.TeacherService.SubmissionsForSet(teacher, uint(id))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(ctx, "Question set not found or access denied.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, outs)
}

// Finalize 敲定最终分数，覆盖写入
func (c *TeacherController) Finalize(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	var req FinalizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	teacher := middleware.GetCurrentUser(ctx)
	out, err := c.TeacherService.Finalize(teacher, uint(id), *req.FinalScore)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotFound):
			util.NotFound(ctx, "Submission not found.")
		case errors.Is(err, util.ErrForbidden):
			util.Forbidden(ctx, "Access denied.")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, out)
}
