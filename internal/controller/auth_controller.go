package controller

import (
	"errors"

	"perception_backend/internal/middleware"
	"perception_backend/internal/model"
	"perception_backend/internal/service"
	"perception_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`
}

type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type GoogleCredentialRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// Signup 注册新用户，邮箱或用户名重复返回 409
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Signup(req.Username, req.Email, req.Password, model.UserRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, "Email already registered")
		case errors.Is(err, util.ErrUsernameTaken):
			util.Conflict(ctx, "Username is already taken")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, service.NewUserOut(user))
}

// Token OAuth2 密码模式：表单提交，username 字段可填邮箱或用户名
func (c *AuthController) Token(ctx *gin.Context) {
	var req TokenRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		ctx.Header("WWW-Authenticate", "Bearer")
		util.Error(ctx, 401, "Incorrect username or password")
		return
	}

	util.Success(ctx, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Google 校验前端送来的 Google 凭证，登录或自动注册
func (c *AuthController) Google(ctx *gin.Context) {
	var req GoogleCredentialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.LoginWithGoogle(ctx.Request.Context(), req.Credential)
	if err != nil {
		if errors.Is(err, util.ErrUnauthorized) {
			util.Error(ctx, 401, "Could not validate Google credentials")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me 当前登录用户资料
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, service.NewUserOut(user))
}
