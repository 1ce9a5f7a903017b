package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"perception_backend/internal/config"
	"perception_backend/internal/model"
	"perception_backend/internal/repository"
	"perception_backend/internal/util"
	"perception_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户名冲突重试上限。理论上原始逻辑可以无限重试，
// 这里设上限避免构造恶意数据时死循环。
const maxUsernameAttempts = 5

type AuthService struct {
	UserRepo *repository.UserRepository
	Verifier IdentityVerifier
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, verifier IdentityVerifier, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Verifier: verifier,
		Cfg:      cfg,
	}
}

// Signup 注册新用户。邮箱和用户名分别查重，
// 唯一索引兜底并发窗口内的重复写入。
func (s *AuthService) Signup(username, email, password string, role model.UserRole) (*model.User, error) {
	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.UserRepo.FindByUsername(username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 邮箱或用户名均可作为登录标识
func (s *AuthService) Login(identifier, password string) (string, error) {
	user, err := s.UserRepo.FindByIdentifier(identifier)
	if err != nil {
		return "", util.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrUnauthorized
	}

	return util.GenerateJWT(user.Email, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// LoginWithGoogle 校验 Google 凭证，登录或自动注册。
// 自动注册的账号角色固定为学生，密码为随机不可用摘要，
// 只能继续通过 Google 登录。
func (s *AuthService) LoginWithGoogle(ctx context.Context, credential string) (string, error) {
	email, name, err := s.Verifier.Verify(ctx, credential)
	if err != nil {
		logger.Log.Warn("Google credential verification failed", zap.Error(err))
		return "", util.ErrUnauthorized
	}

	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.provisionGoogleUser(email, name)
	}
	if err != nil {
		return "", err
	}

	return util.GenerateJWT(user.Email, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) provisionGoogleUser(email, name string) (*model.User, error) {
	username, err := s.generateUsername(email, name)
	if err != nil {
		return nil, err
	}

	// 随机密码仅用于占位，无法通过密码登录
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     model.Student,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("provisioned new user from Google login",
		zap.String("email", email),
		zap.String("username", username))
	return user, nil
}

// generateUsername 由展示名（或邮箱前缀）生成用户名，
// 冲突时追加随机后缀重试，超过上限直接失败。
func (s *AuthService) generateUsername(email, name string) (string, error) {
	base := sanitizeUsername(name)
	if base == "" {
		base = sanitizeUsername(strings.Split(email, "@")[0])
	}
	if base == "" {
		base = "user"
	}

	candidate := base
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		_, err := s.UserRepo.FindByUsername(candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = base + randomSuffix()
	}

	return "", errors.New("could not allocate a unique username")
}

func sanitizeUsername(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func randomSuffix() string {
	buf := make([]byte, 2)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
