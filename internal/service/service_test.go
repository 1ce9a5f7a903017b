package service

import (
	"context"
	"testing"
	"time"

	"perception_backend/internal/config"
	"perception_backend/internal/model"
	"perception_backend/internal/repository"
	"perception_backend/pkg/database"
	"perception_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "unit-test-secret",
			ExpireTime: 30 * time.Minute,
		},
	}
}

func createUser(t *testing.T, db *gorm.DB, username, email, password string, role model.UserRole) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// fakeGrader 返回固定结果的评分适配器
type fakeGrader struct {
	result EvaluationResult
	calls  int
}

func (g *fakeGrader) Evaluate(ctx context.Context, modelAnswer, studentAnswer string) EvaluationResult {
	g.calls++
	return g.result
}

// fakeVerifier 免外部调用的身份凭证校验
type fakeVerifier struct {
	email string
	name  string
	err   error
}

func (v *fakeVerifier) Verify(ctx context.Context, credential string) (string, string, error) {
	if v.err != nil {
		return "", "", v.err
	}
	return v.email, v.name, nil
}

func newStudentService(db *gorm.DB, grader Grader) *StudentService {
	return NewStudentService(
		repository.NewQuestionSetRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewUserRepository(db),
		grader,
	)
}

func newTeacherService(db *gorm.DB) *TeacherService {
	return NewTeacherService(
		repository.NewQuestionSetRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewUserRepository(db),
	)
}
