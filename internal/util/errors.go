package util

import "errors"

var (
	ErrUnauthorized     = errors.New("could not validate credentials")
	ErrForbidden        = errors.New("permission denied")
	ErrNotFound         = errors.New("resource not found")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrUsernameTaken    = errors.New("该用户名已被占用")
	ErrAlreadySubmitted = errors.New("already submitted an answer for this set")
	ErrStudentNotFound  = errors.New("one or more student usernames not found")
	ErrGradingFailed    = errors.New("AI grading failed")
)
