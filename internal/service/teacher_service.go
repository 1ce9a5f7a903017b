package service

import (
	"errors"

	"perception_backend/internal/model"
	"perception_backend/internal/repository"
	"perception_backend/internal/util"
	"perception_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type TeacherService struct {
	QuestionSetRepo *repository.QuestionSetRepository
	SubmissionRepo  *repository.SubmissionRepository
	UserRepo        *repository.UserRepository
}

func NewTeacherService(
	qsRepo *repository.QuestionSetRepository,
	subRepo *repository.SubmissionRepository,
	userRepo *repository.UserRepository,
) *TeacherService {
	return &TeacherService{
		QuestionSetRepo: qsRepo,
		SubmissionRepo:  subRepo,
		UserRepo:        userRepo,
	}
}

type CreateQuestionSetRequest struct {
	Title             string   `json:"title" binding:"required,min=3,max=100"`
	Question          string   `json:"question" binding:"required,min=10"`
	ModelAnswer       string   `json:"model_answer" binding:"required,min=10"`
	AssignedUsernames []string `json:"assigned_usernames"`
}

// CreateQuestionSet 创建题目集。指定的用户名必须全部解析为
// 已存在的学生账号，任何一个缺失都会使创建失败。
func (s *TeacherService) CreateQuestionSet(teacher *model.User, req CreateQuestionSetRequest) (*QuestionSetOut, error) {
	var assigned []model.User
	if len(req.AssignedUsernames) > 0 {
		unique := make([]string, 0, len(req.AssignedUsernames))
		seen := make(map[string]bool)
		for _, name := range req.AssignedUsernames {
			if !seen[name] {
				seen[name] = true
				unique = append(unique, name)
			}
		}

		students, err := s.UserRepo.FindStudentsByUsernames(unique)
		if err != nil {
			return nil, err
		}
		if len(students) != len(unique) {
			return nil, util.ErrStudentNotFound
		}
		assigned = students
	}

	qs := &model.QuestionSet{
		Title:            req.Title,
		Question:         req.Question,
		ModelAnswer:      req.ModelAnswer,
		CreatorID:        teacher.ID,
		AssignedStudents: assigned,
	}
	if err := s.QuestionSetRepo.Create(qs); err != nil {
		return nil, err
	}

	out := newQuestionSetOut(qs, NewUserOut(teacher))
	return &out, nil
}

// ListQuestionSets 教师自己创建的题目集
func (s *TeacherService) ListQuestionSets(teacher *model.User) ([]QuestionSetOut, error) {
	sets, err := s.QuestionSetRepo.FindByCreator(teacher.ID)
	if err != nil {
		return nil, err
	}

	creator := NewUserOut(teacher)
	outs := make([]QuestionSetOut, 0, len(sets))
	for i := range sets {
		outs = append(outs, newQuestionSetOut(&sets[i], creator))
	}
	return outs, nil
}

// SubmissionsForSet 某题目集下的全部提交。非创建者得到与
// 题目集不存在相同的 NotFound，不泄露资源存在性。
// 学生资料批量解析内联，缺失的提交记录丢弃并计数。
func (s *TeacherService) SubmissionsForSet(teacher *model.User, questionSetID uint) ([]SubmissionReviewOut, error) {
	qs, err := s.QuestionSetRepo.FindByID(questionSetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if qs.CreatorID != teacher.ID {
		return nil, util.ErrNotFound
	}

	subs, err := s.SubmissionRepo.FindByQuestionSet(qs.ID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return []SubmissionReviewOut{}, nil
	}

	studentIDs := make([]uint, 0, len(subs))
	seen := make(map[uint]bool)
	for _, sub := range subs {
		if !seen[sub.StudentID] {
			seen[sub.StudentID] = true
			studentIDs = append(studentIDs, sub.StudentID)
		}
	}

	students, err := s.UserRepo.FindByIDs(studentIDs)
	if err != nil {
		return nil, err
	}
	studentOuts := make(map[uint]UserOut, len(students))
	for i := range students {
		studentOuts[students[i].ID] = NewUserOut(&students[i])
	}

	outs := make([]SubmissionReviewOut, 0, len(subs))
	for i := range subs {
		student, ok := studentOuts[subs[i].StudentID]
		if !ok {
			monitoring.DroppedRowCounter.WithLabelValues("submissions").Inc()
			continue
		}
		outs = append(outs, newSubmissionReviewOut(&subs[i], student))
	}
	return outs, nil
}

// Finalize 教师敲定最终分。重复调用直接覆盖，最后写入生效。
func (s *TeacherService) Finalize(teacher *model.User, submissionID uint, score int) (*SubmissionReviewOut, error) {
	sub, err := s.SubmissionRepo.FindByID(submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	qs, err := s.QuestionSetRepo.FindByID(sub.QuestionSetID)
	if err != nil || qs.CreatorID != teacher.ID {
		return nil, util.ErrForbidden
	}

	sub.FinalScore = &score
	if err := s.SubmissionRepo.Update(sub); err != nil {
		return nil, err
	}

	student, err := s.UserRepo.FindByID(sub.StudentID)
	if err != nil {
		return nil, err
	}

	out := newSubmissionReviewOut(sub, NewUserOut(student))
	return &out, nil
}
