package service

import (
	"context"
	"errors"

	"perception_backend/internal/model"
	"perception_backend/internal/repository"
	"perception_backend/internal/util"
	"perception_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type StudentService struct {
	QuestionSetRepo *repository.QuestionSetRepository
	SubmissionRepo  *repository.SubmissionRepository
	UserRepo        *repository.UserRepository
	Grader          Grader
}

func NewStudentService(
	qsRepo *repository.QuestionSetRepository,
	subRepo *repository.SubmissionRepository,
	userRepo *repository.UserRepository,
	grader Grader,
) *StudentService {
	return &StudentService{
		QuestionSetRepo: qsRepo,
		SubmissionRepo:  subRepo,
		UserRepo:        userRepo,
		Grader:          grader,
	}
}

// ListAvailable 学生可见的题目集：尚未提交，且公开或在指定名单中。
// 创建者资料批量解析后内联；创建者缺失的题目集直接丢弃并计数。
func (s *StudentService) ListAvailable(student *model.User) ([]QuestionSetForStudentOut, error) {
	submitted, err := s.SubmissionRepo.FindByStudent(student.ID)
	if err != nil {
		return nil, err
	}

	excluded := make([]uint, 0, len(submitted))
	for _, sub := range submitted {
		excluded = append(excluded, sub.QuestionSetID)
	}

	sets, err := s.QuestionSetRepo.FindExcluding(excluded)
	if err != nil {
		return nil, err
	}

	visible := make([]model.QuestionSet, 0, len(sets))
	creatorIDs := make([]uint, 0, len(sets))
	seen := make(map[uint]bool)
	for i := range sets {
		qs := &sets[i]
		if !qs.IsPublic() && !qs.IsAssignedTo(student.ID) {
			continue
		}
		visible = append(visible, sets[i])
		if !seen[qs.CreatorID] {
			seen[qs.CreatorID] = true
			creatorIDs = append(creatorIDs, qs.CreatorID)
		}
	}

	creators, err := s.resolveUsers(creatorIDs)
	if err != nil {
		return nil, err
	}

	outs := make([]QuestionSetForStudentOut, 0, len(visible))
	for i := range visible {
		creator, ok := creators[visible[i].CreatorID]
		if !ok {
			monitoring.DroppedRowCounter.WithLabelValues("question_sets").Inc()
			continue
		}
		outs = append(outs, newQuestionSetForStudentOut(&visible[i], creator))
	}
	return outs, nil
}

// Submit 提交答案并触发AI评分。评分失败时整个操作失败，
// 不持久化任何提交记录。
func (s *StudentService) Submit(ctx context.Context, student *model.User, questionSetID uint, answer string) (*SubmissionResultOut, error) {
	qs, err := s.QuestionSetRepo.FindByID(questionSetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.SubmissionRepo.FindBySetAndStudent(qs.ID, student.ID); err == nil {
		return nil, util.ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	evaluation := s.Grader.Evaluate(ctx, qs.ModelAnswer, answer)
	if evaluation.Score == model.AIScoreFailed {
		return nil, util.ErrGradingFailed
	}

	sub := &model.Submission{
		QuestionSetID: qs.ID,
		StudentID:     student.ID,
		StudentAnswer: answer,
		AIScore:       evaluation.Score,
		AIFeedback:    evaluation.Feedback,
	}
	if err := s.SubmissionRepo.Create(sub); err != nil {
		return nil, err
	}

	creator, err := s.UserRepo.FindByID(qs.CreatorID)
	if err != nil {
		return nil, err
	}

	out := newSubmissionResultOut(sub, newQuestionSetForStudentOut(qs, NewUserOut(creator)))
	return &out, nil
}

// MySubmissions 学生自己的提交列表，题目集与创建者批量解析内联。
// 题目集或创建者缺失的记录丢弃并计数。
func (s *StudentService) MySubmissions(student *model.User) ([]SubmissionResultOut, error) {
	subs, err := s.SubmissionRepo.FindByStudent(student.ID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return []SubmissionResultOut{}, nil
	}

	qsIDs := make([]uint, 0, len(subs))
	seen := make(map[uint]bool)
	for _, sub := range subs {
		if !seen[sub.QuestionSetID] {
			seen[sub.QuestionSetID] = true
			qsIDs = append(qsIDs, sub.QuestionSetID)
		}
	}

	sets, err := s.QuestionSetRepo.FindByIDs(qsIDs)
	if err != nil {
		return nil, err
	}

	creatorIDs := make([]uint, 0, len(sets))
	seenCreator := make(map[uint]bool)
	for _, qs := range sets {
		if !seenCreator[qs.CreatorID] {
			seenCreator[qs.CreatorID] = true
			creatorIDs = append(creatorIDs, qs.CreatorID)
		}
	}

	creators, err := s.resolveUsers(creatorIDs)
	if err != nil {
		return nil, err
	}

	qsOuts := make(map[uint]QuestionSetForStudentOut, len(sets))
	for i := range sets {
		creator, ok := creators[sets[i].CreatorID]
		if !ok {
			monitoring.DroppedRowCounter.WithLabelValues("question_sets").Inc()
			continue
		}
		qsOuts[sets[i].ID] = newQuestionSetForStudentOut(&sets[i], creator)
	}

	outs := make([]SubmissionResultOut, 0, len(subs))
	for i := range subs {
		qsOut, ok := qsOuts[subs[i].QuestionSetID]
		if !ok {
			monitoring.DroppedRowCounter.WithLabelValues("submissions").Inc()
			continue
		}
		outs = append(outs, newSubmissionResultOut(&subs[i], qsOut))
	}
	return outs, nil
}

func (s *StudentService) resolveUsers(ids []uint) (map[uint]UserOut, error) {
	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uint]UserOut, len(users))
	for i := range users {
		m[users[i].ID] = NewUserOut(&users[i])
	}
	return m, nil
}
