package service

import (
	"context"
	"testing"

	"perception_backend/internal/model"
	"perception_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionSet_Public(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teach", "teach@example.com", "pw", model.Teacher)

	s := newTeacherService(db)
	out, err := s.CreateQuestionSet(teacher, CreateQuestionSetRequest{
		Title:       "Capitals",
		Question:    "What is the capital of France?",
		ModelAnswer: "Paris is the capital of France",
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, teacher.Username, out.Creator.Username)
	assert.Empty(t, out.AssignedStudents)
}

func TestCreateQuestionSet_WithAssignedStudents(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teach", "teach@example.com", "pw", model.Teacher)
	createUser(t, db, "stud1", "stud1@example.com", "pw", model.Student)
	createUser(t, db, "stud2", "stud2@example.com", "pw", model.Student)

	s := newTeacherService(db)
	out, err := s.CreateQuestionSet(teacher, CreateQuestionSetRequest{
		Title:       "Private set",
		Question:    "What is the capital of France?",
		ModelAnswer: "Paris is the capital of France",
		// 重复的用户名只算一次
		AssignedUsernames: []string{"stud1", "stud2", "stud1"},
	})
	require.NoError(t, err)
	assert.Len(t, out.AssignedStudents, 2)
}

func TestCreateQuestionSet_UnknownStudent(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teach", "teach@example.com", "pw", model.Teacher)
	createUser(t, db, "stud1", "stud1@example.com", "pw", model.Student)

	s := newTeacherService(db)
	_, err := s.CreateQuestionSet(teacher, CreateQuestionSetRequest{
		Title:             "Private set",
		Question:          "What is the capital of France?",
		ModelAnswer:       "Paris is the capital of France",
		AssignedUsernames: []string{"stud1", "ghost"},
	})
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestCreateQuestionSet_TeacherUsernameRejected(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teach", "teach@example.com", "pw", model.Teacher)
	other := createUser(t, db, "teach2", "teach2@example.com", "pw", model.Teacher)

	// 名单只接受学生账号，教师用户名视同不存在
	s := newTeacherService(db)
	_, err := s.CreateQuestionSet(teacher, CreateQuestionSetRequest{
		Title:             "Private set",
		Question:          "What is the capital of France?",
		ModelAnswer:       "Paris is the capital of France",
		AssignedUsernames: []string{other.Username},
	})
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestListQuestionSets_OwnOnly(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teach", "teach@example.com", "pw", model.Teacher)
	other := createUser(t, db, "teach2", "teach2@example.com", "pw", model.Teacher)
	createQuestionSet(t, db, teacher, "Mine")
	createQuestionSet(t, db, other, "Theirs")

	s := newTeacherService(db)
	outs, err := s.ListQuestionSets(teacher)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "Mine", outs[0].Title)
}

func TestSubmissionsForSet(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teach", "teach@example.com", "pw", model.Teacher)
	student := createUser(t, db, "stud", "stud@example.com", "pw", model.Student)
	qs := createQuestionSet(t, db, teacher, "Capitals")

	studentSvc := newStudentService(db, &fakeGrader{result: EvaluationResult{Score: 9, Feedback: "good"}})
	_, err := studentSvc.Submit(context.Background(), student, qs.ID, "Paris")
	require.NoError(t, err)

	s := newTeacherService(db)
	outs, err := s.SubmissionsForSet(teacher, qs.ID)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, student.Username, outs[0].Student.Username)
	assert.Equal(t, 9, outs[0].AIScore)
}

func TestSubmissionsForSet_NonOwnerMaskedAsNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner", "owner@example.com", "pw", model.Teacher)
	other := createUser(t, db, "other", "other@example.com", "pw", model.Teacher)
	qs := createQuestionSet(t, db, owner, "Capitals")

	s := newTeacherService(db)

	// 非创建者与题目集不存在得到完全相同的错误
	_, err := s.SubmissionsForSet(other, qs.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = s.SubmissionsForSet(other, 999)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestFinalize(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teach", "teach@example.com", "pw", model.Teacher)
	student := createUser(t, db, "stud", "stud@example.com", "pw", model.Student)
	qs := createQuestionSet(t, db, teacher, "Capitals")

	studentSvc := newStudentService(db, &fakeGrader{result: EvaluationResult{Score: 9, Feedback: "good"}})
	sub, err := studentSvc.Submit(context.Background(), student, qs.ID, "Paris")
	require.NoError(t, err)

	s := newTeacherService(db)
	out, err := s.Finalize(teacher, sub.ID, 10)
	require.NoError(t, err)
	require.NotNil(t, out.FinalScore)
	assert.Equal(t, 10, *out.FinalScore)

	// 重复调用幂等覆盖
	out, err = s.Finalize(teacher, sub.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, *out.FinalScore)

	out, err = s.Finalize(teacher, sub.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, *out.FinalScore)
}

func TestFinalize_NonOwnerForbidden(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner", "owner@example.com", "pw", model.Teacher)
	other := createUser(t, db, "other", "other@example.com", "pw", model.Teacher)
	student := createUser(t, db, "stud", "stud@example.com", "pw", model.Student)
	qs := createQuestionSet(t, db, owner, "Capitals")

	studentSvc := newStudentService(db, &fakeGrader{result: EvaluationResult{Score: 9, Feedback: "good"}})
	sub, err := studentSvc.Submit(context.Background(), student, qs.ID, "Paris")
	require.NoError(t, err)

	s := newTeacherService(db)
	_, err = s.Finalize(other, sub.ID, 10)
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestFinalize_SubmissionNotFound(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teach", "teach@example.com", "pw", model.Teacher)

	s := newTeacherService(db)
	_, err := s.Finalize(teacher, 999, 10)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
