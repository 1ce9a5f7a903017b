package service

import "perception_backend/internal/model"

// 对外响应视图。链接字段在服务层批量解析后内联，
// 避免控制器或前端再做 N+1 查询。

type UserOut struct {
	ID       uint           `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Role     model.UserRole `json:"role"`
}

// QuestionSetOut 教师视角，包含参考答案与指定学生名单
type QuestionSetOut struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Question         string    `json:"question"`
	ModelAnswer      string    `json:"model_answer"`
	Creator          UserOut   `json:"creator"`
	AssignedStudents []UserOut `json:"assigned_students"`
}

// QuestionSetForStudentOut 学生视角，参考答案不可见
type QuestionSetForStudentOut struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Question string  `json:"question"`
	Creator  UserOut `json:"creator"`
}

// SubmissionResultOut 学生查看自己的提交结果
type SubmissionResultOut struct {
	ID            uint                     `json:"id"`
	QuestionSet   QuestionSetForStudentOut `json:"question_set"`
	StudentAnswer string                   `json:"student_answer"`
	AIScore       int                      `json:"ai_score"`
	AIFeedback    string                   `json:"ai_feedback"`
	FinalScore    *int                     `json:"final_score"`
}

// SubmissionReviewOut 教师批阅视角，内联学生资料
type SubmissionReviewOut struct {
	ID            uint    `json:"id"`
	Student       UserOut `json:"student"`
	StudentAnswer string  `json:"student_answer"`
	AIScore       int     `json:"ai_score"`
	AIFeedback    string  `json:"ai_feedback"`
	FinalScore    *int    `json:"final_score"`
}

func NewUserOut(u *model.User) UserOut {
	return UserOut{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

func newUserOuts(users []model.User) []UserOut {
	outs := make([]UserOut, 0, len(users))
	for i := range users {
		outs = append(outs, NewUserOut(&users[i]))
	}
	return outs
}

func newQuestionSetOut(qs *model.QuestionSet, creator UserOut) QuestionSetOut {
	return QuestionSetOut{
		ID:               qs.ID,
		Title:            qs.Title,
		Question:         qs.Question,
		ModelAnswer:      qs.ModelAnswer,
		Creator:          creator,
		AssignedStudents: newUserOuts(qs.AssignedStudents),
	}
}

func newQuestionSetForStudentOut(qs *model.QuestionSet, creator UserOut) QuestionSetForStudentOut {
	return QuestionSetForStudentOut{
		ID:       qs.ID,
		Title:    qs.Title,
		Question: qs.Question,
		Creator:  creator,
	}
}

func newSubmissionResultOut(sub *model.Submission, qsOut QuestionSetForStudentOut) SubmissionResultOut {
	return SubmissionResultOut{
		ID:            sub.ID,
		QuestionSet:   qsOut,
		StudentAnswer: sub.StudentAnswer,
		AIScore:       sub.AIScore,
		AIFeedback:    sub.AIFeedback,
		FinalScore:    sub.FinalScore,
	}
}

func newSubmissionReviewOut(sub *model.Submission, student UserOut) SubmissionReviewOut {
	return SubmissionReviewOut{
		ID:            sub.ID,
		Student:       student,
		StudentAnswer: sub.StudentAnswer,
		AIScore:       sub.AIScore,
		AIFeedback:    sub.AIFeedback,
		FinalScore:    sub.FinalScore,
	}
}
