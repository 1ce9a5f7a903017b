package model

// AIScoreFailed AI评分失败哨兵值（不会被持久化，提交整体失败）
const AIScoreFailed = -1

// Submission 学生提交：每个学生对同一题目集最多提交一次，
// 由 (question_set_id, student_id) 联合唯一索引保证。
type Submission struct {
	BaseModel
	QuestionSetID uint   `gorm:"uniqueIndex:uniq_set_student;not null" json:"questionSetId"`
	StudentID     uint   `gorm:"uniqueIndex:uniq_set_student;not null" json:"studentId"`
	StudentAnswer string `gorm:"type:text;not null" json:"studentAnswer"`
	AIScore       int    `json:"aiScore"`
	AIFeedback    string `gorm:"type:text" json:"aiFeedback"`
	FinalScore    *int   `json:"finalScore"`
}

func (Submission) TableName() string {
	return "submissions"
}
