package model

// QuestionSet 题目集：教师创建，包含题目与参考答案。
// AssignedStudents 为空表示对所有学生公开。
type QuestionSet struct {
	BaseModel
	Title            string `gorm:"size:100;not null" json:"title"`
	Question         string `gorm:"type:text;not null" json:"question"`
	ModelAnswer      string `gorm:"type:text;not null" json:"modelAnswer"`
	CreatorID        uint   `gorm:"index;not null" json:"creatorId"`
	AssignedStudents []User `gorm:"many2many:question_set_students" json:"-"`
}

func (QuestionSet) TableName() string {
	return "question_sets"
}

// IsPublic 未指定任何学生即为公开题目集
func (qs *QuestionSet) IsPublic() bool {
	return len(qs.AssignedStudents) == 0
}

// IsAssignedTo 判断学生是否在指定名单中
func (qs *QuestionSet) IsAssignedTo(studentID uint) bool {
	for _, s := range qs.AssignedStudents {
		if s.ID == studentID {
			return true
		}
	}
	return false
}
