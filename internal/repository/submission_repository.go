package repository

import (
	"perception_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(sub *model.Submission) error {
	return r.DB.Create(sub).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.First(&sub, id).Error
	return &sub, err
}

func (r *SubmissionRepository) FindByStudent(studentID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindByQuestionSet(questionSetID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("question_set_id = ?", questionSetID).Order("created_at desc").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindBySetAndStudent(questionSetID, studentID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Where("question_set_id = ? AND student_id = ?", questionSetID, studentID).First(&sub).Error
	return &sub, err
}

func (r *SubmissionRepository) Update(sub *model.Submission) error {
	return r.DB.Save(sub).Error
}
