package repository

import (
	"perception_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionSetRepository struct {
	DB *gorm.DB
}

func NewQuestionSetRepository(db *gorm.DB) *QuestionSetRepository {
	return &QuestionSetRepository{DB: db}
}

func (r *QuestionSetRepository) Create(qs *model.QuestionSet) error {
	return r.DB.Create(qs).Error
}

func (r *QuestionSetRepository) FindByID(id uint) (*model.QuestionSet, error) {
	var qs model.QuestionSet
	err := r.DB.Preload("AssignedStudents").First(&qs, id).Error
	return &qs, err
}

func (r *QuestionSetRepository) FindByCreator(creatorID uint) ([]model.QuestionSet, error) {
	var sets []model.QuestionSet
	err := r.DB.Preload("AssignedStudents").
		Where("creator_id = ?", creatorID).
		Order("created_at desc").
		Find(&sets).Error
	return sets, err
}

// FindExcluding 返回不在排除列表中的全部题目集，学生可见性筛选在服务层完成
func (r *QuestionSetRepository) FindExcluding(excludedIDs []uint) ([]model.QuestionSet, error) {
	var sets []model.QuestionSet
	query := r.DB.Preload("AssignedStudents")
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}
	err := query.Order("created_at desc").Find(&sets).Error
	return sets, err
}

// FindByIDs 批量查找，用于提交列表装配
func (r *QuestionSetRepository) FindByIDs(ids []uint) ([]model.QuestionSet, error) {
	var sets []model.QuestionSet
	if len(ids) == 0 {
		return sets, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&sets).Error
	return sets, err
}
