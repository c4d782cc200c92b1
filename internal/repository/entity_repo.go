package repository

import (
	"github.com/uknf/communication-platform-backend/internal/domain"
	"gorm.io/gorm"
)

// EntityRepository supervised-entity data access interface
type EntityRepository interface {
	FindByID(id int64) (*domain.SupervisedEntity, error)
	NamesByIDs(ids []int64) (map[int64]string, error)
}

type entityRepository struct {
	db *gorm.DB
}

// NewEntityRepository creates a new EntityRepository
func NewEntityRepository(db *gorm.DB) EntityRepository {
	return &entityRepository{db: db}
}

// FindByID finds a supervised entity by ID
func (r *entityRepository) FindByID(id int64) (*domain.SupervisedEntity, error) {
	var entity domain.SupervisedEntity
	err := r.db.Where("id = ?", id).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// NamesByIDs resolves entity IDs to names in one query (export path)
func (r *entityRepository) NamesByIDs(ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var entities []domain.SupervisedEntity
	if err := r.db.Select("id", "name").Where("id IN ?", ids).Find(&entities).Error; err != nil {
		return nil, err
	}
	for _, e := range entities {
		names[e.ID] = e.Name
	}
	return names, nil
}
