package branchrepo

import (
	"context"
	"errors"

	"oshxona/internal/core/domain/model/branch"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBranchRepository implements ports.BranchRepository using GORM.
// Branches are reference data maintained out of band, so the repository is
// read-oriented; Add exists for fixtures and provisioning.
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GORM branch repository.
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Add saves a new branch to the database.
func (r *GormBranchRepository) Add(ctx context.Context, aggregate *branch.Branch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a branch by ID.
func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every branch that currently takes orders.
func (r *GormBranchRepository) GetAllActive(ctx context.Context) ([]*branch.Branch, error) {
	var dtos []BranchDTO
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	branches := make([]*branch.Branch, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		branches = append(branches, aggregate)
	}

	return branches, nil
}
