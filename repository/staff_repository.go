package repository

import (
	"context"

	"github.com/aztec-interiors/fitflow/models"
	"gorm.io/gorm"
)

// applyStaffFilter is shared by the team, fitter and salesperson repositories
func applyStaffFilter(query *gorm.DB, filter models.StaffFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// TeamRepositoryImpl implements TeamRepository interface
type TeamRepositoryImpl struct {
	*BaseRepository[models.Team, models.StaffFilter]
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &TeamRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Team, models.StaffFilter](db),
	}
}

// ByFilter retrieves teams based on filter criteria
func (r *TeamRepositoryImpl) ByFilter(ctx context.Context, filter models.StaffFilter, orderBy string, limit, offset int) ([]*models.Team, error) {
	db := r.getDB(ctx)
	query := applyStaffFilter(db.Model(&models.Team{}), filter)

	if orderBy == "" {
		orderBy = "name ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Team
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of teams matching filter
func (r *TeamRepositoryImpl) Count(ctx context.Context, filter models.StaffFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyStaffFilter(db.Model(&models.Team{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any team matches the filter
func (r *TeamRepositoryImpl) Exists(ctx context.Context, filter models.StaffFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// FitterRepositoryImpl implements FitterRepository interface
type FitterRepositoryImpl struct {
	*BaseRepository[models.Fitter, models.StaffFilter]
}

// NewFitterRepository creates a new fitter repository
func NewFitterRepository(db *gorm.DB) FitterRepository {
	return &FitterRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Fitter, models.StaffFilter](db),
	}
}

// ListByTeam lists fitters attached to a team
func (r *FitterRepositoryImpl) ListByTeam(ctx context.Context, teamID uint) ([]*models.Fitter, error) {
	return r.ByFilter(ctx, models.StaffFilter{TeamID: &teamID}, "", 0, 0)
}

// ByFilter retrieves fitters based on filter criteria
func (r *FitterRepositoryImpl) ByFilter(ctx context.Context, filter models.StaffFilter, orderBy string, limit, offset int) ([]*models.Fitter, error) {
	db := r.getDB(ctx)
	query := applyStaffFilter(db.Model(&models.Fitter{}), filter)

	if orderBy == "" {
		orderBy = "name ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Fitter
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of fitters matching filter
func (r *FitterRepositoryImpl) Count(ctx context.Context, filter models.StaffFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyStaffFilter(db.Model(&models.Fitter{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any fitter matches the filter
func (r *FitterRepositoryImpl) Exists(ctx context.Context, filter models.StaffFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// SalespersonRepositoryImpl implements SalespersonRepository interface
type SalespersonRepositoryImpl struct {
	*BaseRepository[models.Salesperson, models.StaffFilter]
}

// NewSalespersonRepository creates a new salesperson repository
func NewSalespersonRepository(db *gorm.DB) SalespersonRepository {
	return &SalespersonRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Salesperson, models.StaffFilter](db),
	}
}

// ByFilter retrieves salespersons based on filter criteria
func (r *SalespersonRepositoryImpl) ByFilter(ctx context.Context, filter models.StaffFilter, orderBy string, limit, offset int) ([]*models.Salesperson, error) {
	db := r.getDB(ctx)
	query := applyStaffFilter(db.Model(&models.Salesperson{}), filter)

	if orderBy == "" {
		orderBy = "name ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Salesperson
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of salespersons matching filter
func (r *SalespersonRepositoryImpl) Count(ctx context.Context, filter models.StaffFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyStaffFilter(db.Model(&models.Salesperson{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any salesperson matches the filter
func (r *SalespersonRepositoryImpl) Exists(ctx context.Context, filter models.StaffFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
