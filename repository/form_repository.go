package repository

import (
	"context"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
	"gorm.io/gorm"
)

// CustomerFormDataRepositoryImpl implements CustomerFormDataRepository interface
type CustomerFormDataRepositoryImpl struct {
	*BaseRepository[models.CustomerFormData, models.CustomerFormDataFilter]
}

// NewCustomerFormDataRepository creates a new customer form data repository
func NewCustomerFormDataRepository(db *gorm.DB) CustomerFormDataRepository {
	return &CustomerFormDataRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CustomerFormData, models.CustomerFormDataFilter](db),
	}
}

// ListByCustomer lists form payloads submitted for a customer
func (r *CustomerFormDataRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint) ([]*models.CustomerFormData, error) {
	return r.ByFilter(ctx, models.CustomerFormDataFilter{CustomerID: &customerID}, "id DESC", 0, 0)
}

// DeleteByCustomer removes every form payload belonging to a customer
func (r *CustomerFormDataRepositoryImpl) DeleteByCustomer(ctx context.Context, customerID uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}
	err = db.Where("customer_id = ?", customerID).Delete(&models.CustomerFormData{}).Error
	if err != nil {
		return err
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *CustomerFormDataRepositoryImpl) applyFilter(query *gorm.DB, filter models.CustomerFormDataFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.TokenUsed != nil {
		query = query.Where("token_used = ?", *filter.TokenUsed)
	}
	if filter.SubmittedAfter != nil {
		query = query.Where("submitted_at > ?", *filter.SubmittedAfter)
	}
	if filter.SubmittedBefore != nil {
		query = query.Where("submitted_at < ?", *filter.SubmittedBefore)
	}
	return query
}

// ByFilter retrieves form payloads based on filter criteria
func (r *CustomerFormDataRepositoryImpl) ByFilter(ctx context.Context, filter models.CustomerFormDataFilter, orderBy string, limit, offset int) ([]*models.CustomerFormData, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.CustomerFormData{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.CustomerFormData
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of form payloads matching filter
func (r *CustomerFormDataRepositoryImpl) Count(ctx context.Context, filter models.CustomerFormDataFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.CustomerFormData{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any form payload matches the filter
func (r *CustomerFormDataRepositoryImpl) Exists(ctx context.Context, filter models.CustomerFormDataFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// FormSubmissionRepositoryImpl implements FormSubmissionRepository interface
type FormSubmissionRepositoryImpl struct {
	*BaseRepository[models.FormSubmission, models.FormSubmissionFilter]
}

// NewFormSubmissionRepository creates a new form submission repository
func NewFormSubmissionRepository(db *gorm.DB) FormSubmissionRepository {
	return &FormSubmissionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.FormSubmission, models.FormSubmissionFilter](db),
	}
}

// ByUUID retrieves a form submission by UUID
func (r *FormSubmissionRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.FormSubmission, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.FormSubmissionFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListUnlinked lists submissions not yet attached to a customer
func (r *FormSubmissionRepositoryImpl) ListUnlinked(ctx context.Context) ([]*models.FormSubmission, error) {
	unlinked := true
	return r.ByFilter(ctx, models.FormSubmissionFilter{Unlinked: &unlinked}, "id DESC", 0, 0)
}

// applyFilter applies filter criteria to a GORM query
func (r *FormSubmissionRepositoryImpl) applyFilter(query *gorm.DB, filter models.FormSubmissionFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Unlinked != nil && *filter.Unlinked {
		query = query.Where("customer_id IS NULL")
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	if filter.SubmittedAfter != nil {
		query = query.Where("submitted_at > ?", *filter.SubmittedAfter)
	}
	if filter.SubmittedBefore != nil {
		query = query.Where("submitted_at < ?", *filter.SubmittedBefore)
	}
	return query
}

// ByFilter retrieves form submissions based on filter criteria
func (r *FormSubmissionRepositoryImpl) ByFilter(ctx context.Context, filter models.FormSubmissionFilter, orderBy string, limit, offset int) ([]*models.FormSubmission, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.FormSubmission{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.FormSubmission
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of form submissions matching filter
func (r *FormSubmissionRepositoryImpl) Count(ctx context.Context, filter models.FormSubmissionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.FormSubmission{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any form submission matches the filter
func (r *FormSubmissionRepositoryImpl) Exists(ctx context.Context, filter models.FormSubmissionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Update persists changes to an existing form submission
func (r *FormSubmissionRepositoryImpl) Update(ctx context.Context, submission *models.FormSubmission) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}
	err = db.Save(submission).Error
	if err != nil {
		return err
	}
	return nil
}

// Delete removes a form submission
func (r *FormSubmissionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}
	err = db.Delete(&models.FormSubmission{}, id).Error
	if err != nil {
		return err
	}
	return nil
}
