package repository

import (
	"context"
	"errors"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
	"gorm.io/gorm"
)

// QuotationRepositoryImpl implements QuotationRepository interface
type QuotationRepositoryImpl struct {
	*BaseRepository[models.Quotation, models.QuotationFilter]
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) QuotationRepository {
	return &QuotationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Quotation, models.QuotationFilter](db),
	}
}

// ByUUID retrieves a quotation by UUID
func (r *QuotationRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Quotation, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.QuotationFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByIDWithItems retrieves a quotation with its line items preloaded
func (r *QuotationRepositoryImpl) ByIDWithItems(ctx context.Context, id uint) (*models.Quotation, error) {
	db := r.getDB(ctx)
	var row models.Quotation
	err := db.Preload("Items").Last(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByJobID retrieves the quotation attached to a job, if any
func (r *QuotationRepositoryImpl) ByJobID(ctx context.Context, jobID uint) (*models.Quotation, error) {
	rows, err := r.ByFilter(ctx, models.QuotationFilter{JobID: &jobID}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListByCustomer lists all quotations belonging to a customer
func (r *QuotationRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Quotation, error) {
	return r.ByFilter(ctx, models.QuotationFilter{CustomerID: &customerID}, "id DESC", 0, 0)
}

// applyFilter applies filter criteria to a GORM query
func (r *QuotationRepositoryImpl) applyFilter(query *gorm.DB, filter models.QuotationFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.JobID != nil {
		query = query.Where("job_id = ?", *filter.JobID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves quotations based on filter criteria
func (r *QuotationRepositoryImpl) ByFilter(ctx context.Context, filter models.QuotationFilter, orderBy string, limit, offset int) ([]*models.Quotation, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Quotation{})

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

	var rows []*models.Quotation
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of quotations matching filter
func (r *QuotationRepositoryImpl) Count(ctx context.Context, filter models.QuotationFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Quotation{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any quotation matches the filter
func (r *QuotationRepositoryImpl) Exists(ctx context.Context, filter models.QuotationFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Update persists changes to an existing quotation
func (r *QuotationRepositoryImpl) Update(ctx context.Context, quotation *models.Quotation) error {
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
	err = db.Save(quotation).Error
	if err != nil {
		return err
	}
	return nil
}

// ReplaceItems removes every line item of the quotation and inserts the new set
func (r *QuotationRepositoryImpl) ReplaceItems(ctx context.Context, quotationID uint, items []*models.QuotationItem) error {
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

	err = db.Where("quotation_id = ?", quotationID).Delete(&models.QuotationItem{}).Error
	if err != nil {
		return err
	}
	for _, item := range items {
		item.QuotationID = quotationID
	}
	if len(items) > 0 {
		err = db.Create(items).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a quotation together with its line items and product items
func (r *QuotationRepositoryImpl) Delete(ctx context.Context, id uint) error {
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

	err = db.Where("quotation_id = ?", id).Delete(&models.QuotationItem{}).Error
	if err != nil {
		return err
	}
	err = db.Where("quotation_id = ?", id).Delete(&models.ProductQuoteItem{}).Error
	if err != nil {
		return err
	}
	err = db.Delete(&models.Quotation{}, id).Error
	if err != nil {
		return err
	}
	return nil
}
