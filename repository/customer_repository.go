package repository

import (
	"context"
	"errors"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
	"gorm.io/gorm"
)

// CustomerRepositoryImpl implements CustomerRepository interface
type CustomerRepositoryImpl struct {
	*BaseRepository[models.Customer, models.CustomerFilter]
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &CustomerRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Customer, models.CustomerFilter](db),
	}
}

// ByUUID retrieves a customer by UUID
func (r *CustomerRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Customer, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.CustomerFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByIDWithRelations retrieves a customer with jobs, quotations and form data preloaded
func (r *CustomerRepositoryImpl) ByIDWithRelations(ctx context.Context, id uint) (*models.Customer, error) {
	db := r.getDB(ctx)
	var row models.Customer
	err := db.Preload("Jobs").
		Preload("Quotations").
		Preload("Quotations.Items").
		Preload("FormData").
		Last(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListActiveCustomers lists customers whose status is Active
func (r *CustomerRepositoryImpl) ListActiveCustomers(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	status := utils.CustomerStatusActive
	return r.ByFilter(ctx, models.CustomerFilter{Status: &status}, "id DESC", limit, offset)
}

// applyFilter applies filter criteria to a GORM query
func (r *CustomerRepositoryImpl) applyFilter(query *gorm.DB, filter models.CustomerFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.Phone != nil {
		query = query.Where("phone = ?", *filter.Phone)
	}
	if filter.Postcode != nil {
		query = query.Where("postcode = ?", *filter.Postcode)
	}
	if filter.Stage != nil {
		query = query.Where("stage = ?", *filter.Stage)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Salesperson != nil {
		query = query.Where("salesperson = ?", *filter.Salesperson)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves customers based on filter criteria
func (r *CustomerRepositoryImpl) ByFilter(ctx context.Context, filter models.CustomerFilter, orderBy string, limit, offset int) ([]*models.Customer, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Customer{})

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

	var rows []*models.Customer
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of customers matching filter
func (r *CustomerRepositoryImpl) Count(ctx context.Context, filter models.CustomerFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Customer{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any customer matches the filter
func (r *CustomerRepositoryImpl) Exists(ctx context.Context, filter models.CustomerFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Update persists changes to an existing customer
func (r *CustomerRepositoryImpl) Update(ctx context.Context, customer *models.Customer) error {
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
	err = db.Save(customer).Error
	if err != nil {
		return err
	}
	return nil
}

// Delete removes a customer together with its quotations, quotation items and
// form records. Jobs keep their customer_id and become orphans.
func (r *CustomerRepositoryImpl) Delete(ctx context.Context, id uint) error {
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

	var quotationIDs []uint
	err = db.Model(&models.Quotation{}).Where("customer_id = ?", id).Pluck("id", &quotationIDs).Error
	if err != nil {
		return err
	}
	if len(quotationIDs) > 0 {
		err = db.Where("quotation_id IN ?", quotationIDs).Delete(&models.QuotationItem{}).Error
		if err != nil {
			return err
		}
		err = db.Where("quotation_id IN ?", quotationIDs).Delete(&models.ProductQuoteItem{}).Error
		if err != nil {
			return err
		}
	}
	err = db.Where("customer_id = ?", id).Delete(&models.Quotation{}).Error
	if err != nil {
		return err
	}
	err = db.Where("customer_id = ?", id).Delete(&models.CustomerFormData{}).Error
	if err != nil {
		return err
	}
	err = db.Where("customer_id = ?", id).Delete(&models.FormSubmission{}).Error
	if err != nil {
		return err
	}
	err = db.Delete(&models.Customer{}, id).Error
	if err != nil {
		return err
	}
	return nil
}
