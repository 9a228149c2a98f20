package repository

import (
	"context"
	"errors"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
	"gorm.io/gorm"
)

// JobRepositoryImpl implements JobRepository interface
type JobRepositoryImpl struct {
	*BaseRepository[models.Job, models.JobFilter]
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Job, models.JobFilter](db),
	}
}

// ByUUID retrieves a job by UUID
func (r *JobRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Job, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.JobFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByIDWithChildren retrieves a job with all of its child rows preloaded
func (r *JobRepositoryImpl) ByIDWithChildren(ctx context.Context, id uint) (*models.Job, error) {
	db := r.getDB(ctx)
	var row models.Job
	err := db.Preload("Documents").
		Preload("Checklists").
		Preload("Checklists.Items").
		Preload("ScheduleItems").
		Preload("Rooms").
		Preload("Rooms.Appliances").
		Preload("FormLinks").
		Preload("NoteEntries").
		Preload("Invoices").
		Last(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByReference retrieves a job by its unique reference
func (r *JobRepositoryImpl) ByReference(ctx context.Context, reference string) (*models.Job, error) {
	rows, err := r.ByFilter(ctx, models.JobFilter{Reference: &reference}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListByCustomer lists all jobs belonging to a customer
func (r *JobRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Job, error) {
	return r.ByFilter(ctx, models.JobFilter{CustomerID: &customerID}, "id DESC", 0, 0)
}

// ListSchedulable lists jobs in a stage that can still be scheduled
func (r *JobRepositoryImpl) ListSchedulable(ctx context.Context) ([]*models.Job, error) {
	return r.ByFilter(ctx, models.JobFilter{Stages: models.SchedulableJobStages}, "id DESC", 0, 0)
}

// applyFilter applies filter criteria to a GORM query
func (r *JobRepositoryImpl) applyFilter(query *gorm.DB, filter models.JobFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Reference != nil {
		query = query.Where("reference = ?", *filter.Reference)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Stage != nil {
		query = query.Where("stage = ?", *filter.Stage)
	}
	if len(filter.Stages) > 0 {
		query = query.Where("stage IN ?", filter.Stages)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.QuotationID != nil {
		query = query.Where("quotation_id = ?", *filter.QuotationID)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves jobs based on filter criteria
func (r *JobRepositoryImpl) ByFilter(ctx context.Context, filter models.JobFilter, orderBy string, limit, offset int) ([]*models.Job, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Job{})

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

	var rows []*models.Job
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of jobs matching filter
func (r *JobRepositoryImpl) Count(ctx context.Context, filter models.JobFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Job{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any job matches the filter
func (r *JobRepositoryImpl) Exists(ctx context.Context, filter models.JobFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Update persists changes to an existing job
func (r *JobRepositoryImpl) Update(ctx context.Context, job *models.Job) error {
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
	err = db.Save(job).Error
	if err != nil {
		return err
	}
	return nil
}

// SaveFormLink records a form token issued against the job
func (r *JobRepositoryImpl) SaveFormLink(ctx context.Context, link *models.JobFormLink) error {
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
	err = db.Create(link).Error
	if err != nil {
		return err
	}
	return nil
}

// Delete removes a job together with every dependent row
func (r *JobRepositoryImpl) Delete(ctx context.Context, id uint) error {
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

	var checklistIDs []uint
	err = db.Model(&models.JobChecklist{}).Where("job_id = ?", id).Pluck("id", &checklistIDs).Error
	if err != nil {
		return err
	}
	if len(checklistIDs) > 0 {
		err = db.Where("checklist_id IN ?", checklistIDs).Delete(&models.JobChecklistItem{}).Error
		if err != nil {
			return err
		}
	}

	var roomIDs []uint
	err = db.Model(&models.JobRoom{}).Where("job_id = ?", id).Pluck("id", &roomIDs).Error
	if err != nil {
		return err
	}
	if len(roomIDs) > 0 {
		err = db.Where("room_id IN ?", roomIDs).Delete(&models.RoomAppliance{}).Error
		if err != nil {
			return err
		}
	}

	for _, child := range []any{
		&models.JobDocument{},
		&models.JobChecklist{},
		&models.JobScheduleItem{},
		&models.JobRoom{},
		&models.JobFormLink{},
		&models.JobNote{},
		&models.JobInvoice{},
	} {
		err = db.Where("job_id = ?", id).Delete(child).Error
		if err != nil {
			return err
		}
	}

	err = db.Delete(&models.Job{}, id).Error
	if err != nil {
		return err
	}
	return nil
}
