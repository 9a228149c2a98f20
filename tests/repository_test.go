// Package tests contains integration tests for the repository layer
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	testingutil "github.com/aztec-interiors/fitflow/testing"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewCustomerRepository(testDB.DB)

		t.Run("ByFilterStage", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			_, err := fixtures.CreateMultipleTestCustomers("Lead", "Sold", "Sold")
			require.NoError(t, err)

			stage := "Sold"
			customers, err := repo.ByFilter(context.Background(), models.CustomerFilter{Stage: &stage}, "created_at DESC", 10, 0)
			require.NoError(t, err)
			assert.Len(t, customers, 2)

			count, err := repo.Count(context.Background(), models.CustomerFilter{Stage: &stage})
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})

		t.Run("ByUUID", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			found, err := repo.ByUUID(context.Background(), customer.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, customer.ID, found.ID)
		})

		t.Run("ExistsByEmail", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			exists, err := repo.Exists(context.Background(), models.CustomerFilter{Email: &customer.Email})
			require.NoError(t, err)
			assert.True(t, exists)

			missing := "nobody@example.com"
			exists, err = repo.Exists(context.Background(), models.CustomerFilter{Email: &missing})
			require.NoError(t, err)
			assert.False(t, exists)
		})

		t.Run("DeleteCascadesToQuotationsNotJobs", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(customer.ID, models.JobStageAccepted)
			require.NoError(t, err)
			quotation, err := fixtures.CreateTestQuotation(customer.ID, nil)
			require.NoError(t, err)
			submission, err := fixtures.CreateTestFormSubmission(&customer.ID, models.FormSourceWeb)
			require.NoError(t, err)
			productItem := models.ProductQuoteItem{QuotationID: quotation.ID, ProductID: 1, Quantity: 1}
			require.NoError(t, testDB.DB.Create(&productItem).Error)

			require.NoError(t, repo.Delete(context.Background(), customer.ID))

			var quotationCount, itemCount, productItemCount, submissionCount, jobCount int64
			require.NoError(t, testDB.DB.Model(&models.Quotation{}).Where("id = ?", quotation.ID).Count(&quotationCount).Error)
			require.NoError(t, testDB.DB.Model(&models.QuotationItem{}).Where("quotation_id = ?", quotation.ID).Count(&itemCount).Error)
			require.NoError(t, testDB.DB.Model(&models.ProductQuoteItem{}).Where("quotation_id = ?", quotation.ID).Count(&productItemCount).Error)
			require.NoError(t, testDB.DB.Model(&models.FormSubmission{}).Where("id = ?", submission.ID).Count(&submissionCount).Error)
			require.NoError(t, testDB.DB.Model(&models.Job{}).Where("id = ?", job.ID).Count(&jobCount).Error)
			assert.Equal(t, int64(0), quotationCount)
			assert.Equal(t, int64(0), itemCount)
			assert.Equal(t, int64(0), productItemCount)
			assert.Equal(t, int64(0), submissionCount)
			assert.Equal(t, int64(1), jobCount)
		})
	})
}

func TestJobRepository(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewJobRepository(testDB.DB)

		t.Run("ByReference", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(customer.ID, models.JobStageLead)
			require.NoError(t, err)

			found, err := repo.ByReference(context.Background(), job.Reference)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, job.ID, found.ID)

			missing, err := repo.ByReference(context.Background(), "AZT-0000-0000-0000")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("ListSchedulableOnlyPostSaleStages", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			_, err = fixtures.CreateTestJob(customer.ID, models.JobStageLead)
			require.NoError(t, err)
			_, err = fixtures.CreateTestJob(customer.ID, models.JobStageAccepted)
			require.NoError(t, err)
			_, err = fixtures.CreateTestJob(customer.ID, models.JobStageDelivery)
			require.NoError(t, err)
			_, err = fixtures.CreateTestJob(customer.ID, models.JobStageCompleted)
			require.NoError(t, err)

			jobs, err := repo.ListSchedulable(context.Background())
			require.NoError(t, err)
			assert.Len(t, jobs, 2)
			for _, job := range jobs {
				assert.Contains(t, models.SchedulableJobStages, job.Stage)
			}
		})

		t.Run("DeleteRemovesChildren", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(customer.ID, models.JobStageLead)
			require.NoError(t, err)

			doc := models.JobDocument{JobID: job.ID, Filename: "plan.pdf", StoredPath: "/uploads/plan.pdf"}
			require.NoError(t, testDB.DB.Create(&doc).Error)
			checklist := models.JobChecklist{JobID: job.ID, Title: "Counting sheet"}
			require.NoError(t, testDB.DB.Create(&checklist).Error)
			checklistItem := models.JobChecklistItem{ChecklistID: checklist.ID, Label: "Base units", Quantity: 8}
			require.NoError(t, testDB.DB.Create(&checklistItem).Error)
			scheduleItem := models.JobScheduleItem{JobID: job.ID, Title: "Rip out", Date: utils.UTCNow()}
			require.NoError(t, testDB.DB.Create(&scheduleItem).Error)
			room := models.JobRoom{JobID: job.ID, Name: "Kitchen"}
			require.NoError(t, testDB.DB.Create(&room).Error)
			appliance := models.RoomAppliance{RoomID: room.ID, Name: "Oven"}
			require.NoError(t, testDB.DB.Create(&appliance).Error)
			link := models.JobFormLink{JobID: job.ID, Token: "tokentokentokentokentokentokento", ExpiresAt: utils.UTCNowAdd(24 * time.Hour)}
			require.NoError(t, testDB.DB.Create(&link).Error)
			note := models.JobNote{JobID: job.ID, Body: "measure booked"}
			require.NoError(t, testDB.DB.Create(&note).Error)
			invoice := models.JobInvoice{JobID: job.ID, Number: "INV-0001", Amount: 2500.00}
			require.NoError(t, testDB.DB.Create(&invoice).Error)

			require.NoError(t, repo.Delete(context.Background(), job.ID))

			byJob := map[string]any{
				"documents":      &models.JobDocument{},
				"checklists":     &models.JobChecklist{},
				"schedule items": &models.JobScheduleItem{},
				"rooms":          &models.JobRoom{},
				"form links":     &models.JobFormLink{},
				"notes":          &models.JobNote{},
				"invoices":       &models.JobInvoice{},
			}
			for name, model := range byJob {
				var count int64
				require.NoError(t, testDB.DB.Model(model).Where("job_id = ?", job.ID).Count(&count).Error)
				assert.Equal(t, int64(0), count, name)
			}

			var checklistItemCount, applianceCount int64
			require.NoError(t, testDB.DB.Model(&models.JobChecklistItem{}).Where("checklist_id = ?", checklist.ID).Count(&checklistItemCount).Error)
			require.NoError(t, testDB.DB.Model(&models.RoomAppliance{}).Where("room_id = ?", room.ID).Count(&applianceCount).Error)
			assert.Equal(t, int64(0), checklistItemCount)
			assert.Equal(t, int64(0), applianceCount)
		})
	})
}

func TestFormSubmissionRepository(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewFormSubmissionRepository(testDB.DB)

		t.Run("ListUnlinked", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			orphan, err := fixtures.CreateTestFormSubmission(nil, models.FormSourceScan)
			require.NoError(t, err)
			_, err = fixtures.CreateTestFormSubmission(&customer.ID, models.FormSourceWeb)
			require.NoError(t, err)

			unlinked, err := repo.ListUnlinked(context.Background())
			require.NoError(t, err)
			require.Len(t, unlinked, 1)
			assert.Equal(t, orphan.ID, unlinked[0].ID)
		})

		t.Run("ByID", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			submission, err := fixtures.CreateTestFormSubmission(&customer.ID, models.FormSourceWeb)
			require.NoError(t, err)

			reloaded, err := repo.ByID(context.Background(), submission.ID)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			require.NotNil(t, reloaded.CustomerID)
			assert.Equal(t, customer.ID, *reloaded.CustomerID)
		})
	})
}
