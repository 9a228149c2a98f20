// Package tests contains integration tests for customer workflows
package tests

import (
	"context"
	"testing"

	"github.com/aztec-interiors/fitflow/app/dto"
	businessflow "github.com/aztec-interiors/fitflow/business_flow"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	testingutil "github.com/aztec-interiors/fitflow/testing"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerFlow(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		customerRepo := repository.NewCustomerRepository(testDB.DB)
		jobRepo := repository.NewJobRepository(testDB.DB)
		quotationRepo := repository.NewQuotationRepository(testDB.DB)
		formDataRepo := repository.NewCustomerFormDataRepository(testDB.DB)

		customerFlow := businessflow.NewCustomerFlow(customerRepo, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("CreateCustomerDerivesPostcode", func(t *testing.T) {
			req := &dto.CreateCustomerRequest{
				Name:    "Jane Smith",
				Address: "12 Harewood Road, Leeds ls2 9ab",
				Phone:   "07700900123",
				Email:   "jane@example.com",
			}

			resp, err := customerFlow.CreateCustomer(context.Background(), req, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, "Jane Smith", resp.Customer.Name)
			assert.Equal(t, "LS2 9AB", resp.Customer.Postcode)
			assert.Equal(t, "Lead", resp.Customer.Stage)
			assert.Equal(t, utils.CustomerStatusActive, resp.Customer.Status)
			assert.NotEmpty(t, resp.Customer.UUID)
		})

		t.Run("CreateCustomerWithoutName", func(t *testing.T) {
			req := &dto.CreateCustomerRequest{Address: "12 Harewood Road, Leeds LS2 9AB"}

			resp, err := customerFlow.CreateCustomer(context.Background(), req, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsCustomerNameRequired(err))
		})

		t.Run("UpdateAddressRederivesPostcode", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			require.Equal(t, "B91 2QF", customer.Postcode)

			newAddress := "5 Park Row, Leeds LS2 9AB"
			resp, err := customerFlow.UpdateCustomer(context.Background(), customer.ID, &dto.UpdateCustomerRequest{
				Address: &newAddress,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "LS2 9AB", resp.Customer.Postcode)
		})

		t.Run("GetCustomerNotFound", func(t *testing.T) {
			resp, err := customerFlow.GetCustomer(context.Background(), 999999)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsCustomerNotFound(err))
		})

		t.Run("GetCustomerWithRelations", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			_, err = fixtures.CreateTestJob(customer.ID, models.JobStageLead)
			require.NoError(t, err)
			_, err = fixtures.CreateTestQuotation(customer.ID, nil)
			require.NoError(t, err)

			resp, err := customerFlow.GetCustomer(context.Background(), customer.ID)
			require.NoError(t, err)
			assert.Equal(t, customer.ID, resp.Customer.ID)
			assert.Len(t, resp.Jobs, 1)
			assert.Len(t, resp.Quotations, 1)
		})

		t.Run("ListCustomersByStage", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			_, err := fixtures.CreateMultipleTestCustomers("Lead", "Lead", "Sold")
			require.NoError(t, err)

			stage := "Lead"
			resp, err := customerFlow.ListCustomers(context.Background(), &dto.ListCustomersRequest{Stage: &stage})
			require.NoError(t, err)
			assert.Equal(t, int64(2), resp.Total)
			assert.Len(t, resp.Customers, 2)
		})

		t.Run("ListCustomersRejectsOversizedPage", func(t *testing.T) {
			resp, err := customerFlow.ListCustomers(context.Background(), &dto.ListCustomersRequest{PageSize: 10000})
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsInvalidPageSize(err))
		})

		t.Run("DeleteCustomerKeepsJobs", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(customer.ID, models.JobStageSold)
			require.NoError(t, err)
			quotation, err := fixtures.CreateTestQuotation(customer.ID, nil)
			require.NoError(t, err)
			_, err = fixtures.CreateTestFormData(customer.ID, "sometesttoken")
			require.NoError(t, err)
			submission, err := fixtures.CreateTestFormSubmission(&customer.ID, models.FormSourceWeb)
			require.NoError(t, err)

			resp, err := customerFlow.DeleteCustomer(context.Background(), customer.ID, metadata)
			require.NoError(t, err)
			assert.Equal(t, customer.ID, resp.ID)

			// Customer, quotations and form data are gone
			gone, err := customerRepo.ByID(context.Background(), customer.ID)
			require.NoError(t, err)
			assert.Nil(t, gone)

			goneQuote, err := quotationRepo.ByID(context.Background(), quotation.ID)
			require.NoError(t, err)
			assert.Nil(t, goneQuote)

			formData, err := formDataRepo.ListByCustomer(context.Background(), customer.ID)
			require.NoError(t, err)
			assert.Empty(t, formData)

			var submissionCount int64
			require.NoError(t, testDB.DB.Model(&models.FormSubmission{}).Where("id = ?", submission.ID).Count(&submissionCount).Error)
			assert.Equal(t, int64(0), submissionCount)

			// The job survives and keeps its customer_id
			kept, err := jobRepo.ByID(context.Background(), job.ID)
			require.NoError(t, err)
			require.NotNil(t, kept)
			assert.Equal(t, customer.ID, kept.CustomerID)
		})

		t.Run("DeleteCustomerNotFound", func(t *testing.T) {
			resp, err := customerFlow.DeleteCustomer(context.Background(), 999999, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsCustomerNotFound(err))
		})
	})
}
