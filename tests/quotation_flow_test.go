// Package tests contains integration tests for quotation workflows
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

func TestQuotationFlow(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		quotationRepo := repository.NewQuotationRepository(testDB.DB)
		customerRepo := repository.NewCustomerRepository(testDB.DB)

		quotationFlow := businessflow.NewQuotationFlow(quotationRepo, customerRepo, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("CreateQuotationWithItems", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			resp, err := quotationFlow.CreateQuotation(context.Background(), &dto.CreateQuotationRequest{
				CustomerID: customer.ID,
				Total:      utils.ToPtr(4250.00),
				Items: []dto.QuotationItemInput{
					{Item: "Base units", Amount: 3100.00},
					{Item: "Worktop", Color: utils.ToPtr("Oak"), Amount: 1150.00},
				},
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, models.QuotationStatusDraft, resp.Quotation.Status)
			assert.InDelta(t, 4250.00, resp.Quotation.Total, 0.001)
			assert.Len(t, resp.Quotation.Items, 2)
		})

		t.Run("CreateQuotationWithoutItems", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			resp, err := quotationFlow.CreateQuotation(context.Background(), &dto.CreateQuotationRequest{
				CustomerID: customer.ID,
				Total:      utils.ToPtr(1500.00),
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.InDelta(t, 1500.00, resp.Quotation.Total, 0.001)
			assert.Empty(t, resp.Quotation.Items)
		})

		t.Run("CreateQuotationWithoutTotal", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			resp, err := quotationFlow.CreateQuotation(context.Background(), &dto.CreateQuotationRequest{
				CustomerID: customer.ID,
				Items:      []dto.QuotationItemInput{{Item: "Base units", Amount: 100}},
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsQuotationTotalRequired(err))
		})

		t.Run("CreateQuotationCustomerNotFound", func(t *testing.T) {
			resp, err := quotationFlow.CreateQuotation(context.Background(), &dto.CreateQuotationRequest{
				CustomerID: 999999,
				Total:      utils.ToPtr(100.00),
				Items:      []dto.QuotationItemInput{{Item: "Base units", Amount: 100}},
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsCustomerNotFound(err))
		})

		t.Run("OneQuotationPerJob", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(customer.ID, models.JobStageQuoted)
			require.NoError(t, err)

			_, err = quotationFlow.CreateQuotation(context.Background(), &dto.CreateQuotationRequest{
				CustomerID: customer.ID,
				JobID:      &job.ID,
				Total:      utils.ToPtr(100.00),
				Items:      []dto.QuotationItemInput{{Item: "Base units", Amount: 100}},
			}, metadata)
			require.NoError(t, err)

			resp, err := quotationFlow.CreateQuotation(context.Background(), &dto.CreateQuotationRequest{
				CustomerID: customer.ID,
				JobID:      &job.ID,
				Total:      utils.ToPtr(200.00),
				Items:      []dto.QuotationItemInput{{Item: "Worktop", Amount: 200}},
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsQuotationJobConflict(err))
		})

		t.Run("UpdateReplacesItemsWholesale", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			quotation, err := fixtures.CreateTestQuotation(customer.ID, nil)
			require.NoError(t, err)
			require.Len(t, quotation.Items, 2)

			resp, err := quotationFlow.UpdateQuotation(context.Background(), quotation.ID, &dto.UpdateQuotationRequest{
				Items: []dto.QuotationItemInput{
					{Item: "Wall units", Amount: 900.00},
				},
			}, metadata)
			require.NoError(t, err)
			require.Len(t, resp.Quotation.Items, 1)
			assert.Equal(t, "Wall units", resp.Quotation.Items[0].Item)
			assert.InDelta(t, 900.00, resp.Quotation.Total, 0.001)

			// The old items are gone from the database, not just the response
			var count int64
			require.NoError(t, testDB.DB.Model(&models.QuotationItem{}).Where("quotation_id = ?", quotation.ID).Count(&count).Error)
			assert.Equal(t, int64(1), count)
		})

		t.Run("UpdateStatusKeepsItems", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			quotation, err := fixtures.CreateTestQuotation(customer.ID, nil)
			require.NoError(t, err)

			status := models.QuotationStatusSent
			resp, err := quotationFlow.UpdateQuotation(context.Background(), quotation.ID, &dto.UpdateQuotationRequest{
				Status: &status,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.QuotationStatusSent, resp.Quotation.Status)
			assert.Len(t, resp.Quotation.Items, 2)
			assert.InDelta(t, quotation.Total, resp.Quotation.Total, 0.001)
		})

		t.Run("UpdateJobConflict", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(customer.ID, models.JobStageQuoted)
			require.NoError(t, err)
			_, err = fixtures.CreateTestQuotation(customer.ID, &job.ID)
			require.NoError(t, err)
			other, err := fixtures.CreateTestQuotation(customer.ID, nil)
			require.NoError(t, err)

			resp, err := quotationFlow.UpdateQuotation(context.Background(), other.ID, &dto.UpdateQuotationRequest{
				JobID: &job.ID,
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsQuotationJobConflict(err))
		})

		t.Run("DeleteQuotationRemovesItems", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			quotation, err := fixtures.CreateTestQuotation(customer.ID, nil)
			require.NoError(t, err)
			productItem := models.ProductQuoteItem{QuotationID: quotation.ID, ProductID: 1, Quantity: 2}
			require.NoError(t, testDB.DB.Create(&productItem).Error)

			resp, err := quotationFlow.DeleteQuotation(context.Background(), quotation.ID, metadata)
			require.NoError(t, err)
			assert.Equal(t, quotation.ID, resp.ID)

			var itemCount, productItemCount int64
			require.NoError(t, testDB.DB.Model(&models.QuotationItem{}).Where("quotation_id = ?", quotation.ID).Count(&itemCount).Error)
			require.NoError(t, testDB.DB.Model(&models.ProductQuoteItem{}).Where("quotation_id = ?", quotation.ID).Count(&productItemCount).Error)
			assert.Equal(t, int64(0), itemCount)
			assert.Equal(t, int64(0), productItemCount)
		})

		t.Run("GetQuotationNotFound", func(t *testing.T) {
			resp, err := quotationFlow.GetQuotation(context.Background(), 999999)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsQuotationNotFound(err))
		})
	})
}
