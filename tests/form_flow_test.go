// Package tests contains integration tests for form link and submission workflows
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/app/services"
	businessflow "github.com/aztec-interiors/fitflow/business_flow"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	testingutil "github.com/aztec-interiors/fitflow/testing"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormFlow(testDB *testingutil.TestDB, ttl time.Duration) businessflow.FormFlow {
	tokenService := services.NewFormTokenService(ttl, 32)
	customerRepo := repository.NewCustomerRepository(testDB.DB)
	formDataRepo := repository.NewCustomerFormDataRepository(testDB.DB)
	submissionRepo := repository.NewFormSubmissionRepository(testDB.DB)
	jobRepo := repository.NewJobRepository(testDB.DB)

	return businessflow.NewFormFlow(tokenService, customerRepo, formDataRepo, submissionRepo, jobRepo, testDB.DB)
}

func TestFormFlow(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		formFlow := newFormFlow(testDB, 24*time.Hour)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		customerRepo := repository.NewCustomerRepository(testDB.DB)
		formDataRepo := repository.NewCustomerFormDataRepository(testDB.DB)
		submissionRepo := repository.NewFormSubmissionRepository(testDB.DB)

		t.Run("GenerateAndValidateFormLink", func(t *testing.T) {
			resp, err := formFlow.GenerateFormLink(context.Background(), &dto.GenerateFormLinkRequest{}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Len(t, resp.Token, 32)
			assert.NotEmpty(t, resp.ExpiresAt)

			validation, err := formFlow.ValidateFormToken(context.Background(), resp.Token)
			require.NoError(t, err)
			assert.True(t, validation.Valid)
		})

		t.Run("GenerateFormLinkForJob", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(customer.ID, models.JobStageLead)
			require.NoError(t, err)

			resp, err := formFlow.GenerateFormLink(context.Background(), &dto.GenerateFormLinkRequest{JobID: &job.ID}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)

			var link models.JobFormLink
			require.NoError(t, testDB.DB.Where("job_id = ?", job.ID).First(&link).Error)
			assert.Equal(t, resp.Token, link.Token)
		})

		t.Run("GenerateFormLinkJobNotFound", func(t *testing.T) {
			missing := uint(999999)
			resp, err := formFlow.GenerateFormLink(context.Background(), &dto.GenerateFormLinkRequest{JobID: &missing}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsJobNotFound(err))
		})

		t.Run("ValidateUnknownToken", func(t *testing.T) {
			resp, err := formFlow.ValidateFormToken(context.Background(), "nosuchtokennosuchtokennosuchtoke")
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsFormTokenInvalid(err))
		})

		t.Run("SubmitCreatesCustomerAndConsumesToken", func(t *testing.T) {
			link, err := formFlow.GenerateFormLink(context.Background(), &dto.GenerateFormLinkRequest{}, metadata)
			require.NoError(t, err)

			submitReq := &dto.SubmitCustomerFormRequest{
				Token: link.Token,
				FormData: map[string]string{
					"customer_name":    "Tom Baxter",
					"customer_address": "3 Mill Lane, Birmingham B33 8TH",
					"customer_phone":   "07700900456",
					"project_type":     "Kitchen",
				},
			}

			resp, err := formFlow.SubmitCustomerForm(context.Background(), submitReq, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotZero(t, resp.CustomerID)

			// New lead customer with derived postcode
			customer, err := customerRepo.ByID(context.Background(), resp.CustomerID)
			require.NoError(t, err)
			require.NotNil(t, customer)
			assert.Equal(t, "Tom Baxter", customer.Name)
			assert.Equal(t, "B33 8TH", customer.Postcode)
			assert.Equal(t, utils.CustomerStatusNewLead, customer.Status)
			assert.Equal(t, "Web Form", customer.CreatedBy)

			// Raw form data records the consumed token
			formData, err := formDataRepo.ListByCustomer(context.Background(), resp.CustomerID)
			require.NoError(t, err)
			require.Len(t, formData, 1)
			assert.Equal(t, link.Token, formData[0].TokenUsed)

			// A structured submission is linked to the new customer
			submissions, err := submissionRepo.ByFilter(context.Background(), models.FormSubmissionFilter{CustomerID: &resp.CustomerID}, "submitted_at DESC", 10, 0)
			require.NoError(t, err)
			require.Len(t, submissions, 1)
			assert.Equal(t, models.FormSourceWeb, submissions[0].Source)

			// The token is single use
			_, err = formFlow.ValidateFormToken(context.Background(), link.Token)
			require.Error(t, err)
			assert.True(t, businessflow.IsFormTokenAlreadyUsed(err))

			second, err := formFlow.SubmitCustomerForm(context.Background(), submitReq, metadata)
			require.Error(t, err)
			assert.Nil(t, second)
			assert.True(t, businessflow.IsFormTokenAlreadyUsed(err))
		})

		t.Run("RejectedSubmissionLeavesTokenUsable", func(t *testing.T) {
			link, err := formFlow.GenerateFormLink(context.Background(), &dto.GenerateFormLinkRequest{}, metadata)
			require.NoError(t, err)

			resp, err := formFlow.SubmitCustomerForm(context.Background(), &dto.SubmitCustomerFormRequest{
				Token:    link.Token,
				FormData: map[string]string{"customer_address": "3 Mill Lane, Birmingham B33 8TH"},
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsCustomerNameRequired(err))

			// Validation failed before any write, so the link still works
			validation, err := formFlow.ValidateFormToken(context.Background(), link.Token)
			require.NoError(t, err)
			assert.True(t, validation.Valid)
		})

		t.Run("EmptyFormDataCheckedBeforeToken", func(t *testing.T) {
			// The missing-payload error wins even when the token is garbage
			resp, err := formFlow.SubmitCustomerForm(context.Background(), &dto.SubmitCustomerFormRequest{
				Token:    "definitely-not-a-real-token-000000",
				FormData: map[string]string{},
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsFormDataRequired(err))
			assert.False(t, businessflow.IsFormTokenInvalid(err))
		})

		t.Run("SubmitWithExpiredToken", func(t *testing.T) {
			expiringFlow := newFormFlow(testDB, time.Nanosecond)

			link, err := expiringFlow.GenerateFormLink(context.Background(), &dto.GenerateFormLinkRequest{}, metadata)
			require.NoError(t, err)
			time.Sleep(time.Millisecond)

			resp, err := expiringFlow.SubmitCustomerForm(context.Background(), &dto.SubmitCustomerFormRequest{
				Token: link.Token,
				FormData: map[string]string{
					"customer_name":    "Tom Baxter",
					"customer_address": "3 Mill Lane, Birmingham B33 8TH",
				},
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsFormTokenExpired(err))
		})

		t.Run("CleanupTokens", func(t *testing.T) {
			expiringFlow := newFormFlow(testDB, time.Nanosecond)
			_, err := expiringFlow.GenerateFormLink(context.Background(), &dto.GenerateFormLinkRequest{}, metadata)
			require.NoError(t, err)
			_, err = expiringFlow.GenerateFormLink(context.Background(), &dto.GenerateFormLinkRequest{}, metadata)
			require.NoError(t, err)
			time.Sleep(time.Millisecond)

			resp, err := expiringFlow.CleanupTokens(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 2, resp.CleanedTokens)
			assert.Equal(t, 0, resp.RemainingTokens)
		})

		t.Run("LinkFormSubmission", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			submission, err := fixtures.CreateTestFormSubmission(nil, models.FormSourceScan)
			require.NoError(t, err)

			resp, err := formFlow.LinkFormSubmission(context.Background(), submission.ID, &dto.LinkFormSubmissionRequest{
				CustomerID: customer.ID,
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp.Submission.CustomerID)
			assert.Equal(t, customer.ID, *resp.Submission.CustomerID)
		})

		t.Run("ListUnlinkedSubmissions", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			_, err = fixtures.CreateTestFormSubmission(nil, models.FormSourceScan)
			require.NoError(t, err)
			_, err = fixtures.CreateTestFormSubmission(&customer.ID, models.FormSourceWeb)
			require.NoError(t, err)

			resp, err := formFlow.ListFormSubmissions(context.Background(), &dto.ListFormSubmissionsRequest{Unlinked: true})
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.Total)
			require.Len(t, resp.Submissions, 1)
			assert.Nil(t, resp.Submissions[0].CustomerID)
		})
	})
}
