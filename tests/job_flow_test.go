// Package tests contains integration tests for job workflows
package tests

import (
	"context"
	"strings"
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

func TestJobFlow(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		jobRepo := repository.NewJobRepository(testDB.DB)
		customerRepo := repository.NewCustomerRepository(testDB.DB)

		jobFlow := businessflow.NewJobFlow(jobRepo, customerRepo, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("CreateJobGeneratesReference", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			resp, err := jobFlow.CreateJob(context.Background(), &dto.CreateJobRequest{
				CustomerID: customer.ID,
				Name:       "Smith kitchen refit",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.True(t, strings.HasPrefix(resp.Job.Reference, utils.JobReferencePrefix+"-"))
			assert.Equal(t, models.JobStageLead, resp.Job.Stage)
			assert.Equal(t, models.JobPriorityMedium, resp.Job.Priority)
		})

		t.Run("CreateJobCustomerNotFound", func(t *testing.T) {
			resp, err := jobFlow.CreateJob(context.Background(), &dto.CreateJobRequest{
				CustomerID: 999999,
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsCustomerNotFound(err))
		})

		t.Run("CreateJobReferenceConflict", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			existing, err := fixtures.CreateTestJob(customer.ID, models.JobStageLead)
			require.NoError(t, err)

			resp, err := jobFlow.CreateJob(context.Background(), &dto.CreateJobRequest{
				CustomerID: customer.ID,
				Reference:  &existing.Reference,
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsJobReferenceConflict(err))
		})

		t.Run("UpdateJobPartialKeepsOtherFields", func(t *testing.T) {
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(customer.ID, models.JobStageLead)
			require.NoError(t, err)

			stage := models.JobStageSold
			resp, err := jobFlow.UpdateJob(context.Background(), job.ID, &dto.UpdateJobRequest{
				Stage: &stage,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.JobStageSold, resp.Job.Stage)
			assert.Equal(t, job.Reference, resp.Job.Reference)
			assert.Equal(t, job.Type, resp.Job.Type)
		})

		t.Run("UpdateJobNotFound", func(t *testing.T) {
			name := "Renamed"
			resp, err := jobFlow.UpdateJob(context.Background(), 999999, &dto.UpdateJobRequest{
				Name: &name,
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsJobNotFound(err))
		})

		t.Run("ListAvailableJobsOnlyPostSaleStages", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			_, err = fixtures.CreateTestJob(customer.ID, models.JobStageLead)
			require.NoError(t, err)
			_, err = fixtures.CreateTestJob(customer.ID, models.JobStageProduction)
			require.NoError(t, err)
			_, err = fixtures.CreateTestJob(customer.ID, models.JobStageCompleted)
			require.NoError(t, err)

			resp, err := jobFlow.ListAvailableJobs(context.Background())
			require.NoError(t, err)
			require.Len(t, resp.Jobs, 1)
			assert.Equal(t, int64(1), resp.Total)
			assert.Equal(t, models.JobStageProduction, resp.Jobs[0].Stage)
		})

		t.Run("PipelineMergesJobsAndBareCustomers", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			withJob, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)
			job, err := fixtures.CreateTestJob(withJob.ID, models.JobStageQuoted)
			require.NoError(t, err)
			bare, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			resp, err := jobFlow.GetPipeline(context.Background())
			require.NoError(t, err)
			require.Len(t, resp.Items, 2)

			byKind := map[string]dto.PipelineItem{}
			for _, item := range resp.Items {
				byKind[item.Kind] = item
			}

			jobItem := byKind["job"]
			require.NotNil(t, jobItem.JobID)
			assert.Equal(t, job.ID, *jobItem.JobID)
			assert.Equal(t, withJob.Name, jobItem.CustomerName)
			assert.Equal(t, withJob.Postcode, jobItem.Postcode)

			customerItem := byKind["customer"]
			assert.Equal(t, bare.ID, customerItem.CustomerID)
			assert.Nil(t, customerItem.JobID)
		})

		t.Run("DeleteJobNotFound", func(t *testing.T) {
			resp, err := jobFlow.DeleteJob(context.Background(), 999999, metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsJobNotFound(err))
		})
	})
}
