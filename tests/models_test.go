// Package tests contains integration tests for model hooks and defaults
package tests

import (
	"strings"
	"testing"
	"time"

	"github.com/aztec-interiors/fitflow/models"
	testingutil "github.com/aztec-interiors/fitflow/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJobReference(t *testing.T) {
	ref := models.GenerateJobReference(time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC))
	assert.Equal(t, "AZT-2025-0314-0905", ref)
}

func TestModelHooks(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		t.Run("CustomerDefaults", func(t *testing.T) {
			customer := models.Customer{
				Name:         "Hook Test",
				Address:      "5 Park Row, Leeds LS2 9AB",
				ProjectTypes: []string{},
			}
			require.NoError(t, testDB.DB.Create(&customer).Error)

			assert.NotEqual(t, uuid.Nil, customer.UUID)
			assert.Equal(t, "LS2 9AB", customer.Postcode)
			assert.False(t, customer.CreatedAt.IsZero())
			assert.False(t, customer.UpdatedAt.IsZero())
		})

		t.Run("CustomerKeepsExplicitPostcode", func(t *testing.T) {
			customer := models.Customer{
				Name:         "Hook Test",
				Address:      "5 Park Row, Leeds LS2 9AB",
				Postcode:     "M1 1AE",
				ProjectTypes: []string{},
			}
			require.NoError(t, testDB.DB.Create(&customer).Error)
			assert.Equal(t, "M1 1AE", customer.Postcode)
		})

		t.Run("JobGeneratesReference", func(t *testing.T) {
			fixtures := testingutil.NewTestFixtures(testDB)
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			job := models.Job{
				CustomerID: customer.ID,
				Type:       "Kitchen",
				Stage:      models.JobStageLead,
				Priority:   models.JobPriorityMedium,
				Tags:       []string{},
			}
			require.NoError(t, testDB.DB.Create(&job).Error)

			assert.NotEqual(t, uuid.Nil, job.UUID)
			assert.True(t, strings.HasPrefix(job.Reference, "AZT-"))
		})

		t.Run("QuotationCreatesItemsWithIt", func(t *testing.T) {
			fixtures := testingutil.NewTestFixtures(testDB)
			customer, err := fixtures.CreateTestCustomer("Lead")
			require.NoError(t, err)

			quotation := models.Quotation{
				CustomerID: customer.ID,
				Total:      500,
				Status:     models.QuotationStatusDraft,
				Items: []models.QuotationItem{
					{Item: "Worktop", Amount: 500},
				},
			}
			require.NoError(t, testDB.DB.Create(&quotation).Error)
			assert.NotEqual(t, uuid.Nil, quotation.UUID)
			require.Len(t, quotation.Items, 1)
			assert.Equal(t, quotation.ID, quotation.Items[0].QuotationID)
		})

		t.Run("FormSubmissionDefaults", func(t *testing.T) {
			submission := models.FormSubmission{
				Source: models.FormSourceScan,
				Data:   `{"customer_name":"Hook Test"}`,
			}
			require.NoError(t, testDB.DB.Create(&submission).Error)
			assert.NotEqual(t, uuid.Nil, submission.UUID)
			assert.Nil(t, submission.CustomerID)
			assert.False(t, submission.SubmittedAt.IsZero())
		})
	})
}

func TestUserFullName(t *testing.T) {
	user := models.User{FirstName: "Jane", LastName: "Smith"}
	assert.Equal(t, "Jane Smith", user.FullName())
}
