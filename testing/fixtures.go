package testing

import (
	"fmt"
	"math/rand"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates an active staff user with a known password ("TestPass123!")
func (tf *TestFixtures) CreateTestUser(role string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        fmt.Sprintf("staff.%d@aztec-interiors.co.uk", rand.Intn(10000000)),
		PasswordHash: string(hashedPassword),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     utils.ToPtr(true),
		IsVerified:   utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestCustomer creates a customer in the given stage with a UK-style address
func (tf *TestFixtures) CreateTestCustomer(stage string) (*models.Customer, error) {
	n := rand.Intn(10000000)

	customer := &models.Customer{
		Name:         fmt.Sprintf("Test Customer %d", n),
		Address:      "14 Larch Avenue, Solihull, B91 2QF",
		Phone:        fmt.Sprintf("07%09d", rand.Intn(900000000)+100000000),
		Email:        fmt.Sprintf("customer.%d@example.com", n),
		ContactMade:  models.ContactMadeNo,
		Stage:        stage,
		Status:       "Active",
		ProjectTypes: []string{"Kitchen"},
		CreatedBy:    "System",
	}

	if err := tf.DB.DB.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create test customer: %w", err)
	}

	return customer, nil
}

// CreateTestJob creates a job for the given customer. Reference and UUID are
// left to the model hooks unless the caller sets them afterwards.
func (tf *TestFixtures) CreateTestJob(customerID uint, stage string) (*models.Job, error) {
	job := &models.Job{
		CustomerID: customerID,
		Reference:  fmt.Sprintf("AZT-TEST-%07d", rand.Intn(10000000)),
		Name:       "Kitchen refit",
		Type:       "Kitchen",
		Stage:      stage,
		Priority:   models.JobPriorityMedium,
		Tags:       []string{},
	}

	if err := tf.DB.DB.Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create test job: %w", err)
	}

	return job, nil
}

// CreateTestQuotation creates a draft quotation with two line items
func (tf *TestFixtures) CreateTestQuotation(customerID uint, jobID *uint) (*models.Quotation, error) {
	quotation := &models.Quotation{
		CustomerID: customerID,
		JobID:      jobID,
		Total:      4250.00,
		Status:     models.QuotationStatusDraft,
		Items: []models.QuotationItem{
			{Item: "Base units", Description: utils.ToPtr("Shaker style, 6 units"), Color: utils.ToPtr("Sage"), Amount: 3100.00},
			{Item: "Worktop", Amount: 1150.00},
		},
	}

	if err := tf.DB.DB.Create(quotation).Error; err != nil {
		return nil, fmt.Errorf("failed to create test quotation: %w", err)
	}

	return quotation, nil
}

// CreateTestFormSubmission creates a structured form submission, optionally linked to a customer
func (tf *TestFixtures) CreateTestFormSubmission(customerID *uint, source string) (*models.FormSubmission, error) {
	submission := &models.FormSubmission{
		CustomerID: customerID,
		Source:     source,
		Data:       `{"customer_name":"Test Customer","address":"14 Larch Avenue, Solihull, B91 2QF","project_type":"Kitchen"}`,
	}

	if err := tf.DB.DB.Create(submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create test form submission: %w", err)
	}

	return submission, nil
}

// CreateTestFormData creates a raw customer form data record
func (tf *TestFixtures) CreateTestFormData(customerID uint, token string) (*models.CustomerFormData, error) {
	formData := &models.CustomerFormData{
		CustomerID: customerID,
		FormData:   `{"name":"Test Customer","address":"14 Larch Avenue, Solihull, B91 2QF"}`,
		TokenUsed:  token,
	}

	if err := tf.DB.DB.Create(formData).Error; err != nil {
		return nil, fmt.Errorf("failed to create test form data: %w", err)
	}

	return formData, nil
}

// CreateMultipleTestCustomers creates customers across the given stages
func (tf *TestFixtures) CreateMultipleTestCustomers(stages ...string) ([]*models.Customer, error) {
	var customers []*models.Customer
	for i, stage := range stages {
		customer, err := tf.CreateTestCustomer(stage)
		if err != nil {
			return nil, fmt.Errorf("failed to create customer %d: %w", i, err)
		}
		customers = append(customers, customer)
	}
	return customers, nil
}
