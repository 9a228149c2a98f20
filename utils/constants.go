package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour

	// FormTokenTTL is the time-to-live for single-use customer form tokens (24 hours)
	FormTokenTTL = 24 * time.Hour

	// FormTokenLength is the number of characters in a generated form token
	FormTokenLength = 32
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Domain constants
const (
	// JobReferencePrefix prefixes every generated job reference
	JobReferencePrefix = "AZT"

	// CustomerStatusActive is the default customer status
	CustomerStatusActive = "Active"

	// CustomerStatusNewLead is the status assigned to customers created from public form submissions
	CustomerStatusNewLead = "New Lead"

	// CheckboxTick is the canonical value for a ticked checkbox field
	CheckboxTick = "✓"
)
