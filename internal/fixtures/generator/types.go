package generator

import (
	"database/sql"
	"time"
)

// Application is a credit application, the root every other table references.
type Application struct {
	ApplicationID   string
	CustomerID      string
	CreatedAt       time.Time
	ProductType     string
	SourceSystem    string
	Status          string
	RequestedAmount float64
	TermMonths      int
	Channel         string
	Vendor          string
	ProviderID      string
	ServiceLine     string
	// ICD10Code is invalid when the application carries no diagnosis.
	ICD10Code sql.NullString
}

// Loan is the funded instance of at most one application.
type Loan struct {
	LoanID          string
	ApplicationID   string
	CustomerID      string
	FundedAt        time.Time
	PrincipalAmount float64
	InterestRate    float64
	TermMonths      int
	Status          string
	Vendor          string
}

// MarketingTouch is a paid marketing exposure tied to an application.
type MarketingTouch struct {
	MarketingTouchID string
	CustomerID       string
	ApplicationID    string
	CampaignID       string
	Channel          string
	Vendor           string
	ClickTimestamp   time.Time
	CostUSD          float64
}

// Event is a behavioral analytics event in the application funnel.
//
// SessionID is drawn independently of the application, so one session can
// span several applications and customers.
type Event struct {
	EventID        string
	CustomerID     string
	SessionID      string
	ApplicationID  string
	EventName      string
	EventTimestamp time.Time
	SourceSystem   string
	Device         string
	URLPath        string
}

// Dataset holds the four generated tables and the seed that produced them.
type Dataset struct {
	Seed         int64
	Applications []Application
	Loans        []Loan
	Marketing    []MarketingTouch
	Events       []Event
}
