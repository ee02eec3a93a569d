package generator

import "time"

// Table sizes and value ranges. They are fixed so that a given seed always
// yields the same fixtures.
const (
	ApplicationCount = 500
	LoanRatio        = 0.5
	TouchCount       = 800
	EventCount       = 4000

	// CustomerPoolSize is the number of synthetic customers applications are
	// spread across; collisions are intended. Ids are drawn from
	// [1, CustomerPoolSize]: the nominal pool of 200 has an exclusive upper
	// bound, so CUST_0200 never appears.
	CustomerPoolSize = 199
	// SessionPoolSize is the number of synthetic analytics sessions. As with
	// customers, the nominal pool of 2000 excludes its upper bound, so ids
	// run SESS_00001 through SESS_01999.
	SessionPoolSize = 1999

	// ActivityDays bounds created/click/event day offsets to [0, ActivityDays).
	ActivityDays = 365
	// Loans fund between FundingMinDay and FundingMaxDay days after StartDate.
	FundingMinDay = 10
	FundingMaxDay = 399

	RequestedAmountMin = 200.0
	RequestedAmountMax = 8000.0
	InterestRateMin    = 0.05
	InterestRateMax    = 0.24
	TouchCostMin       = 1.0
	TouchCostMax       = 15.0
)

const (
	applicationIDFormat = "APP_%05d"
	customerIDFormat    = "CUST_%04d"
	loanIDFormat        = "LOAN_%05d"
	touchIDFormat       = "MT_%05d"
	eventIDFormat       = "EV_%06d"
	sessionIDFormat     = "SESS_%05d"
)

// StartDate anchors every generated timestamp.
var StartDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// LoanCount returns the number of loans funded from applicationCount
// applications.
func LoanCount(applicationCount int) int {
	return int(float64(applicationCount) * LoanRatio)
}

var (
	productTypes  = []string{"Installment", "BNPL", "CareCredit-like"}
	sourceSystems = []string{"web", "mobile", "call_center"}
	termMonths    = []int{6, 12, 18, 24, 36}
	channels      = []string{"web", "provider_referral", "affiliate", "paid_search", "paid_social"}
	vendors       = []string{"VendorA", "VendorB", "VendorC"}
	providerIDs   = []string{"Prov1", "Prov2", "Prov3", "Prov4"}
	serviceLines  = []string{"Cardiology", "Orthopedics", "Dermatology", "Oncology"}
	campaignIDs   = []string{"Camp1", "Camp2", "Camp3"}
	touchChannels = []string{"paid_search", "paid_social", "provider_referral", "affiliate"}
	touchVendors  = []string{"Google", "Meta", "ProviderNetwork"}
	eventSources  = []string{"web", "mobile", "heap", "amplitude"}
	devices       = []string{"desktop", "mobile"}
	urlPaths      = []string{"/apply", "/apply/step1", "/apply/step2"}
)

var applicationStatuses = []weighted[string]{
	{value: "submitted", weight: 0.3},
	{value: "approved", weight: 0.4},
	{value: "rejected", weight: 0.2},
	{value: "withdrawn", weight: 0.1},
}

// An empty code is the absent diagnosis.
var diagnosisCodes = []weighted[string]{
	{value: "I10", weight: 0.25},
	{value: "E11", weight: 0.25},
	{value: "M17", weight: 0.2},
	{value: "L40", weight: 0.2},
	{value: "", weight: 0.1},
}

var loanStatuses = []weighted[string]{
	{value: "active", weight: 0.6},
	{value: "charged_off", weight: 0.15},
	{value: "paid_off", weight: 0.25},
}

// Funnel steps in the order a visitor reaches them.
var funnelSteps = []weighted[string]{
	{value: "page_view_application", weight: 0.4},
	{value: "application_started", weight: 0.35},
	{value: "application_submitted", weight: 0.25},
}
