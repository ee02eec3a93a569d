package generator

import "fmt"

// GenerateLoans funds LoanCount(index.Len()) distinct applications. Principal,
// term, vendor and customer are copied from the funded application.
func (g *Generator) GenerateLoans(index *ApplicationIndex) ([]Loan, error) {
	ids := index.IDs()
	count := LoanCount(len(ids))
	picks := sampleWithoutReplacement(g.rng, len(ids), count)

	loans := make([]Loan, 0, count)
	for i, p := range picks {
		app, err := index.lookup(ids[p])
		if err != nil {
			return nil, err
		}
		loans = append(loans, Loan{
			LoanID:          fmt.Sprintf(loanIDFormat, i+1),
			ApplicationID:   app.ApplicationID,
			CustomerID:      app.CustomerID,
			FundedAt:        dayOffset(g.rng, FundingMinDay, FundingMaxDay),
			PrincipalAmount: app.RequestedAmount,
			InterestRate:    uniform(g.rng, InterestRateMin, InterestRateMax, 3),
			TermMonths:      app.TermMonths,
			Status:          pickWeighted(g.rng, loanStatuses),
			Vendor:          app.Vendor,
		})
	}
	return loans, nil
}
