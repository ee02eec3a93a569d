package generator

import (
	"database/sql"
	"fmt"
)

// GenerateApplications returns ApplicationCount applications with sequential
// ids APP_00001 onward. Every other attribute is drawn independently.
func (g *Generator) GenerateApplications() []Application {
	apps := make([]Application, 0, ApplicationCount)
	for i := 1; i <= ApplicationCount; i++ {
		apps = append(apps, g.newApplication(i))
	}
	return apps
}

func (g *Generator) newApplication(seq int) Application {
	app := Application{
		ApplicationID: fmt.Sprintf(applicationIDFormat, seq),
		CustomerID:    fmt.Sprintf(customerIDFormat, randomRange(g.rng, 1, CustomerPoolSize)),
		CreatedAt:     dayOffset(g.rng, 0, ActivityDays-1),
	}
	app.ProductType = pick(g.rng, productTypes)
	app.SourceSystem = pick(g.rng, sourceSystems)
	app.Status = pickWeighted(g.rng, applicationStatuses)
	app.RequestedAmount = uniform(g.rng, RequestedAmountMin, RequestedAmountMax, 2)
	app.TermMonths = pick(g.rng, termMonths)
	app.Channel = pick(g.rng, channels)
	app.Vendor = pick(g.rng, vendors)
	app.ProviderID = pick(g.rng, providerIDs)
	app.ServiceLine = pick(g.rng, serviceLines)
	if code := pickWeighted(g.rng, diagnosisCodes); code != "" {
		app.ICD10Code = sql.NullString{String: code, Valid: true}
	}
	return app
}
