package generator

import "fmt"

// GenerateMarketing returns TouchCount touches on applications sampled with
// replacement. An application may get any number of touches, including none.
func (g *Generator) GenerateMarketing(index *ApplicationIndex) ([]MarketingTouch, error) {
	if index.Len() == 0 {
		return nil, errNoApplications
	}
	touches := make([]MarketingTouch, 0, TouchCount)
	for i := 1; i <= TouchCount; i++ {
		app, err := index.lookup(g.sampleApplicationID(index))
		if err != nil {
			return nil, err
		}
		touch := MarketingTouch{
			MarketingTouchID: fmt.Sprintf(touchIDFormat, i),
			CustomerID:       app.CustomerID,
			ApplicationID:    app.ApplicationID,
		}
		touch.CampaignID = pick(g.rng, campaignIDs)
		touch.Channel = pick(g.rng, touchChannels)
		touch.Vendor = pick(g.rng, touchVendors)
		touch.ClickTimestamp = dayOffset(g.rng, 0, ActivityDays-1)
		touch.CostUSD = uniform(g.rng, TouchCostMin, TouchCostMax, 2)
		touches = append(touches, touch)
	}
	return touches, nil
}

// sampleApplicationID draws one application id with replacement.
func (g *Generator) sampleApplicationID(index *ApplicationIndex) string {
	ids := index.IDs()
	return ids[g.rng.Intn(len(ids))]
}
