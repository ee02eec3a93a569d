package generator

import "fmt"

// GenerateEvents returns EventCount funnel events on applications sampled with
// replacement. Sessions come from their own pool and are not tied to the
// application.
func (g *Generator) GenerateEvents(index *ApplicationIndex) ([]Event, error) {
	if index.Len() == 0 {
		return nil, errNoApplications
	}
	events := make([]Event, 0, EventCount)
	for i := 1; i <= EventCount; i++ {
		app, err := index.lookup(g.sampleApplicationID(index))
		if err != nil {
			return nil, err
		}
		ev := Event{
			EventID:       fmt.Sprintf(eventIDFormat, i),
			CustomerID:    app.CustomerID,
			ApplicationID: app.ApplicationID,
		}
		ev.SessionID = fmt.Sprintf(sessionIDFormat, randomRange(g.rng, 1, SessionPoolSize))
		ev.EventName = pickWeighted(g.rng, funnelSteps)
		ev.EventTimestamp = dayOffset(g.rng, 0, ActivityDays-1)
		ev.SourceSystem = pick(g.rng, eventSources)
		ev.Device = pick(g.rng, devices)
		ev.URLPath = pick(g.rng, urlPaths)
		events = append(events, ev)
	}
	return events, nil
}
