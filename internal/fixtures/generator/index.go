package generator

import (
	"errors"
	"fmt"
)

var errNoApplications = errors.New("no applications to reference")

// ApplicationIndex maps application ids to their records. Dependent tables
// copy shared attributes through it instead of sampling them.
type ApplicationIndex struct {
	apps []Application
	ids  []string
	byID map[string]int
}

// NewApplicationIndex indexes apps by id, rejecting duplicates.
func NewApplicationIndex(apps []Application) (*ApplicationIndex, error) {
	ids := make([]string, 0, len(apps))
	byID := make(map[string]int, len(apps))
	for i, app := range apps {
		if _, ok := byID[app.ApplicationID]; ok {
			return nil, fmt.Errorf("duplicate application id %q", app.ApplicationID)
		}
		byID[app.ApplicationID] = i
		ids = append(ids, app.ApplicationID)
	}
	return &ApplicationIndex{apps: apps, ids: ids, byID: byID}, nil
}

// Len returns the number of indexed applications.
func (x *ApplicationIndex) Len() int {
	return len(x.apps)
}

// IDs returns the application ids in table order. The slice is shared and
// must not be modified.
func (x *ApplicationIndex) IDs() []string {
	return x.ids
}

// Lookup returns the application with the given id.
func (x *ApplicationIndex) Lookup(id string) (Application, bool) {
	i, ok := x.byID[id]
	if !ok {
		return Application{}, false
	}
	return x.apps[i], true
}

// lookup is Lookup that reports a missing id as an error.
func (x *ApplicationIndex) lookup(id string) (Application, error) {
	app, ok := x.Lookup(id)
	if !ok {
		return Application{}, fmt.Errorf("application %q not found", id)
	}
	return app, nil
}
