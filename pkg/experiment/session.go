package experiment

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies a single execution of an experiment. The Name doubles
// as the experiment directory name, so it carries a readable timestamp in
// front of the unique id.
type Session struct {
	ID   string
	Name string
}

func newSession() Session {
	id := uuid.New().String()
	return Session{
		ID:   id,
		Name: time.Now().Format("2006-01-02T15h04m05s_") + id,
	}
}
