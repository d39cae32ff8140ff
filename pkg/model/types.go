package model

import (
	"fmt"
	"time"
)

// Contributor identifies the author of a commit
type Contributor struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

func (c Contributor) String() string {
	if c.Email == "" {
		return c.Name
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

// Anonymous is the identity recorded when no acting user was set
var Anonymous = Contributor{Name: "anonymous"}

// DefaultMessage is recorded when a commit carries no message
const DefaultMessage = "There was no commit message specified."

// CommitMeta carries the authorship metadata recorded with one commit:
// the acting user, the commit message, and the commit's wall clock
// expressed as epoch seconds plus the author's UTC offset in seconds.
type CommitMeta struct {
	Contributor Contributor `json:"contributor" yaml:"contributor"`
	Message     string      `json:"message,omitempty" yaml:"message,omitempty"`
	Timestamp   int64       `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	TzOffset    int         `json:"tz_offset,omitempty" yaml:"tz_offset,omitempty"`
}

// WithDefaults fills the anonymous contributor, the placeholder message
// and the current local time into unset fields.
func (m CommitMeta) WithDefaults() CommitMeta {
	if m.Contributor == (Contributor{}) {
		m.Contributor = Anonymous
	}
	if m.Message == "" {
		m.Message = DefaultMessage
	}
	if m.Timestamp == 0 {
		now := time.Now()
		_, offset := now.Zone()
		m.Timestamp = now.Unix()
		m.TzOffset = -offset
	}
	return m
}
