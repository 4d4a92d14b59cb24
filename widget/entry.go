package widget

import (
	"fmt"
	"time"
)

// Entry is a single rendering instant.
type Entry struct {
	Date time.Time
}

// Configuration is the user-selected widget configuration.
// Providers accept it but nothing in rendering reads it.
type Configuration struct {
	City string
}

// PolicyKind identifies when the host should ask for the next timeline.
type PolicyKind int

const (
	PolicyAtEnd PolicyKind = iota // after the last entry's window
	PolicyNever                   // never reload
	PolicyAfter                   // at Policy.Date
)

// Policy is a timeline refresh policy.
type Policy struct {
	Kind PolicyKind
	Date time.Time // only for PolicyAfter
}

var (
	AtEnd = Policy{Kind: PolicyAtEnd}
	Never = Policy{Kind: PolicyNever}
)

// After returns a policy that reloads at t.
func After(t time.Time) Policy {
	return Policy{Kind: PolicyAfter, Date: t}
}

func (p Policy) String() string {
	switch p.Kind {
	case PolicyAtEnd:
		return "atEnd"
	case PolicyNever:
		return "never"
	case PolicyAfter:
		return "after(" + p.Date.Format(time.RFC3339) + ")"
	}
	return fmt.Sprintf("Policy(%d)", int(p.Kind))
}

// Timeline is an ordered batch of entries plus its refresh policy.
type Timeline struct {
	Entries []Entry
	Policy  Policy
}

// Validate reports the first entry that goes back in time.
func (t Timeline) Validate() error {
	for i := 1; i < len(t.Entries); i++ {
		if t.Entries[i].Date.Before(t.Entries[i-1].Date) {
			return fmt.Errorf("timeline entry %d (%s) precedes entry %d (%s)",
				i, t.Entries[i].Date.Format(time.RFC3339),
				i-1, t.Entries[i-1].Date.Format(time.RFC3339))
		}
	}
	return nil
}

// ReloadAt returns when the host should request the next timeline.
// ok is false for PolicyNever. A zero time with ok means the window is
// unknown and the host picks the delay.
//
// For PolicyAtEnd the last entry is shown for as long as the gap before it,
// so the reload lands one spacing after the last entry. Fewer than two
// entries give no spacing.
func (t Timeline) ReloadAt() (at time.Time, ok bool) {
	switch t.Policy.Kind {
	case PolicyNever:
		return time.Time{}, false
	case PolicyAfter:
		return t.Policy.Date, true
	}

	n := len(t.Entries)
	if n < 2 {
		return time.Time{}, true
	}
	last := t.Entries[n-1].Date
	return last.Add(last.Sub(t.Entries[n-2].Date)), true
}
