package appointment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/airtribe/meditrack/internal/doctor"
	"github.com/airtribe/meditrack/internal/patient"
	"github.com/airtribe/meditrack/internal/validate"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDuplicateID         = errors.New("duplicate appointment id")
)

// Stats is the ledger-wide appointment count breakdown.
type Stats struct {
	Total     int
	Scheduled int
	Completed int
	Canceled  int
}

// Ledger owns the in-memory set of appointments in booking order.
// Appointments are never physically deleted; cancellation is a status
// change. Not safe for concurrent use.
type Ledger struct {
	log          zerolog.Logger
	allowDupIDs  bool
	appointments []*Appointment
}

type Option func(*Ledger)

// AllowDuplicateIDs disables the uniqueness check on Book, preserving the
// permissive behavior of earlier versions for compatibility testing.
func AllowDuplicateIDs() Option {
	return func(l *Ledger) { l.allowDupIDs = true }
}

func NewLedger(log zerolog.Logger, opts ...Option) *Ledger {
	l := &Ledger{log: log}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Book validates the appointment and appends it. The ledger is unchanged
// when validation fails.
func (l *Ledger) Book(a *Appointment) error {
	if !a.Valid() {
		return fmt.Errorf("invalid appointment data: %w", validate.ErrInvalidData)
	}
	if !l.allowDupIDs {
		if _, ok := l.FindByID(a.ID); ok {
			return fmt.Errorf("appointment %d: %w", a.ID, ErrDuplicateID)
		}
	}
	l.appointments = append(l.appointments, a)
	l.log.Debug().Int64("appointment_id", a.ID).Time("scheduled_at", a.ScheduledAt).Msg("appointment booked")
	return nil
}

// Cancel sets the status to CANCELED unconditionally. Re-canceling an
// already terminal appointment is a no-op overwrite, never an error.
func (l *Ledger) Cancel(id int64) error {
	a, ok := l.FindByID(id)
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, ErrAppointmentNotFound)
	}
	if a.Status != StatusScheduled {
		l.log.Info().Int64("appointment_id", id).Str("status", string(a.Status)).Msg("canceling non-scheduled appointment")
	}
	a.Status = StatusCanceled
	l.log.Debug().Int64("appointment_id", id).Msg("appointment canceled")
	return nil
}

// Complete sets the status to COMPLETED, with the same lookup semantics as
// Cancel.
func (l *Ledger) Complete(id int64) error {
	a, ok := l.FindByID(id)
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, ErrAppointmentNotFound)
	}
	a.Status = StatusCompleted
	l.log.Debug().Int64("appointment_id", id).Msg("appointment completed")
	return nil
}

// Update overwrites the date-time and notes regardless of current status.
func (l *Ledger) Update(id int64, newDateTime time.Time, newNotes string) error {
	a, ok := l.FindByID(id)
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, ErrAppointmentNotFound)
	}
	a.ScheduledAt = newDateTime
	a.Notes = newNotes
	l.log.Debug().Int64("appointment_id", id).Time("scheduled_at", newDateTime).Msg("appointment updated")
	return nil
}

func (l *Ledger) FindByID(id int64) (*Appointment, bool) {
	for _, a := range l.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// FindByPatientName matches the patient's person name case-insensitively.
func (l *Ledger) FindByPatientName(name string) []*Appointment {
	return l.Filter(func(a *Appointment) bool {
		return a.Patient != nil && a.Patient.Person != nil &&
			strings.EqualFold(a.Patient.Person.Name, name)
	})
}

func (l *Ledger) ByPatient(p *patient.Patient) []*Appointment {
	if p == nil {
		return nil
	}
	return l.Filter(func(a *Appointment) bool {
		return a.Patient != nil && a.Patient.ID == p.ID
	})
}

// ByDoctor resolves through each appointment's patient's assigned-doctor
// reference.
func (l *Ledger) ByDoctor(d *doctor.Doctor) []*Appointment {
	if d == nil {
		return nil
	}
	return l.Filter(func(a *Appointment) bool {
		return a.Patient != nil && a.Patient.AssignedDoctor != nil &&
			a.Patient.AssignedDoctor.ID == d.ID
	})
}

func (l *Ledger) ByStatus(status Status) []*Appointment {
	return l.Filter(func(a *Appointment) bool { return a.Status == status })
}

// ByDate returns the appointments falling on the given calendar date.
func (l *Ledger) ByDate(date time.Time) []*Appointment {
	return l.Filter(func(a *Appointment) bool {
		return sameDate(a.ScheduledAt, date)
	})
}

// Upcoming returns the future SCHEDULED appointments sorted ascending by
// date-time.
func (l *Ledger) Upcoming() []*Appointment {
	now := time.Now()
	out := l.Filter(func(a *Appointment) bool {
		return a.Status == StatusScheduled && a.ScheduledAt.After(now)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out
}

// Filter returns the appointments matching the predicate, in booking order.
func (l *Ledger) Filter(pred func(*Appointment) bool) []*Appointment {
	var out []*Appointment
	for _, a := range l.appointments {
		if pred(a) {
			out = append(out, a)
		}
	}
	return out
}

func (l *Ledger) All() []*Appointment {
	out := make([]*Appointment, len(l.appointments))
	copy(out, l.appointments)
	return out
}

func (l *Ledger) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, a := range l.appointments {
		counts[a.Status]++
	}
	return counts
}

// GroupByDate groups by calendar date, keyed by midnight in the
// appointment's own location. Booking order is preserved within each group.
func (l *Ledger) GroupByDate() map[time.Time][]*Appointment {
	groups := make(map[time.Time][]*Appointment)
	for _, a := range l.appointments {
		key := dateOnly(a.ScheduledAt)
		groups[key] = append(groups[key], a)
	}
	return groups
}

func (l *Ledger) Statistics() Stats {
	s := Stats{Total: len(l.appointments)}
	for _, a := range l.appointments {
		switch a.Status {
		case StatusScheduled:
			s.Scheduled++
		case StatusCompleted:
			s.Completed++
		case StatusCanceled:
			s.Canceled++
		}
	}
	return s
}

// HasConflict reports whether the doctor already has a SCHEDULED appointment
// whose interval overlaps [start, start+duration). Intervals are half-open,
// so back-to-back appointments do not conflict.
func (l *Ledger) HasConflict(d *doctor.Doctor, start time.Time, durationMinutes int) bool {
	if d == nil {
		return false
	}
	duration := time.Duration(durationMinutes) * time.Minute
	end := start.Add(duration)
	for _, a := range l.appointments {
		if a.Status != StatusScheduled {
			continue
		}
		if a.Patient == nil || a.Patient.AssignedDoctor == nil || a.Patient.AssignedDoctor.ID != d.ID {
			continue
		}
		existingStart := a.ScheduledAt
		existingEnd := existingStart.Add(duration)
		if start.Before(existingEnd) && end.After(existingStart) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
