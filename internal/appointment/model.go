package appointment

import (
	"time"

	"github.com/airtribe/meditrack/internal/patient"
	"github.com/airtribe/meditrack/internal/validate"
)

// Status is the closed appointment lifecycle. SCHEDULED is the initial
// state; COMPLETED and CANCELED are terminal.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// Appointment holds a direct reference to its patient; edits made through
// the patient registry are visible here.
type Appointment struct {
	ID          int64
	Patient     *patient.Patient
	ScheduledAt time.Time
	Status      Status
	Notes       string
}

func New(id int64, p *patient.Patient, scheduledAt time.Time) *Appointment {
	return &Appointment{
		ID:          id,
		Patient:     p,
		ScheduledAt: scheduledAt,
		Status:      StatusScheduled,
	}
}

// Valid is the composite validity predicate gating Ledger.Book: the patient
// must already have an assigned doctor and the date-time must be in the
// future.
func (a *Appointment) Valid() bool {
	return a != nil &&
		validate.Positive(a.ID) &&
		a.Patient != nil &&
		a.Patient.AssignedDoctor != nil &&
		validate.FutureTime(a.ScheduledAt)
}
