package billing

import (
	"time"

	"github.com/airtribe/meditrack/internal/appointment"
	"github.com/airtribe/meditrack/internal/validate"
)

// Status is the closed bill lifecycle. PENDING is the initial state; PAID is
// reversible back to PENDING through a payment cancellation.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

// Bill is tied to exactly one appointment by direct reference. PaymentDate
// is set when the bill is paid and cleared when the payment is canceled.
type Bill struct {
	ID          int64
	Appointment *appointment.Appointment
	Amount      float64
	Status      Status
	CreatedAt   time.Time
	PaymentDate *time.Time
	Notes       string
}

func New(id int64, a *appointment.Appointment, amount float64) *Bill {
	return &Bill{
		ID:          id,
		Appointment: a,
		Amount:      amount,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
}

func (b *Bill) Paid() bool {
	return b.Status == StatusPaid
}

// Valid is the composite validity predicate gating Ledger.Create: the
// appointment chain down to the assigned doctor must be populated and the
// amount positive.
func (b *Bill) Valid() bool {
	return b != nil &&
		validate.Positive(b.ID) &&
		b.Appointment != nil &&
		b.Appointment.Patient != nil &&
		b.Appointment.Patient.AssignedDoctor != nil &&
		b.Appointment.Status != "" &&
		validate.Positive(b.Amount)
}
