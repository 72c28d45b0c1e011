package billing

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/airtribe/meditrack/internal/validate"
)

var (
	ErrBillNotFound = errors.New("bill not found")
	ErrDuplicateID  = errors.New("duplicate bill id")
)

// Stats aggregates bill amounts. Average is zero when the ledger is empty.
type Stats struct {
	Total   float64
	Paid    float64
	Pending float64
	Average float64
}

// Ledger owns the in-memory set of bills in creation order.
// Not safe for concurrent use.
type Ledger struct {
	log         zerolog.Logger
	allowDupIDs bool
	bills       []*Bill
}

type Option func(*Ledger)

// AllowDuplicateIDs disables the uniqueness check on Create, preserving the
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

// Create validates the bill and appends it. The ledger is unchanged when
// validation fails.
func (l *Ledger) Create(b *Bill) error {
	if !b.Valid() {
		return fmt.Errorf("invalid bill data: %w", validate.ErrInvalidData)
	}
	if !l.allowDupIDs {
		if _, ok := l.FindByID(b.ID); ok {
			return fmt.Errorf("bill %d: %w", b.ID, ErrDuplicateID)
		}
	}
	l.bills = append(l.bills, b)
	l.log.Debug().Int64("bill_id", b.ID).Float64("amount", b.Amount).Msg("bill created")
	return nil
}

func (l *Ledger) FindByID(id int64) (*Bill, bool) {
	for _, b := range l.bills {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func (l *Ledger) All() []*Bill {
	out := make([]*Bill, len(l.bills))
	copy(out, l.bills)
	return out
}

// Pay flips a PENDING bill to PAID and stamps the payment date. Paying an
// already settled bill is a logged no-op, never an error.
func (l *Ledger) Pay(id int64) error {
	b, ok := l.FindByID(id)
	if !ok {
		return fmt.Errorf("bill %d: %w", id, ErrBillNotFound)
	}
	if b.Status != StatusPending {
		l.log.Info().Int64("bill_id", id).Str("status", string(b.Status)).Msg("bill already settled, payment skipped")
		return nil
	}
	now := time.Now()
	b.Status = StatusPaid
	b.PaymentDate = &now
	l.log.Debug().Int64("bill_id", id).Float64("amount", b.Amount).Msg("bill paid")
	return nil
}

// CancelPayment reverses a PAID bill back to PENDING and clears the payment
// date. Anything else is a logged no-op.
func (l *Ledger) CancelPayment(id int64) error {
	b, ok := l.FindByID(id)
	if !ok {
		return fmt.Errorf("bill %d: %w", id, ErrBillNotFound)
	}
	if b.Status != StatusPaid {
		l.log.Info().Int64("bill_id", id).Str("status", string(b.Status)).Msg("bill not paid, cancellation skipped")
		return nil
	}
	b.Status = StatusPending
	b.PaymentDate = nil
	l.log.Debug().Int64("bill_id", id).Msg("payment canceled")
	return nil
}

// IsPaid reports whether the bill exists and is PAID.
func (l *Ledger) IsPaid(id int64) bool {
	b, ok := l.FindByID(id)
	return ok && b.Paid()
}

func (l *Ledger) ByStatus(status Status) []*Bill {
	return l.Filter(func(b *Bill) bool { return b.Status == status })
}

func (l *Ledger) TotalByStatus(status Status) float64 {
	total := 0.0
	for _, b := range l.bills {
		if b.Status == status {
			total += b.Amount
		}
	}
	return total
}

func (l *Ledger) Statistics() Stats {
	s := Stats{
		Paid:    l.TotalByStatus(StatusPaid),
		Pending: l.TotalByStatus(StatusPending),
	}
	for _, b := range l.bills {
		s.Total += b.Amount
	}
	if len(l.bills) > 0 {
		s.Average = s.Total / float64(len(l.bills))
	}
	return s
}

func (l *Ledger) GroupByStatus() map[Status][]*Bill {
	groups := make(map[Status][]*Bill)
	for _, b := range l.bills {
		groups[b.Status] = append(groups[b.Status], b)
	}
	return groups
}

// UnpaidByAmount returns the non-PAID bills sorted by amount descending,
// ties broken by creation order.
func (l *Ledger) UnpaidByAmount() []*Bill {
	out := l.Filter(func(b *Bill) bool { return b.Status != StatusPaid })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

// Filter returns the bills matching the predicate, in creation order.
func (l *Ledger) Filter(pred func(*Bill) bool) []*Bill {
	var out []*Bill
	for _, b := range l.bills {
		if pred(b) {
			out = append(out, b)
		}
	}
	return out
}
