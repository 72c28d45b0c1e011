package doctor

import (
	"fmt"
	"time"

	"github.com/airtribe/meditrack/internal/validate"
)

// Specialization is the closed set of practice areas a doctor may have.
type Specialization string

const (
	Cardiology      Specialization = "CARDIOLOGY"
	Neurology       Specialization = "NEUROLOGY"
	Pediatrics      Specialization = "PEDIATRICS"
	Orthopedics     Specialization = "ORTHOPEDICS"
	Dermatology     Specialization = "DERMATOLOGY"
	Psychiatry      Specialization = "PSYCHIATRY"
	Ophthalmology   Specialization = "OPHTHALMOLOGY"
	GeneralMedicine Specialization = "GENERAL_MEDICINE"
)

func (s Specialization) IsValid() bool {
	switch s {
	case Cardiology, Neurology, Pediatrics, Orthopedics, Dermatology,
		Psychiatry, Ophthalmology, GeneralMedicine:
		return true
	}
	return false
}

// Specializations lists every valid specialization in a fixed order,
// for menus and seeding.
func Specializations() []Specialization {
	return []Specialization{
		Cardiology, Neurology, Pediatrics, Orthopedics, Dermatology,
		Psychiatry, Ophthalmology, GeneralMedicine,
	}
}

// TimeOfDay is a clock time without a date, used for working-hours windows.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Hour < o.Hour || (t.Hour == o.Hour && t.Minute < o.Minute)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Doctor is a registered practitioner. AvailableFrom before AvailableTo is
// expected but not enforced.
type Doctor struct {
	ID             int64
	Name           string
	Experience     int // years
	Specialization Specialization
	AvailableDays  map[time.Weekday]bool
	AvailableFrom  TimeOfDay
	AvailableTo    TimeOfDay
	CreatedAt      time.Time
}

func New(id int64, name string, experience int, spec Specialization, days []time.Weekday, from, to TimeOfDay) *Doctor {
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return &Doctor{
		ID:             id,
		Name:           name,
		Experience:     experience,
		Specialization: spec,
		AvailableDays:  set,
		AvailableFrom:  from,
		AvailableTo:    to,
		CreatedAt:      time.Now(),
	}
}

// AvailableOn reports whether the doctor works on the given weekday.
func (d *Doctor) AvailableOn(day time.Weekday) bool {
	return d.AvailableDays != nil && d.AvailableDays[day]
}

// Valid is the composite validity predicate gating Registry.Add.
func (d *Doctor) Valid() bool {
	return d != nil &&
		validate.Positive(d.ID) &&
		validate.NotEmpty(d.Name) &&
		validate.Positive(d.Experience) &&
		d.Specialization.IsValid()
}
