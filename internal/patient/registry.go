package patient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/airtribe/meditrack/internal/doctor"
	"github.com/airtribe/meditrack/internal/validate"
)

var ErrDuplicateID = errors.New("duplicate patient id")

// Stats is the registry-wide patient count breakdown.
type Stats struct {
	Total    int
	Active   int
	Inactive int
}

// Registry owns the in-memory set of patients in insertion order.
// Not safe for concurrent use.
type Registry struct {
	log         zerolog.Logger
	allowDupIDs bool
	patients    []*Patient
}

type Option func(*Registry)

// AllowDuplicateIDs disables the uniqueness check on Add, preserving the
// permissive behavior of earlier versions for compatibility testing.
func AllowDuplicateIDs() Option {
	return func(r *Registry) { r.allowDupIDs = true }
}

func NewRegistry(log zerolog.Logger, opts ...Option) *Registry {
	r := &Registry{log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add validates the patient and appends it. The registry is unchanged when
// validation fails.
func (r *Registry) Add(p *Patient) error {
	if !p.Valid() {
		return fmt.Errorf("invalid patient data: %w", validate.ErrInvalidData)
	}
	if !r.allowDupIDs {
		if _, ok := r.FindByID(p.ID); ok {
			return fmt.Errorf("patient %d: %w", p.ID, ErrDuplicateID)
		}
	}
	r.patients = append(r.patients, p)
	r.log.Debug().Int64("patient_id", p.ID).Str("mrn", p.MedicalRecordNumber).Msg("patient registered")
	return nil
}

// Remove deletes the first patient with the given id and reports whether one
// was found.
func (r *Registry) Remove(id int64) bool {
	for i, p := range r.patients {
		if p.ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			r.log.Debug().Int64("patient_id", id).Msg("patient removed")
			return true
		}
	}
	return false
}

// Update replaces every record carrying the id with the new record and
// reports whether any existed.
func (r *Registry) Update(id int64, updated *Patient) bool {
	found := false
	for i, p := range r.patients {
		if p.ID == id {
			r.patients[i] = updated
			found = true
		}
	}
	if found {
		r.log.Debug().Int64("patient_id", id).Msg("patient updated")
	}
	return found
}

func (r *Registry) FindByID(id int64) (*Patient, bool) {
	for _, p := range r.patients {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// FindByName matches the person name case-insensitively.
func (r *Registry) FindByName(name string) []*Patient {
	return r.Filter(func(p *Patient) bool {
		return p.Person != nil && strings.EqualFold(p.Person.Name, name)
	})
}

// AssignDoctor sets the patient's single assigned doctor and reports whether
// the patient existed. The doctor is not checked against any registry; a nil
// doctor clears the assignment.
func (r *Registry) AssignDoctor(patientID int64, d *doctor.Doctor) bool {
	p, ok := r.FindByID(patientID)
	if !ok {
		return false
	}
	p.AssignedDoctor = d
	if d == nil {
		r.log.Debug().Int64("patient_id", patientID).Msg("doctor unassigned")
	} else {
		r.log.Debug().Int64("patient_id", patientID).Int64("doctor_id", d.ID).Msg("doctor assigned")
	}
	return true
}

// Deactivate flips the active flag off and reports whether the patient
// existed.
func (r *Registry) Deactivate(patientID int64) bool {
	p, ok := r.FindByID(patientID)
	if !ok {
		return false
	}
	p.Active = false
	r.log.Debug().Int64("patient_id", patientID).Msg("patient deactivated")
	return true
}

func (r *Registry) Active() []*Patient {
	return r.Filter(func(p *Patient) bool { return p.Active })
}

// ByAgeRange filters on the embedded person age, bounds inclusive.
func (r *Registry) ByAgeRange(minAge, maxAge int) []*Patient {
	return r.Filter(func(p *Patient) bool {
		return p.Person != nil && p.Person.Age >= minAge && p.Person.Age <= maxAge
	})
}

// Filter returns the patients matching the predicate, in registry order.
func (r *Registry) Filter(pred func(*Patient) bool) []*Patient {
	var out []*Patient
	for _, p := range r.patients {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func (r *Registry) All() []*Patient {
	out := make([]*Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

func (r *Registry) Statistics() Stats {
	s := Stats{Total: len(r.patients)}
	for _, p := range r.patients {
		if p.Active {
			s.Active++
		}
	}
	s.Inactive = s.Total - s.Active
	return s
}
