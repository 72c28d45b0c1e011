package doctor

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/airtribe/meditrack/internal/validate"
)

var ErrDuplicateID = errors.New("duplicate doctor id")

// Registry owns the in-memory set of doctors. It preserves insertion order
// across mutations; grouping and sorting are stable with respect to it.
// Not safe for concurrent use.
type Registry struct {
	log         zerolog.Logger
	allowDupIDs bool
	doctors     []*Doctor
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

// Add validates the doctor and appends it. The registry is unchanged when
// validation fails.
func (r *Registry) Add(d *Doctor) error {
	if !d.Valid() {
		return fmt.Errorf("invalid doctor data: %w", validate.ErrInvalidData)
	}
	if !r.allowDupIDs {
		if _, ok := r.FindByID(d.ID); ok {
			return fmt.Errorf("doctor %d: %w", d.ID, ErrDuplicateID)
		}
	}
	r.doctors = append(r.doctors, d)
	r.log.Debug().Int64("doctor_id", d.ID).Str("specialization", string(d.Specialization)).Msg("doctor added")
	return nil
}

// Remove deletes the first doctor with the given id and reports whether one
// was found.
func (r *Registry) Remove(id int64) bool {
	for i, d := range r.doctors {
		if d.ID == id {
			r.doctors = append(r.doctors[:i], r.doctors[i+1:]...)
			r.log.Debug().Int64("doctor_id", id).Msg("doctor removed")
			return true
		}
	}
	return false
}

// Update replaces every record carrying the id with the new record and
// reports whether any existed. It is a full replace, not a merge.
func (r *Registry) Update(id int64, updated *Doctor) bool {
	found := false
	for i, d := range r.doctors {
		if d.ID == id {
			r.doctors[i] = updated
			found = true
		}
	}
	if found {
		r.log.Debug().Int64("doctor_id", id).Msg("doctor updated")
	}
	return found
}

func (r *Registry) FindByID(id int64) (*Doctor, bool) {
	for _, d := range r.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// FindByName matches the name case-insensitively and returns all matches in
// registry order.
func (r *Registry) FindByName(name string) []*Doctor {
	return r.Filter(func(d *Doctor) bool {
		return strings.EqualFold(d.Name, name)
	})
}

func (r *Registry) BySpecialization(spec Specialization) []*Doctor {
	return r.Filter(func(d *Doctor) bool {
		return d.Specialization == spec
	})
}

func (r *Registry) ByAvailableDay(day time.Weekday) []*Doctor {
	return r.Filter(func(d *Doctor) bool {
		return d.AvailableOn(day)
	})
}

// Filter returns the doctors matching the predicate, in registry order.
func (r *Registry) Filter(pred func(*Doctor) bool) []*Doctor {
	var out []*Doctor
	for _, d := range r.doctors {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}

func (r *Registry) All() []*Doctor {
	out := make([]*Doctor, len(r.doctors))
	copy(out, r.doctors)
	return out
}

// AverageExperience returns the mean years of experience. The second return
// is false when the registry is empty.
func (r *Registry) AverageExperience() (float64, bool) {
	if len(r.doctors) == 0 {
		return 0, false
	}
	total := 0
	for _, d := range r.doctors {
		total += d.Experience
	}
	return float64(total) / float64(len(r.doctors)), true
}

func (r *Registry) GroupBySpecialization() map[Specialization][]*Doctor {
	groups := make(map[Specialization][]*Doctor)
	for _, d := range r.doctors {
		groups[d.Specialization] = append(groups[d.Specialization], d)
	}
	return groups
}

func (r *Registry) CountBySpecialization() map[Specialization]int {
	counts := make(map[Specialization]int)
	for _, d := range r.doctors {
		counts[d.Specialization]++
	}
	return counts
}

// TopByExperience returns the n most experienced doctors, ties broken by
// insertion order.
func (r *Registry) TopByExperience(n int) []*Doctor {
	if n <= 0 {
		return nil
	}
	sorted := r.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Experience > sorted[j].Experience
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
