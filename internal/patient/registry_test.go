package patient

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtribe/meditrack/internal/doctor"
	"github.com/airtribe/meditrack/internal/validate"
)

func newPatient(id int64, name string, age int) *Patient {
	return New(id, NewPerson(id, name, age, "1234567890"), "MRN-001")
}

func testDoctor(id int64) *doctor.Doctor {
	return doctor.New(id, "Dr. A", 5, doctor.Cardiology,
		[]time.Weekday{time.Monday}, doctor.TimeOfDay{Hour: 9}, doctor.TimeOfDay{Hour: 17})
}

func TestAddRejectsInvalidPatient(t *testing.T) {
	tests := []struct {
		name string
		p    *Patient
	}{
		{"nil", nil},
		{"zero id", newPatient(0, "P", 30)},
		{"nil person", New(1, nil, "MRN-001")},
		{"empty name", newPatient2(1, "  ", 30, "1234567890", "MRN-001")},
		{"bad mobile", newPatient2(1, "P", 30, "12345", "MRN-001")},
		{"empty mrn", newPatient2(1, "P", 30, "1234567890", " ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(zerolog.Nop())
			err := r.Add(tt.p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, validate.ErrInvalidData))
			assert.Empty(t, r.All())
		})
	}
}

func newPatient2(id int64, name string, age int, mobile, mrn string) *Patient {
	return New(id, NewPerson(id, name, age, mobile), mrn)
}

func TestAddEnforcesUniqueIDs(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	require.NoError(t, r.Add(newPatient(1, "P1", 30)))

	err := r.Add(newPatient(1, "P2", 40))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))

	permissive := NewRegistry(zerolog.Nop(), AllowDuplicateIDs())
	require.NoError(t, permissive.Add(newPatient(1, "P1", 30)))
	require.NoError(t, permissive.Add(newPatient(1, "P2", 40)))
	assert.Len(t, permissive.All(), 2)
}

func TestNewPatientDefaults(t *testing.T) {
	p := newPatient(1, "P", 30)
	assert.True(t, p.Active)
	assert.Nil(t, p.AssignedDoctor)
	assert.False(t, p.RegisteredAt.IsZero())
}

func TestAssignDoctor(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	require.NoError(t, r.Add(newPatient(1, "P", 30)))

	d := testDoctor(7)
	assert.True(t, r.AssignDoctor(1, d))
	assert.False(t, r.AssignDoctor(99, d))

	p, ok := r.FindByID(1)
	require.True(t, ok)
	require.NotNil(t, p.AssignedDoctor)
	assert.Equal(t, int64(7), p.AssignedDoctor.ID)
}

func TestAssignDoctorNilClearsAssignment(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	require.NoError(t, r.Add(newPatient(1, "P", 30)))
	require.True(t, r.AssignDoctor(1, testDoctor(7)))

	assert.True(t, r.AssignDoctor(1, nil))
	p, ok := r.FindByID(1)
	require.True(t, ok)
	assert.Nil(t, p.AssignedDoctor)

	assert.False(t, r.AssignDoctor(99, nil))
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	require.NoError(t, r.Add(newPatient(1, "Alice Smith", 30)))
	require.NoError(t, r.Add(newPatient(2, "Bob Jones", 40)))

	matches := r.FindByName("ALICE SMITH")
	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].ID)
}

func TestRemoveAndUpdate(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	require.NoError(t, r.Add(newPatient(1, "P1", 30)))
	require.NoError(t, r.Add(newPatient(2, "P2", 40)))

	assert.True(t, r.Update(2, newPatient(2, "P2 Renamed", 41)))
	p, ok := r.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "P2 Renamed", p.Person.Name)

	assert.True(t, r.Remove(1))
	assert.False(t, r.Remove(1))
	assert.False(t, r.Update(1, newPatient(1, "P1", 30)))
}

func TestActiveAndStatistics(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	require.NoError(t, r.Add(newPatient(1, "P1", 30)))
	require.NoError(t, r.Add(newPatient(2, "P2", 40)))
	require.NoError(t, r.Add(newPatient(3, "P3", 50)))

	assert.True(t, r.Deactivate(2))
	assert.False(t, r.Deactivate(99))

	active := r.Active()
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(3), active[1].ID)

	stats := r.Statistics()
	assert.Equal(t, Stats{Total: 3, Active: 2, Inactive: 1}, stats)
}

func TestByAgeRangeBoundsAreInclusive(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	require.NoError(t, r.Add(newPatient(1, "P1", 29)))
	require.NoError(t, r.Add(newPatient(2, "P2", 30)))
	require.NoError(t, r.Add(newPatient(3, "P3", 45)))
	require.NoError(t, r.Add(newPatient(4, "P4", 46)))

	in := r.ByAgeRange(30, 45)
	require.Len(t, in, 2)
	assert.Equal(t, int64(2), in[0].ID)
	assert.Equal(t, int64(3), in[1].ID)
}

func TestNewRecordNumber(t *testing.T) {
	a, b := NewRecordNumber(), NewRecordNumber()
	assert.Contains(t, a, "MRN-")
	assert.NotEqual(t, a, b)
}
