package doctor

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtribe/meditrack/internal/validate"
)

func newDoctor(id int64, name string, experience int, spec Specialization) *Doctor {
	return New(id, name, experience, spec,
		[]time.Weekday{time.Monday, time.Wednesday},
		TimeOfDay{Hour: 9}, TimeOfDay{Hour: 17})
}

func newRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	return NewRegistry(zerolog.Nop(), opts...)
}

func TestAddRejectsInvalidDoctor(t *testing.T) {
	tests := []struct {
		name string
		d    *Doctor
	}{
		{"nil", nil},
		{"zero id", newDoctor(0, "Dr. A", 5, Cardiology)},
		{"negative id", newDoctor(-1, "Dr. A", 5, Cardiology)},
		{"empty name", newDoctor(1, "   ", 5, Cardiology)},
		{"zero experience", newDoctor(1, "Dr. A", 0, Cardiology)},
		{"bad specialization", newDoctor(1, "Dr. A", 5, Specialization("PODIATRY"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry(t)
			err := r.Add(tt.d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, validate.ErrInvalidData))
			assert.Empty(t, r.All())
		})
	}
}

func TestAddEnforcesUniqueIDs(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Add(newDoctor(1, "Dr. A", 5, Cardiology)))

	err := r.Add(newDoctor(1, "Dr. B", 10, Neurology))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
	assert.Len(t, r.All(), 1)
}

func TestAddAllowsDuplicatesWhenConfigured(t *testing.T) {
	r := newRegistry(t, AllowDuplicateIDs())
	require.NoError(t, r.Add(newDoctor(1, "Dr. A", 5, Cardiology)))
	require.NoError(t, r.Add(newDoctor(1, "Dr. B", 10, Neurology)))
	assert.Len(t, r.All(), 2)

	// findById resolves to the first match.
	d, ok := r.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "Dr. A", d.Name)
}

func TestRemove(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Add(newDoctor(1, "Dr. A", 5, Cardiology)))
	require.NoError(t, r.Add(newDoctor(2, "Dr. B", 10, Neurology)))

	assert.True(t, r.Remove(1))
	assert.False(t, r.Remove(1))
	assert.Len(t, r.All(), 1)
	assert.Equal(t, int64(2), r.All()[0].ID)
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Add(newDoctor(1, "Dr. A", 5, Cardiology)))

	replacement := newDoctor(1, "Dr. A. Jr", 2, Dermatology)
	assert.True(t, r.Update(1, replacement))

	d, ok := r.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "Dr. A. Jr", d.Name)
	assert.Equal(t, Dermatology, d.Specialization)
	assert.Equal(t, 2, d.Experience)

	assert.False(t, r.Update(99, replacement))
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Add(newDoctor(1, "Dr. House", 20, Cardiology)))
	require.NoError(t, r.Add(newDoctor(2, "Dr. Wilson", 15, Neurology)))

	matches := r.FindByName("dr. house")
	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].ID)

	assert.Empty(t, r.FindByName("Dr. Nobody"))
}

func TestBySpecializationPreservesInsertionOrder(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Add(newDoctor(1, "Dr. A", 5, Cardiology)))
	require.NoError(t, r.Add(newDoctor(2, "Dr. B", 10, Neurology)))
	require.NoError(t, r.Add(newDoctor(3, "Dr. C", 7, Cardiology)))

	cards := r.BySpecialization(Cardiology)
	require.Len(t, cards, 2)
	assert.Equal(t, int64(1), cards[0].ID)
	assert.Equal(t, int64(3), cards[1].ID)
}

func TestByAvailableDay(t *testing.T) {
	r := newRegistry(t)
	weekdayDoc := New(1, "Dr. A", 5, Cardiology,
		[]time.Weekday{time.Monday}, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 17})
	weekendDoc := New(2, "Dr. B", 5, Cardiology,
		[]time.Weekday{time.Saturday, time.Sunday}, TimeOfDay{Hour: 10}, TimeOfDay{Hour: 14})
	require.NoError(t, r.Add(weekdayDoc))
	require.NoError(t, r.Add(weekendDoc))

	monday := r.ByAvailableDay(time.Monday)
	require.Len(t, monday, 1)
	assert.Equal(t, int64(1), monday[0].ID)

	assert.Empty(t, r.ByAvailableDay(time.Friday))
}

func TestAverageExperience(t *testing.T) {
	r := newRegistry(t)
	_, ok := r.AverageExperience()
	assert.False(t, ok, "empty registry has no average")

	require.NoError(t, r.Add(newDoctor(1, "Dr. A", 4, Cardiology)))
	require.NoError(t, r.Add(newDoctor(2, "Dr. B", 8, Neurology)))

	avg, ok := r.AverageExperience()
	require.True(t, ok)
	assert.InDelta(t, 6.0, avg, 1e-9)
}

func TestGroupAndCountBySpecialization(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Add(newDoctor(1, "Dr. A", 5, Cardiology)))
	require.NoError(t, r.Add(newDoctor(2, "Dr. B", 10, Neurology)))
	require.NoError(t, r.Add(newDoctor(3, "Dr. C", 7, Cardiology)))

	groups := r.GroupBySpecialization()
	require.Len(t, groups, 2)
	require.Len(t, groups[Cardiology], 2)
	assert.Equal(t, int64(1), groups[Cardiology][0].ID)
	assert.Equal(t, int64(3), groups[Cardiology][1].ID)

	counts := r.CountBySpecialization()
	assert.Equal(t, 2, counts[Cardiology])
	assert.Equal(t, 1, counts[Neurology])
}

func TestTopByExperience(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Add(newDoctor(1, "Dr. A", 5, Cardiology)))
	require.NoError(t, r.Add(newDoctor(2, "Dr. B", 10, Neurology)))
	require.NoError(t, r.Add(newDoctor(3, "Dr. C", 10, Dermatology)))
	require.NoError(t, r.Add(newDoctor(4, "Dr. D", 1, Pediatrics)))

	top := r.TopByExperience(2)
	require.Len(t, top, 2)
	// ties broken by insertion order
	assert.Equal(t, int64(2), top[0].ID)
	assert.Equal(t, int64(3), top[1].ID)

	assert.Len(t, r.TopByExperience(10), 4)
	assert.Empty(t, r.TopByExperience(0))

	// the registry itself keeps insertion order
	all := r.All()
	assert.Equal(t, int64(1), all[0].ID)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, tod)
	assert.Equal(t, "09:30", tod.String())
	assert.True(t, tod.Before(TimeOfDay{Hour: 17}))
	assert.False(t, tod.Before(TimeOfDay{Hour: 9, Minute: 30}))

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}
