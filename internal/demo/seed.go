// Package demo fills a clinic with plausible fake records so the console
// can be exercised without manual data entry.
package demo

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/airtribe/meditrack/internal/appointment"
	"github.com/airtribe/meditrack/internal/billing"
	"github.com/airtribe/meditrack/internal/clinic"
	"github.com/airtribe/meditrack/internal/doctor"
	"github.com/airtribe/meditrack/internal/patient"
)

var weekdaySets = [][]time.Weekday{
	{time.Monday, time.Wednesday, time.Friday},
	{time.Tuesday, time.Thursday},
	{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	{time.Saturday, time.Sunday},
}

// Seed populates the clinic's registries with fake doctors, patients,
// appointments, and bills. Every record goes through the normal validated
// mutation path.
func Seed(c *clinic.Clinic, log zerolog.Logger) error {
	gofakeit.Seed(time.Now().UnixNano())

	specs := doctor.Specializations()

	log.Info().Int("count", c.Config.DemoDoctors).Msg("seeding doctors")
	for i := 1; i <= c.Config.DemoDoctors; i++ {
		d := doctor.New(
			int64(i),
			"Dr. "+gofakeit.Name(),
			gofakeit.Number(1, 30),
			specs[gofakeit.Number(0, len(specs)-1)],
			weekdaySets[gofakeit.Number(0, len(weekdaySets)-1)],
			doctor.TimeOfDay{Hour: 9},
			doctor.TimeOfDay{Hour: 17},
		)
		if err := c.Doctors.Add(d); err != nil {
			return fmt.Errorf("seed doctor %d: %w", i, err)
		}
	}
	doctors := c.Doctors.All()
	if len(doctors) == 0 && c.Config.DemoPatients > 0 {
		return fmt.Errorf("seed patients: no doctors to assign, DEMO_DOCTORS is %d", c.Config.DemoDoctors)
	}

	log.Info().Int("count", c.Config.DemoPatients).Msg("seeding patients")
	for i := 1; i <= c.Config.DemoPatients; i++ {
		id := int64(i)
		person := patient.NewPerson(id, gofakeit.Name(), gofakeit.Number(1, 90), gofakeit.Numerify("##########"))
		p := patient.New(id, person, patient.NewRecordNumber())
		if err := c.Patients.Add(p); err != nil {
			return fmt.Errorf("seed patient %d: %w", i, err)
		}
		c.Patients.AssignDoctor(id, doctors[gofakeit.Number(0, len(doctors)-1)])
	}

	durationMinutes := int(c.Config.AppointmentDuration.Minutes())
	apptID := int64(0)
	for _, p := range c.Patients.All() {
		if gofakeit.Number(0, 3) == 0 {
			continue // some patients have no visit booked yet
		}
		at := time.Now().Add(time.Duration(gofakeit.Number(1, 14*24)) * time.Hour).Truncate(time.Minute)
		if c.Appointments.HasConflict(p.AssignedDoctor, at, durationMinutes) {
			continue
		}
		apptID++
		a := appointment.New(apptID, p, at)
		a.Notes = gofakeit.Sentence(6)
		if err := c.Appointments.Book(a); err != nil {
			return fmt.Errorf("seed appointment %d: %w", apptID, err)
		}
	}

	billID := int64(0)
	for _, a := range c.Appointments.All() {
		billID++
		b := billing.New(billID, a, gofakeit.Price(100, 2000))
		if err := c.Bills.Create(b); err != nil {
			return fmt.Errorf("seed bill %d: %w", billID, err)
		}
		if gofakeit.Number(0, 1) == 1 {
			if err := c.Bills.Pay(billID); err != nil {
				return fmt.Errorf("seed payment %d: %w", billID, err)
			}
		}
	}

	log.Info().
		Int("appointments", len(c.Appointments.All())).
		Int("bills", len(c.Bills.All())).
		Msg("seed complete")
	return nil
}
