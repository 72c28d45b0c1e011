// Package clinic wires the four record registries into one explicitly owned
// application context, replacing process-wide singletons.
package clinic

import (
	"github.com/rs/zerolog"

	"github.com/airtribe/meditrack/internal/appointment"
	"github.com/airtribe/meditrack/internal/billing"
	"github.com/airtribe/meditrack/internal/config"
	"github.com/airtribe/meditrack/internal/doctor"
	"github.com/airtribe/meditrack/internal/patient"
)

type Clinic struct {
	Config       config.Config
	Doctors      *doctor.Registry
	Patients     *patient.Registry
	Appointments *appointment.Ledger
	Bills        *billing.Ledger
}

func New(cfg config.Config, log zerolog.Logger) *Clinic {
	var (
		doctorOpts      []doctor.Option
		patientOpts     []patient.Option
		appointmentOpts []appointment.Option
		billingOpts     []billing.Option
	)
	if cfg.AllowDuplicateIDs {
		doctorOpts = append(doctorOpts, doctor.AllowDuplicateIDs())
		patientOpts = append(patientOpts, patient.AllowDuplicateIDs())
		appointmentOpts = append(appointmentOpts, appointment.AllowDuplicateIDs())
		billingOpts = append(billingOpts, billing.AllowDuplicateIDs())
	}

	return &Clinic{
		Config:       cfg,
		Doctors:      doctor.NewRegistry(log.With().Str("component", "doctors").Logger(), doctorOpts...),
		Patients:     patient.NewRegistry(log.With().Str("component", "patients").Logger(), patientOpts...),
		Appointments: appointment.NewLedger(log.With().Str("component", "appointments").Logger(), appointmentOpts...),
		Bills:        billing.NewLedger(log.With().Str("component", "bills").Logger(), billingOpts...),
	}
}
