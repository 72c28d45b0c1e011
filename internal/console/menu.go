// Package console is the interactive menu over the clinic registries. It
// renders core results and reports core errors; it never terminates the
// process on one.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/airtribe/meditrack/internal/appointment"
	"github.com/airtribe/meditrack/internal/billing"
	"github.com/airtribe/meditrack/internal/clinic"
	"github.com/airtribe/meditrack/internal/doctor"
	"github.com/airtribe/meditrack/internal/export"
	"github.com/airtribe/meditrack/internal/patient"
	"github.com/airtribe/meditrack/internal/validate"
)

const dateTimeFormat = "2006-01-02 15:04"

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

type Menu struct {
	clinic *clinic.Clinic
	in     *bufio.Scanner
	out    io.Writer
	log    zerolog.Logger
}

func New(c *clinic.Clinic, in io.Reader, out io.Writer, log zerolog.Logger) *Menu {
	return &Menu{
		clinic: c,
		in:     bufio.NewScanner(in),
		out:    out,
		log:    log,
	}
}

// Run loops until the operator exits or input ends.
func (m *Menu) Run() error {
	fmt.Fprintln(m.out, "=== MediTrack ===")
	for {
		m.printMenu()
		choice, ok := m.readLine("Choose an option: ")
		if !ok {
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			m.addDoctor()
		case "2":
			m.addPatient()
		case "3":
			m.assignDoctor()
		case "4":
			m.bookAppointment()
		case "5":
			m.cancelAppointment()
		case "6":
			m.generateBill()
		case "7":
			m.payBill()
		case "8":
			m.listAppointments()
		case "9":
			m.exportBillSummary()
		case "10":
			m.listDoctors()
		case "11":
			m.listPatients()
		case "0":
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		default:
			m.log.Debug().Str("choice", choice).Msg("unknown menu option")
			fmt.Fprintln(m.out, "Unknown option.")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprint(m.out, `
1.  Add Doctor
2.  Add Patient
3.  Assign Doctor to Patient
4.  Book Appointment
5.  Cancel Appointment
6.  Generate Bill
7.  Pay Bill
8.  List Appointments
9.  Export Bill Summary
10. List Doctors
11. List Patients
0.  Exit
`)
}

func (m *Menu) addDoctor() {
	id, ok := m.readInt64("Doctor ID: ")
	if !ok {
		return
	}
	name, ok := m.readLine("Name: ")
	if !ok {
		return
	}
	experience, ok := m.readInt("Years of experience: ")
	if !ok {
		return
	}

	specs := doctor.Specializations()
	for i, s := range specs {
		fmt.Fprintf(m.out, "  %d. %s\n", i+1, s)
	}
	idx, ok := m.readInt("Specialization: ")
	if !ok {
		return
	}
	if idx < 1 || idx > len(specs) {
		fmt.Fprintln(m.out, "No such specialization.")
		return
	}

	daysRaw, ok := m.readLine("Available days (e.g. mon,wed,fri): ")
	if !ok {
		return
	}
	days, err := parseWeekdays(daysRaw)
	if err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}

	from, ok := m.readTimeOfDay("Available from (HH:MM): ")
	if !ok {
		return
	}
	to, ok := m.readTimeOfDay("Available to (HH:MM): ")
	if !ok {
		return
	}

	d := doctor.New(id, name, experience, specs[idx-1], days, from, to)
	if err := m.clinic.Doctors.Add(d); err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}
	fmt.Fprintf(m.out, "Doctor #%d added.\n", id)
}

func (m *Menu) addPatient() {
	id, ok := m.readInt64("Patient ID: ")
	if !ok {
		return
	}
	name, ok := m.readLine("Name: ")
	if !ok {
		return
	}
	age, ok := m.readInt("Age: ")
	if !ok {
		return
	}
	mobile, ok := m.readLine("Mobile number: ")
	if !ok {
		return
	}
	if err := validate.Value(mobile).
		Must(validate.Mobile).
		WithMessage("mobile number must be exactly 10 digits").
		Validate(); err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}
	mrn, ok := m.readLine("Medical record number (blank to generate): ")
	if !ok {
		return
	}
	if strings.TrimSpace(mrn) == "" {
		mrn = patient.NewRecordNumber()
	}

	p := patient.New(id, patient.NewPerson(id, name, age, mobile), mrn)
	if err := m.clinic.Patients.Add(p); err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}
	fmt.Fprintf(m.out, "Patient #%d registered with record number %s.\n", id, mrn)
}

func (m *Menu) assignDoctor() {
	patientID, ok := m.readInt64("Patient ID: ")
	if !ok {
		return
	}
	doctorID, ok := m.readInt64("Doctor ID: ")
	if !ok {
		return
	}
	d, found := m.clinic.Doctors.FindByID(doctorID)
	if !found {
		fmt.Fprintf(m.out, "No doctor with ID %d.\n", doctorID)
		return
	}
	if !m.clinic.Patients.AssignDoctor(patientID, d) {
		fmt.Fprintf(m.out, "No patient with ID %d.\n", patientID)
		return
	}
	fmt.Fprintf(m.out, "Assigned %s to patient #%d.\n", d.Name, patientID)
}

func (m *Menu) bookAppointment() {
	id, ok := m.readInt64("Appointment ID: ")
	if !ok {
		return
	}
	patientID, ok := m.readInt64("Patient ID: ")
	if !ok {
		return
	}
	p, found := m.clinic.Patients.FindByID(patientID)
	if !found {
		fmt.Fprintf(m.out, "No patient with ID %d.\n", patientID)
		return
	}
	at, ok := m.readDateTime(fmt.Sprintf("Date and time (%s): ", dateTimeFormat))
	if !ok {
		return
	}
	notes, ok := m.readLine("Notes: ")
	if !ok {
		return
	}

	duration := int(m.clinic.Config.AppointmentDuration.Minutes())
	if m.clinic.Appointments.HasConflict(p.AssignedDoctor, at, duration) {
		fmt.Fprintln(m.out, "The assigned doctor already has an appointment in that window.")
		return
	}

	a := appointment.New(id, p, at)
	a.Notes = notes
	if err := m.clinic.Appointments.Book(a); err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}
	fmt.Fprintf(m.out, "Appointment #%d booked for %s.\n", id, at.Format(dateTimeFormat))
}

func (m *Menu) cancelAppointment() {
	id, ok := m.readInt64("Appointment ID: ")
	if !ok {
		return
	}
	if err := m.clinic.Appointments.Cancel(id); err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}
	fmt.Fprintf(m.out, "Appointment #%d canceled.\n", id)
}

func (m *Menu) generateBill() {
	id, ok := m.readInt64("Bill ID: ")
	if !ok {
		return
	}
	appointmentID, ok := m.readInt64("Appointment ID: ")
	if !ok {
		return
	}
	a, found := m.clinic.Appointments.FindByID(appointmentID)
	if !found {
		fmt.Fprintf(m.out, "No appointment with ID %d.\n", appointmentID)
		return
	}
	amount, ok := m.readFloat("Amount: ")
	if !ok {
		return
	}

	b := billing.New(id, a, amount)
	if err := m.clinic.Bills.Create(b); err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}
	fmt.Fprintf(m.out, "Bill #%d created for $%.2f.\n", id, amount)
}

func (m *Menu) payBill() {
	id, ok := m.readInt64("Bill ID: ")
	if !ok {
		return
	}
	if err := m.clinic.Bills.Pay(id); err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}
	if m.clinic.Bills.IsPaid(id) {
		fmt.Fprintf(m.out, "Bill #%d is paid.\n", id)
	}
}

func (m *Menu) listAppointments() {
	appointments := m.clinic.Appointments.All()
	if len(appointments) == 0 {
		fmt.Fprintln(m.out, "No appointments.")
		return
	}
	for _, a := range appointments {
		patientName := "-"
		if a.Patient != nil && a.Patient.Person != nil {
			patientName = a.Patient.Person.Name
		}
		fmt.Fprintf(m.out, "#%d  %s  %s  %s\n",
			a.ID, a.ScheduledAt.Format(dateTimeFormat), a.Status, patientName)
	}
	stats := m.clinic.Appointments.Statistics()
	fmt.Fprintf(m.out, "Total: %d  Scheduled: %d  Completed: %d  Canceled: %d\n",
		stats.Total, stats.Scheduled, stats.Completed, stats.Canceled)
}

func (m *Menu) exportBillSummary() {
	summary := export.NewBillSummary(m.clinic.Bills.All())
	fmt.Fprintf(m.out, "Total Bills:    %d\n", len(summary.Bills))
	fmt.Fprintf(m.out, "Total Amount:   $%.2f\n", summary.TotalAmount)
	fmt.Fprintf(m.out, "Paid Amount:    $%.2f\n", summary.PaidAmount)
	fmt.Fprintf(m.out, "Pending Amount: $%.2f\n", summary.PendingAmount)

	path, err := export.SaveBillSummary(m.clinic.Config.ExportDir, summary, m.clinic.Config.TaxRate)
	if err != nil {
		fmt.Fprintln(m.out, "Error:", err)
		return
	}
	fmt.Fprintln(m.out, "Summary exported to", path)
}

func (m *Menu) listDoctors() {
	doctors := m.clinic.Doctors.All()
	if len(doctors) == 0 {
		fmt.Fprintln(m.out, "No doctors.")
		return
	}
	for _, d := range doctors {
		fmt.Fprintf(m.out, "#%d  %s  %s  %d years  %s-%s\n",
			d.ID, d.Name, d.Specialization, d.Experience, d.AvailableFrom, d.AvailableTo)
	}
	if avg, ok := m.clinic.Doctors.AverageExperience(); ok {
		fmt.Fprintf(m.out, "Average experience: %.1f years\n", avg)
	}
}

func (m *Menu) listPatients() {
	patients := m.clinic.Patients.All()
	if len(patients) == 0 {
		fmt.Fprintln(m.out, "No patients.")
		return
	}
	for _, p := range patients {
		name, doctorName := "-", "none"
		if p.Person != nil {
			name = p.Person.Name
		}
		if p.AssignedDoctor != nil {
			doctorName = p.AssignedDoctor.Name
		}
		fmt.Fprintf(m.out, "#%d  %s  %s  active=%t  doctor=%s\n",
			p.ID, name, p.MedicalRecordNumber, p.Active, doctorName)
	}
	stats := m.clinic.Patients.Statistics()
	fmt.Fprintf(m.out, "Total: %d  Active: %d  Inactive: %d\n", stats.Total, stats.Active, stats.Inactive)
}

func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) readInt64(prompt string) (int64, bool) {
	s, ok := m.readLine(prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Fprintf(m.out, "Not a number: %q\n", s)
		return 0, false
	}
	return n, true
}

func (m *Menu) readInt(prompt string) (int, bool) {
	n, ok := m.readInt64(prompt)
	return int(n), ok
}

func (m *Menu) readFloat(prompt string) (float64, bool) {
	s, ok := m.readLine(prompt)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintf(m.out, "Not a number: %q\n", s)
		return 0, false
	}
	return f, true
}

func (m *Menu) readDateTime(prompt string) (time.Time, bool) {
	s, ok := m.readLine(prompt)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateTimeFormat, s, time.Local)
	if err != nil {
		fmt.Fprintf(m.out, "Not a date-time: %q\n", s)
		return time.Time{}, false
	}
	return t, true
}

func (m *Menu) readTimeOfDay(prompt string) (doctor.TimeOfDay, bool) {
	s, ok := m.readLine(prompt)
	if !ok {
		return doctor.TimeOfDay{}, false
	}
	t, err := doctor.ParseTimeOfDay(s)
	if err != nil {
		fmt.Fprintf(m.out, "Not a time: %q\n", s)
		return doctor.TimeOfDay{}, false
	}
	return t, true
}

func parseWeekdays(raw string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if len(part) > 3 {
			part = part[:3]
		}
		day, ok := weekdayNames[part]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}
