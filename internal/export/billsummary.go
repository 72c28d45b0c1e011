// Package export renders read-only views of the billing ledger for external
// consumption. It never mutates registry state.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/airtribe/meditrack/internal/billing"
)

const timestampFormat = "20060102_150405"

// BillSummary aggregates a snapshot of bills at generation time.
type BillSummary struct {
	Bills         []*billing.Bill
	TotalAmount   float64
	PaidAmount    float64
	PendingAmount float64
	GeneratedAt   time.Time
}

func NewBillSummary(bills []*billing.Bill) *BillSummary {
	s := &BillSummary{GeneratedAt: time.Now()}
	for _, b := range bills {
		s.add(b)
	}
	return s
}

func (s *BillSummary) add(b *billing.Bill) {
	s.Bills = append(s.Bills, b)
	s.TotalAmount += b.Amount
	if b.Paid() {
		s.PaidAmount += b.Amount
	} else {
		s.PendingAmount += b.Amount
	}
}

// WriteCSV writes the summary block followed by one row per bill. Tax is
// computed per bill from taxRate.
func WriteCSV(w io.Writer, s *BillSummary, taxRate float64) error {
	cw := csv.NewWriter(w)

	summary := [][]string{
		{"BILL SUMMARY REPORT", ""},
		{"Generated At", s.GeneratedAt.Format(time.DateTime)},
		{"Total Bills", strconv.Itoa(len(s.Bills))},
		{"Total Amount", money(s.TotalAmount)},
		{"Paid Amount", money(s.PaidAmount)},
		{"Pending Amount", money(s.PendingAmount)},
		{},
	}
	for _, row := range summary {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("bill summary csv: write summary: %w", err)
		}
	}

	header := []string{
		"Bill ID", "Appointment ID", "Patient Name", "Doctor Name",
		"Amount", "Tax", "Total", "Status", "Created At", "Payment Date",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("bill summary csv: write header: %w", err)
	}

	for _, b := range s.Bills {
		patientName, doctorName := "", ""
		appointmentID := ""
		if b.Appointment != nil {
			appointmentID = strconv.FormatInt(b.Appointment.ID, 10)
			if b.Appointment.Patient != nil {
				if b.Appointment.Patient.Person != nil {
					patientName = b.Appointment.Patient.Person.Name
				}
				if b.Appointment.Patient.AssignedDoctor != nil {
					doctorName = b.Appointment.Patient.AssignedDoctor.Name
				}
			}
		}
		paymentDate := ""
		if b.PaymentDate != nil {
			paymentDate = b.PaymentDate.Format(time.DateTime)
		}
		tax := b.Amount * taxRate
		record := []string{
			strconv.FormatInt(b.ID, 10),
			appointmentID,
			patientName,
			doctorName,
			money(b.Amount),
			money(tax),
			money(b.Amount + tax),
			string(b.Status),
			b.CreatedAt.Format(time.DateTime),
			paymentDate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("bill summary csv: write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("bill summary csv: flush: %w", err)
	}
	return nil
}

// SaveBillSummary writes the summary to a timestamped CSV file under dir,
// creating the directory if needed, and returns the file path.
func SaveBillSummary(dir string, s *BillSummary, taxRate float64) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("bill summary export: create dir: %w", err)
	}

	name := fmt.Sprintf("BillSummary_%s.csv", s.GeneratedAt.Format(timestampFormat))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("bill summary export: create file: %w", err)
	}
	if err := WriteCSV(f, s, taxRate); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("bill summary export: close file: %w", err)
	}
	return path, nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
