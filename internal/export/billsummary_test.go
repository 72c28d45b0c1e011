package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtribe/meditrack/internal/appointment"
	"github.com/airtribe/meditrack/internal/billing"
	"github.com/airtribe/meditrack/internal/doctor"
	"github.com/airtribe/meditrack/internal/patient"
)

func testBill(id int64, amount float64) *billing.Bill {
	d := doctor.New(1, "Dr. A", 10, doctor.Cardiology,
		[]time.Weekday{time.Monday}, doctor.TimeOfDay{Hour: 9}, doctor.TimeOfDay{Hour: 17})
	p := patient.New(1, patient.NewPerson(1, "Pat Doe", 30, "1234567890"), "MRN-001")
	p.AssignedDoctor = d
	a := appointment.New(id, p, time.Now().Add(24*time.Hour))
	return billing.New(id, a, amount)
}

func TestNewBillSummaryAggregates(t *testing.T) {
	paid := testBill(1, 300)
	paid.Status = billing.StatusPaid
	pending := testBill(2, 200)

	s := NewBillSummary([]*billing.Bill{paid, pending})
	assert.Len(t, s.Bills, 2)
	assert.InDelta(t, 500.0, s.TotalAmount, 1e-9)
	assert.InDelta(t, 300.0, s.PaidAmount, 1e-9)
	assert.InDelta(t, 200.0, s.PendingAmount, 1e-9)
	assert.False(t, s.GeneratedAt.IsZero())
}

func TestWriteCSV(t *testing.T) {
	s := NewBillSummary([]*billing.Bill{testBill(1, 100), testBill(2, 400)})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, s, 0.05))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1 // summary and detail rows differ in width
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// 6 summary rows (the blank separator is skipped) + header + 2 bills
	require.Len(t, records, 9)
	assert.Equal(t, "BILL SUMMARY REPORT", records[0][0])
	assert.Equal(t, []string{"Total Bills", "2"}, records[2])
	assert.Equal(t, []string{"Total Amount", "500.00"}, records[3])

	header := records[6]
	assert.Equal(t, "Bill ID", header[0])
	assert.Equal(t, "Payment Date", header[9])

	first := records[7]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "Pat Doe", first[2])
	assert.Equal(t, "Dr. A", first[3])
	assert.Equal(t, "100.00", first[4])
	assert.Equal(t, "5.00", first[5])
	assert.Equal(t, "105.00", first[6])
	assert.Equal(t, "PENDING", first[7])
	assert.Equal(t, "", first[9], "unpaid bill has no payment date")
}

func TestWriteCSVEmptySummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, NewBillSummary(nil), 0.05))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, []string{"Total Bills", "0"}, records[2])
}

func TestSaveBillSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bills")
	s := NewBillSummary([]*billing.Bill{testBill(1, 100)})

	path, err := SaveBillSummary(dir, s, 0.05)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "BillSummary_"))
	assert.True(t, strings.HasSuffix(path, ".csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BILL SUMMARY REPORT")
	assert.Contains(t, string(data), "Pat Doe")
}
