package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/airtribe/meditrack/internal/doctor"
	"github.com/airtribe/meditrack/internal/validate"
)

// NewRecordNumber generates a medical record number for patients registered
// without one.
func NewRecordNumber() string {
	return "MRN-" + uuid.NewString()[:8]
}

// Person carries the identity attributes of a registered patient. Identity
// is immutable once created; contact fields may be edited through the
// owning registry.
type Person struct {
	ID        int64
	Name      string
	Age       int
	MobileNo  string // exactly ten digits
	CreatedAt time.Time
}

func NewPerson(id int64, name string, age int, mobileNo string) *Person {
	return &Person{
		ID:        id,
		Name:      name,
		Age:       age,
		MobileNo:  mobileNo,
		CreatedAt: time.Now(),
	}
}

// Patient is created active with no assigned doctor; assignment is a later
// mutation through the registry.
type Patient struct {
	ID                  int64
	Person              *Person
	MedicalRecordNumber string
	AssignedDoctor      *doctor.Doctor
	Active              bool
	RegisteredAt        time.Time
}

func New(id int64, person *Person, medicalRecordNumber string) *Patient {
	return &Patient{
		ID:                  id,
		Person:              person,
		MedicalRecordNumber: medicalRecordNumber,
		Active:              true,
		RegisteredAt:        time.Now(),
	}
}

// Valid is the composite validity predicate gating Registry.Add.
func (p *Patient) Valid() bool {
	return p != nil &&
		validate.Positive(p.ID) &&
		p.Person != nil &&
		validate.NotEmpty(p.Person.Name) &&
		validate.Mobile(p.Person.MobileNo) &&
		validate.NotEmpty(p.MedicalRecordNumber)
}
