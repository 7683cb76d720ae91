package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	RoleDoctor = "Doctor"

	CertificateYes = "Yes"
	CertificateNo  = "No"

	// BirthDateLayout is how birth dates are stored.
	BirthDateLayout = "02/01/2006"
	// BirthDateInputLayout is what an HTML date input submits.
	BirthDateInputLayout = "2006-01-02"
	// SubmittedAtLayout is how submission timestamps are stored.
	SubmittedAtLayout = "2006-01-02 15:04:05"
)

var (
	Roles          = []string{RoleDoctor}
	Qualifications = []string{"Specialist II", "Specialist I", "PhD", "Master", "Bachelor", "College"}
	Certificates   = []string{CertificateYes, CertificateNo}
)

// RegistrationColumns is the fixed header row of the registration table.
var RegistrationColumns = []string{
	"ID",
	"Full name",
	"Birth date",
	"Job title",
	"Role",
	"Department",
	"Qualification",
	"CME certificate",
	"Phone",
	"Email",
	"Submitted at",
}

type Registration struct {
	ID            int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FullName      string `gorm:"type:varchar(150);not null" json:"full_name"`
	BirthDate     string `gorm:"type:varchar(10)" json:"birth_date"`
	JobTitle      string `gorm:"type:varchar(150)" json:"job_title"`
	Role          string `gorm:"type:varchar(50);not null" json:"role"`
	Department    string `gorm:"type:varchar(150);not null;index" json:"department"`
	Qualification string `gorm:"type:varchar(50)" json:"qualification"`
	Certificate   string `gorm:"type:varchar(3)" json:"certificate"`
	Phone         string `gorm:"type:varchar(20);not null" json:"phone"`
	Email         string `gorm:"type:varchar(255)" json:"email"`
	SubmittedAt   string `gorm:"type:varchar(19)" json:"submitted_at"`
}

// RegistrationForm is what an attendee fills in. ID and SubmittedAt are
// assigned on save.
type RegistrationForm struct {
	FullName      string `json:"full_name" form:"full_name"`
	BirthDate     string `json:"birth_date" form:"birth_date"`
	JobTitle      string `json:"job_title" form:"job_title"`
	Role          string `json:"role" form:"role"`
	Department    string `json:"department" form:"department"`
	Qualification string `json:"qualification" form:"qualification"`
	Certificate   string `json:"certificate" form:"certificate"`
	Phone         string `json:"phone" form:"phone"`
	Email         string `json:"email" form:"email"`
}

// Row returns the record in RegistrationColumns order.
func (r Registration) Row() []string {
	return []string{
		strconv.Itoa(r.ID),
		r.FullName,
		r.BirthDate,
		r.JobTitle,
		r.Role,
		r.Department,
		r.Qualification,
		r.Certificate,
		r.Phone,
		r.Email,
		r.SubmittedAt,
	}
}

// RegistrationFromRow parses a row in RegistrationColumns order. Missing
// trailing cells are treated as empty.
func RegistrationFromRow(row []string) (Registration, error) {
	cells := make([]string, len(RegistrationColumns))
	copy(cells, row)

	id, err := parseID(cells[0])
	if err != nil {
		return Registration{}, err
	}

	return Registration{
		ID:            id,
		FullName:      cells[1],
		BirthDate:     cells[2],
		JobTitle:      cells[3],
		Role:          cells[4],
		Department:    cells[5],
		Qualification: cells[6],
		Certificate:   cells[7],
		Phone:         cells[8],
		Email:         cells[9],
		SubmittedAt:   cells[10],
	}, nil
}

// parseID accepts "7" as well as "7.0", which spreadsheet tools write for
// numeric cells.
func parseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid registration id %q", s)
	}
	return int(f), nil
}

// ValidationError reports the first required field that was left blank.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

type RegistrationRepo interface {
	Load(ctx context.Context) ([]Registration, error)
	Save(ctx context.Context, records []Registration) error
}

type RosterRepo interface {
	Load(ctx context.Context) ([]string, error)
}

type RegistrationUseCase interface {
	Submit(ctx context.Context, form *RegistrationForm) (*Registration, error)
	List(ctx context.Context) ([]Registration, error)
	Departments(ctx context.Context) ([]string, error)
}
