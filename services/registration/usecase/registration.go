package usecase

import (
	"context"
	"fmt"
	"registration/domain"
	"sync"
	"time"

	"github.com/asaskevich/govalidator"
)

type registrationUC struct {
	registrationRepo domain.RegistrationRepo
	rosterRepo       domain.RosterRepo
	TimeOut          time.Duration
	now              func() time.Time

	// serialises load, append and save so count-based ids stay unique
	mu sync.Mutex
}

// NewRegistrationUseCase wires the form logic to its stores. A nil clock
// means time.Now.
func NewRegistrationUseCase(registrationRepo domain.RegistrationRepo, rosterRepo domain.RosterRepo, timeOut time.Duration, clock func() time.Time) domain.RegistrationUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &registrationUC{
		registrationRepo: registrationRepo,
		rosterRepo:       rosterRepo,
		TimeOut:          timeOut,
		now:              clock,
	}
}

func (rUC *registrationUC) Submit(ctx context.Context, form *domain.RegistrationForm) (*domain.Registration, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	rUC.mu.Lock()
	defer rUC.mu.Unlock()

	records, err := rUC.registrationRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}

	record := domain.Registration{
		ID:            len(records) + 1,
		FullName:      form.FullName,
		BirthDate:     formatBirthDate(form.BirthDate),
		JobTitle:      form.JobTitle,
		Role:          form.Role,
		Department:    form.Department,
		Qualification: form.Qualification,
		Certificate:   form.Certificate,
		Phone:         form.Phone,
		Email:         form.Email,
		SubmittedAt:   rUC.now().Format(domain.SubmittedAtLayout),
	}

	records = append(records, record)
	if err := rUC.registrationRepo.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save registration: %w", err)
	}

	return &record, nil
}

func (rUC *registrationUC) List(ctx context.Context) ([]domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	records, err := rUC.registrationRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}
	return records, nil
}

func (rUC *registrationUC) Departments(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	departments, err := rUC.rosterRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	return departments, nil
}

// validateForm checks the required fields in display order and reports only
// the first one left blank.
func validateForm(form *domain.RegistrationForm) error {
	required := []struct {
		field   string
		value   string
		message string
	}{
		{"full_name", form.FullName, "Full name is required."},
		{"role", form.Role, "Role is required."},
		{"department", form.Department, "Department is required."},
		{"phone", form.Phone, "Phone number is required."},
	}

	for _, r := range required {
		if govalidator.IsNull(govalidator.Trim(r.value, "")) {
			return &domain.ValidationError{Field: r.field, Message: r.message}
		}
	}
	return nil
}

// formatBirthDate converts a date input value to day/month/year. Values that
// are not in input format are stored unchanged.
func formatBirthDate(value string) string {
	value = govalidator.Trim(value, "")
	if value == "" {
		return ""
	}

	t, err := time.Parse(domain.BirthDateInputLayout, value)
	if err != nil {
		return value
	}
	return t.Format(domain.BirthDateLayout)
}
