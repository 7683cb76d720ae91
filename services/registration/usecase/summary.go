package usecase

import (
	"context"
	"fmt"
	"registration/domain"
	"sort"
	"time"
)

type summaryUC struct {
	registrationRepo domain.RegistrationRepo
	TimeOut          time.Duration
}

func NewSummaryUseCase(repo domain.RegistrationRepo, timeOut time.Duration) domain.SummaryUseCase {
	return &summaryUC{
		registrationRepo: repo,
		TimeOut:          timeOut,
	}
}

func (sUC *summaryUC) Summarize(ctx context.Context) (*domain.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	records, err := sUC.registrationRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}

	summary := CountByDepartment(records)
	return &summary, nil
}

// CountByDepartment groups records by exact department string. Rows are
// ordered by count, largest first; equal counts keep first-appearance order.
func CountByDepartment(records []domain.Registration) domain.Summary {
	index := make(map[string]int)
	counts := []domain.DepartmentCount{}

	for _, r := range records {
		i, ok := index[r.Department]
		if !ok {
			i = len(counts)
			index[r.Department] = i
			counts = append(counts, domain.DepartmentCount{Department: r.Department})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})

	return domain.Summary{
		Total:       len(records),
		Departments: counts,
	}
}
