package domain

import "context"

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type Summary struct {
	Total       int               `json:"total"`
	Departments []DepartmentCount `json:"departments"`
}

type SummaryUseCase interface {
	Summarize(ctx context.Context) (*Summary, error)
}
