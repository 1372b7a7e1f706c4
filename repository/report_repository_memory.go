package repository

import (
	"sync"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

// ReportRepositoryMemory keeps the most recent evaluated reports in memory.
type ReportRepositoryMemory struct {
	mu       sync.Mutex
	capacity int
	data     []domain.Report
}

// NewReportRepositoryMemory creates a repository holding at most capacity reports.
func NewReportRepositoryMemory(capacity int) *ReportRepositoryMemory {
	if capacity <= 0 {
		capacity = 1
	}
	return &ReportRepositoryMemory{
		capacity: capacity,
		data:     []domain.Report{},
	}
}

// Save stores the report, dropping the oldest one once full.
func (r *ReportRepositoryMemory) Save(report domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) == r.capacity {
		copy(r.data, r.data[1:])
		r.data = r.data[:len(r.data)-1]
	}
	r.data = append(r.data, report)
	return nil
}

// Recent returns up to limit reports, newest first.
func (r *ReportRepositoryMemory) Recent(limit int) []domain.Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.Report, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out
}
