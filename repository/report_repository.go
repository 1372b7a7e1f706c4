package repository

import "github.com/Cincinnati-Associates/tomi-app-sub000/domain"

type ReportRepository interface {
	Save(report domain.Report) error
	Recent(limit int) []domain.Report
}
