package salon

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ListCustomers struct {
	repo salon.Repository
}

func NewListCustomers(repo salon.Repository) *ListCustomers {
	return &ListCustomers{repo: repo}
}

// Execute lists everyone who has booked at the partner's salon, most
// recent first.
func (uc *ListCustomers) Execute(ctx context.Context, p auth.Principal, query string) ([]salon.CustomerSummary, error) {
	if err := requirePartner(p); err != nil {
		return nil, err
	}
	return uc.repo.ListCustomers(ctx, p.ID(), query)
}

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 200
)

type AuditQuery struct {
	Action string
	Entity string
	From   string
	To     string
	Page   int
	Limit  int
}

type AuditPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

type ListAuditLogs struct {
	repo salon.Repository
}

func NewListAuditLogs(repo salon.Repository) *ListAuditLogs {
	return &ListAuditLogs{repo: repo}
}

// Execute pages through the salon's audit trail. Unparseable dates are
// ignored; To is inclusive of the whole day.
func (uc *ListAuditLogs) Execute(ctx context.Context, p auth.Principal, q AuditQuery) (*AuditPage, error) {
	if err := requirePartner(p); err != nil {
		return nil, err
	}

	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > MaxAuditLimit {
		q.Limit = DefaultAuditLimit
	}

	f := salon.AuditFilter{
		Action: q.Action,
		Entity: q.Entity,
		Limit:  q.Limit,
		Offset: (q.Page - 1) * q.Limit,
	}
	if from, err := time.Parse(time.DateOnly, q.From); err == nil {
		f.From = &from
	}
	if to, err := time.Parse(time.DateOnly, q.To); err == nil {
		to = to.Add(24 * time.Hour)
		f.To = &to
	}

	logs, total, err := uc.repo.ListAuditLogs(ctx, p.ID(), f)
	if err != nil {
		return nil, err
	}
	return &AuditPage{Page: q.Page, Limit: q.Limit, Total: total, Logs: logs}, nil
}
