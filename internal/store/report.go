package store

import (
	"context"
	"fmt"

	"bumblebee/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository struct {
	db DB
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: pool}
}

func (r *ReportRepository) Dashboard(ctx context.Context) (*types.DashboardStats, error) {
	var stats types.DashboardStats

	counts := []struct {
		table string
		dest  *int64
	}{
		{userTableName, &stats.TotalUsers},
		{companyTableName, &stats.TotalCompanies},
		{donationTableName, &stats.TotalDonations},
		{fundingRequestTableName, &stats.TotalFundingRequests},
	}

	for _, c := range counts {
		query, _, err := psql().Select("COUNT(*)").From(c.table).ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to generate count query for %s: %w", c.table, err)
		}
		if err := r.db.QueryRow(ctx, query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	return &stats, nil
}

func (r *ReportRepository) DonationReport(ctx context.Context) ([]*types.DonationReportItem, error) {
	query, args, err := psql().
		Select("d.donation_id", "d.donation_date", "d.donation_type", "d.donation_amount", "d.donor_name", "c.company_name").
		From(donationTableName + " d").
		LeftJoin("companies c ON d.company_id = c.company_id").
		OrderBy("d.donation_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation report query: %w", err)
	}

	var items []*types.DonationReportItem
	err = pgxscan.Select(ctx, r.db, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donation report: %w", err)
	}

	return items, nil
}

func (r *ReportRepository) FundingRequestReport(ctx context.Context) ([]*types.FundingRequestReportItem, error) {
	query, args, err := psql().
		Select("fr.request_id", "c.company_name", "c.contact_email", "c.contact_phone",
			"fr.project_description", "fr.project_impact", "fr.requested_amount",
			"fr.status", "fr.admin_message", "fr.submitted_at").
		From(fundingRequestTableName + " fr").
		Join("companies c ON fr.company_id = c.company_id").
		OrderBy("fr.submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate funding request report query: %w", err)
	}

	var items []*types.FundingRequestReportItem
	err = pgxscan.Select(ctx, r.db, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch funding request report: %w", err)
	}

	return items, nil
}
