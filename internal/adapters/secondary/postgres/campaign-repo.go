package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundraising-service/internal/core/domain"
	"fundraising-service/internal/core/ports/output"
)

const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id             BIGSERIAL PRIMARY KEY,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	title          TEXT NOT NULL,
	description    TEXT NOT NULL,
	btc_address    TEXT NOT NULL,
	target_amount  DOUBLE PRECISION NOT NULL,
	current_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	owner_name     TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'Active'
);
`

// Migrate creates the campaigns table when it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate campaigns schema: %w", err)
	}
	return nil
}

type campaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) ports.CampaignRepository {
	return &campaignRepo{pool: pool}
}

func (r *campaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	query := `
		INSERT INTO campaigns
			(created_at, title, description, btc_address, target_amount,
			 current_amount, owner_name, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		c.CreatedAt, c.Title, c.Description, c.BTCAddress,
		c.TargetAmount, c.CurrentAmount, c.OwnerName, string(c.Status),
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

func (r *campaignRepo) GetByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	query := `
		SELECT id, created_at, title, description, btc_address,
			   target_amount, current_amount, owner_name, status
		FROM campaigns
		WHERE id = $1
	`
	c, err := scanCampaign(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("get campaign by id: %w", err)
	}
	return c, nil
}

func (r *campaignRepo) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Campaign, error) {
	query := `
		SELECT id, created_at, title, description, btc_address,
			   target_amount, current_amount, owner_name, status
		FROM campaigns
	`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// RecordDonation applies the donation inside a transaction: the row is
// locked, the amount and the Funded transition are computed in the domain,
// and the update commits atomically. Concurrent donations serialize on the
// row lock.
func (r *campaignRepo) RecordDonation(ctx context.Context, id int64, amount float64) (*domain.Campaign, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin donation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT id, created_at, title, description, btc_address,
			   target_amount, current_amount, owner_name, status
		FROM campaigns
		WHERE id = $1
		FOR UPDATE
	`
	c, err := scanCampaign(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("lock campaign for donation: %w", err)
	}

	c.ApplyDonation(amount)

	_, err = tx.Exec(ctx,
		`UPDATE campaigns SET current_amount = $1, status = $2 WHERE id = $3`,
		c.CurrentAmount, string(c.Status), id,
	)
	if err != nil {
		return nil, fmt.Errorf("record donation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit donation: %w", err)
	}
	return c, nil
}

func (r *campaignRepo) SetStatus(ctx context.Context, id int64, status domain.CampaignStatus) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1 WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("set campaign status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (r *campaignRepo) Snapshot(ctx context.Context) ([]domain.CorpusEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, target_amount, status
		FROM campaigns
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("snapshot corpus: %w", err)
	}
	defer rows.Close()

	entries := []domain.CorpusEntry{}
	for rows.Next() {
		var e domain.CorpusEntry
		var status string
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.TargetAmount, &status); err != nil {
			return nil, fmt.Errorf("scan corpus entry: %w", err)
		}
		e.Status = domain.CampaignStatus(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	var status string
	err := row.Scan(
		&c.ID, &c.CreatedAt, &c.Title, &c.Description, &c.BTCAddress,
		&c.TargetAmount, &c.CurrentAmount, &c.OwnerName, &status,
	)
	if err != nil {
		return nil, err
	}
	c.Status = domain.CampaignStatus(status)
	return &c, nil
}
