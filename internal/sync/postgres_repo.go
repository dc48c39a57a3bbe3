package sync

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository records sync runs. It is audit data only and never read back
// to decide what to sync.
type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
	LinkBookToRun(ctx context.Context, runID, bookID, pageID string) error
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) error {
	const sql = `
		INSERT INTO sync_runs (id, started_at, status, dev_mode)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, sql, run.ID, run.StartedAt, run.Status, run.DevMode)
	return err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE sync_runs SET
			finished_at = $1,
			status = $2,
			books_fetched = $3,
			books_synced = $4,
			books_failed = $5,
			blocks_written = $6,
			error = $7
		WHERE id = $8`

	_, err := r.db.Exec(ctx, sql, run.FinishedAt, run.Status, run.BooksFetched, run.BooksSynced, run.BooksFailed, run.BlocksWritten, run.Error, run.ID)
	return err
}

func (r *PostgresRepo) LinkBookToRun(ctx context.Context, runID, bookID, pageID string) error {
	const sql = `
		INSERT INTO sync_run_books (run_id, book_id, page_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`
	_, err := r.db.Exec(ctx, sql, runID, bookID, pageID)
	return err
}

// NopRepo is used when no ledger database is configured.
type NopRepo struct{}

func (NopRepo) CreateRun(context.Context, *Run) error { return nil }
func (NopRepo) UpdateRun(context.Context, *Run) error { return nil }
func (NopRepo) LinkBookToRun(context.Context, string, string, string) error { return nil }
