package store

import (
	"context"
	_ "embed"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

// ReviewStore is the persistence layer for startup reviews. The
// dashboard engine reads it as its ReviewLookup collaborator.
type ReviewStore struct {
	pool *pgxpool.Pool
}

// NewReviewStore creates a connection pool and fails fast if DB is unreachable.
func NewReviewStore(dbURL string) (*ReviewStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &ReviewStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (s *ReviewStore) EnsureSchema() error {
	_, err := s.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping is used by readiness endpoint to validate DB connectivity.
func (s *ReviewStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (s *ReviewStore) Close() {
	s.pool.Close()
}

// FindAllReviews returns every active review for the tenant in one
// batch. The dashboard engine joins them to visitors by email, so a
// single query per build beats per-visitor point reads.
func (s *ReviewStore) FindAllReviews(ctx context.Context, tenantID string) ([]models.Review, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, email,
		       overal_rating, team_value, problem_value, solution_value,
		       gtmstrategy_value, marketopp_value, details, is_anonymous
		FROM reviews
		WHERE tenant_id = $1
		  AND is_active
		ORDER BY id
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(
			&r.ID, &r.TenantID, &r.Email,
			&r.OveralRating, &r.TeamValue, &r.ProblemValue, &r.SolutionValue,
			&r.GtmStrategyValue, &r.MarketOppValue, &r.Details, &r.IsAnonymous,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}

	return reviews, rows.Err()
}
