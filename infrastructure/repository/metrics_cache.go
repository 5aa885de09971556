package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

//go:generate mockgen -source=metrics_cache.go -destination=mocks/metrics_cache.go -package=mocks

const metricsCacheTable = "google_ads_metrics_cache"

type MetricsCacheRepository interface {
	GetLive(ctx context.Context, accountID, cacheKey string, now time.Time) (*domain.CacheEntry, error)
	Upsert(ctx context.Context, entry *domain.CacheEntry) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type metricsCacheRepository struct {
	conn postgres.Conn
}

func NewMetricsCacheRepository(conn postgres.Conn) MetricsCacheRepository {
	return &metricsCacheRepository{
		conn: conn,
	}
}

// GetLive ignora linhas expiradas; elas permanecem na tabela até DeleteExpired
func (r *metricsCacheRepository) GetLive(ctx context.Context, accountID, cacheKey string, now time.Time) (*domain.CacheEntry, error) {
	query, args, err := squirrel.
		Select("account_id, cache_key, data, query_hash, created_at, expires_at").
		From(metricsCacheTable).
		Where(squirrel.Eq{"account_id": accountID, "cache_key": cacheKey}).
		Where(squirrel.Gt{"expires_at": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry := &domain.CacheEntry{}
	var data []byte

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&entry.AccountID,
		&entry.CacheKey,
		&data,
		&entry.QueryHash,
		&entry.CreatedAt,
		&entry.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cache: %w", err)
	}

	entry.Data = data

	return entry, nil
}

// Upsert sobrescreve incondicionalmente a entrada existente da mesma chave
func (r *metricsCacheRepository) Upsert(ctx context.Context, entry *domain.CacheEntry) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(metricsCacheTable).
		Columns("account_id", "cache_key", "data", "query_hash", "created_at", "expires_at").
		Values(
			entry.AccountID,
			entry.CacheKey,
			[]byte(entry.Data),
			entry.QueryHash,
			entry.CreatedAt,
			entry.ExpiresAt,
		).
		Suffix(`
			ON CONFLICT (account_id, cache_key) DO UPDATE SET
				data = EXCLUDED.data,
				query_hash = EXCLUDED.query_hash,
				created_at = EXCLUDED.created_at,
				expires_at = EXCLUDED.expires_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}

	return nil
}

func (r *metricsCacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(metricsCacheTable).
		Where(squirrel.LtOrEq{"expires_at": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapExecError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
