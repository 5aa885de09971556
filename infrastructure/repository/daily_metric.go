package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

//go:generate mockgen -source=daily_metric.go -destination=mocks/daily_metric.go -package=mocks

const dailyMetricsTable = "google_ads_daily_metrics"

type DailyMetricRepository interface {
	SaveOrUpdate(ctx context.Context, metrics []*domain.DailyMetric) error
	GetByDateRange(ctx context.Context, accountID, startDate, endDate string, entityType domain.EntityType) ([]*domain.DailyMetric, error)
}

type dailyMetricRepository struct {
	conn postgres.Conn
}

func NewDailyMetricRepository(conn postgres.Conn) DailyMetricRepository {
	return &dailyMetricRepository{
		conn: conn,
	}
}

func (r *dailyMetricRepository) SaveOrUpdate(ctx context.Context, metrics []*domain.DailyMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert(dailyMetricsTable).
		Columns("account_id", "date", "entity_type", "entity_id", "entity_name", "metrics")

	for _, m := range metrics {
		builder = builder.Values(m.AccountID, m.Date, m.EntityType, m.EntityID, m.EntityName, []byte(m.Metrics))
	}

	query, args, err := builder.
		Suffix(`
			ON CONFLICT (account_id, date, entity_type, entity_id) DO UPDATE SET
				entity_name = EXCLUDED.entity_name,
				metrics = EXCLUDED.metrics,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapExecError(err)
		}
		return nil
	})
}

func (r *dailyMetricRepository) GetByDateRange(
	ctx context.Context,
	accountID, startDate, endDate string,
	entityType domain.EntityType,
) ([]*domain.DailyMetric, error) {
	builder := squirrel.
		Select("account_id, to_char(date, 'YYYY-MM-DD'), entity_type, entity_id, entity_name, metrics").
		From(dailyMetricsTable).
		Where(squirrel.Eq{"account_id": accountID}).
		Where(squirrel.GtOrEq{"date": startDate}).
		Where(squirrel.LtOrEq{"date": endDate}).
		OrderBy("date ASC", "entity_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if entityType != "" {
		builder = builder.Where(squirrel.Eq{"entity_type": entityType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.DailyMetric, 0)
	for rows.Next() {
		m := &domain.DailyMetric{}
		var data []byte
		if err := rows.Scan(&m.AccountID, &m.Date, &m.EntityType, &m.EntityID, &m.EntityName, &data); err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas diárias: %w", err)
		}
		m.Metrics = data
		metrics = append(metrics, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}
