package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
)

//go:generate mockgen -source=insights_subscription.go -destination=mocks/insights_subscription.go -package=mocks

const (
	insightsSubscriptionsTable = "insights_subscriptions"
	insightsEmailLogsTable     = "insights_email_logs"
)

type InsightsSubscriptionRepository interface {
	ListActive(ctx context.Context) ([]*domain.InsightsSubscription, error)
	UpdateLastSentAt(ctx context.Context, subscriptionID string, sentAt time.Time) error
}

type InsightsEmailLogRepository interface {
	Create(ctx context.Context, entry *domain.InsightsEmailLog) error
}

type insightsSubscriptionRepository struct {
	conn postgres.Conn
}

func NewInsightsSubscriptionRepository(conn postgres.Conn) InsightsSubscriptionRepository {
	return &insightsSubscriptionRepository{
		conn: conn,
	}
}

// ListActive devolve assinaturas ativas e não pausadas; a verificação de horário fica com o chamador
func (r *insightsSubscriptionRepository) ListActive(ctx context.Context) ([]*domain.InsightsSubscription, error) {
	query, args, err := squirrel.
		Select("id, user_id, google_ads_account_id, frequency, send_time, time_zone, selected_metrics, is_active, is_paused, last_sent_at").
		From(insightsSubscriptionsTable).
		Where(squirrel.Eq{"is_active": true, "is_paused": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	subscriptions := make([]*domain.InsightsSubscription, 0)
	for rows.Next() {
		sub := &domain.InsightsSubscription{}
		if err := rows.Scan(
			&sub.ID,
			&sub.UserID,
			&sub.GoogleAdsAccountID,
			&sub.Frequency,
			&sub.SendTime,
			&sub.TimeZone,
			pq.Array(&sub.SelectedMetrics),
			&sub.IsActive,
			&sub.IsPaused,
			&sub.LastSentAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear assinatura: %w", err)
		}
		subscriptions = append(subscriptions, sub)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return subscriptions, nil
}

func (r *insightsSubscriptionRepository) UpdateLastSentAt(ctx context.Context, subscriptionID string, sentAt time.Time) error {
	query, args, err := squirrel.
		Update(insightsSubscriptionsTable).
		Set("last_sent_at", sentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": subscriptionID}).
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

type insightsEmailLogRepository struct {
	conn postgres.Conn
}

func NewInsightsEmailLogRepository(conn postgres.Conn) InsightsEmailLogRepository {
	return &insightsEmailLogRepository{
		conn: conn,
	}
}

// Create só insere; o log de envios é append-only
func (r *insightsEmailLogRepository) Create(ctx context.Context, entry *domain.InsightsEmailLog) error {
	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id do log: %w", err)
		}
		entry.ID = id
	}

	var snapshot []byte
	if len(entry.MetricsSnapshot) > 0 {
		snapshot = entry.MetricsSnapshot
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(insightsEmailLogsTable).
		Columns(
			"id", "subscription_id", "user_id", "recipient_email", "status",
			"error_message", "metrics_snapshot", "provider_message_id",
		).
		Values(
			entry.ID,
			entry.SubscriptionID,
			entry.UserID,
			entry.RecipientEmail,
			entry.Status,
			entry.ErrorMessage,
			snapshot,
			entry.ProviderMessageID,
		).
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
