package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

func newMockConn(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &postgres.Connection{DB: db}, mock
}

var accountColumns = []string{
	"id", "user_id", "customer_id", "account_name", "currency_code", "time_zone", "is_manager",
	"account_type", "refresh_token", "is_active", "connection_status", "needs_reconnection",
	"last_error_message", "last_error_at", "token_expires_at", "created_at", "updated_at",
}

func TestGoogleAdsAccountRepository_GetByID(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("conta encontrada", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewGoogleAdsAccountRepository(conn)

		mock.ExpectQuery(`SELECT (.+) FROM google_ads_accounts WHERE id = \$1`).
			WithArgs("acc-1").
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(
				"acc-1", "user-1", "123-456-7890", "Loja Centro", "BRL", nil, false,
				"PRODUCTION", "cipher", true, "CONNECTED", false,
				nil, nil, nil, now, now,
			))

		acc, err := repo.GetByID(context.Background(), "acc-1")
		require.NoError(t, err)
		require.NotNil(t, acc)
		assert.Equal(t, "user-1", acc.UserID)
		assert.Equal(t, "1234567890", acc.APICustomerID())
		require.NotNil(t, acc.CurrencyCode)
		assert.Equal(t, "BRL", *acc.CurrencyCode)
		assert.Nil(t, acc.TimeZone)
		assert.Equal(t, domain.AccountTypeProduction, acc.AccountType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conta inexistente retorna nil", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewGoogleAdsAccountRepository(conn)

		mock.ExpectQuery(`SELECT (.+) FROM google_ads_accounts`).
			WillReturnRows(sqlmock.NewRows(accountColumns))

		acc, err := repo.GetByID(context.Background(), "nope")
		require.NoError(t, err)
		assert.Nil(t, acc)
	})
}

func TestGoogleAdsAccountRepository_SaveOrUpdate(t *testing.T) {
	accounts := func() []*domain.GoogleAdsAccount {
		return []*domain.GoogleAdsAccount{
			{UserID: "user-1", CustomerID: "111", AccountName: "A", AccountType: domain.AccountTypeProduction, RefreshToken: "c", IsActive: true},
			{UserID: "user-1", CustomerID: "222", AccountName: "B", AccountType: domain.AccountTypeTest, RefreshToken: "c", IsActive: true},
		}
	}

	t.Run("upsert em transação", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewGoogleAdsAccountRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO google_ads_accounts (.+) ON CONFLICT \(user_id, customer_id\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		accs := accounts()
		err := repo.SaveOrUpdate(context.Background(), accs)
		require.NoError(t, err)
		assert.NotEmpty(t, accs[0].ID)
		assert.NotEqual(t, accs[0].ID, accs[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("erro do banco faz rollback", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewGoogleAdsAccountRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO google_ads_accounts`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key"})
		mock.ExpectRollback()

		err := repo.SaveOrUpdate(context.Background(), accounts())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "23505")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lista vazia não acessa o banco", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewGoogleAdsAccountRepository(conn)

		require.NoError(t, repo.SaveOrUpdate(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGoogleAdsAccountRepository_MarkNeedsReconnection(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewGoogleAdsAccountRepository(conn)

	mock.ExpectExec(`UPDATE google_ads_accounts SET (.+)needs_reconnection = \$(.+) WHERE id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkNeedsReconnection(context.Background(), "acc-1", "invalid_grant")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetricsCacheRepository(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	columns := []string{"account_id", "cache_key", "data", "query_hash", "created_at", "expires_at"}

	t.Run("GetLive filtra por expiração", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewMetricsCacheRepository(conn)

		mock.ExpectQuery(`SELECT (.+) FROM google_ads_metrics_cache WHERE (.+) AND expires_at > \$3`).
			WithArgs("acc-1", "keyword_LAST_7_DAYS_clicks", now).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				"acc-1", "keyword_LAST_7_DAYS_clicks", []byte(`{"rows":[]}`), "hash", now, now.Add(time.Hour),
			))

		entry, err := repo.GetLive(context.Background(), "acc-1", "keyword_LAST_7_DAYS_clicks", now)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.JSONEq(t, `{"rows":[]}`, string(entry.Data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetLive sem linha viva retorna nil", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewMetricsCacheRepository(conn)

		mock.ExpectQuery(`SELECT (.+) FROM google_ads_metrics_cache`).
			WillReturnRows(sqlmock.NewRows(columns))

		entry, err := repo.GetLive(context.Background(), "acc-1", "k", now)
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("Upsert usa a chave composta", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewMetricsCacheRepository(conn)

		mock.ExpectExec(`INSERT INTO google_ads_metrics_cache (.+) ON CONFLICT \(account_id, cache_key\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(context.Background(), &domain.CacheEntry{
			AccountID: "acc-1", CacheKey: "k", Data: []byte(`{}`), QueryHash: "h", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteExpired retorna a contagem", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewMetricsCacheRepository(conn)

		mock.ExpectExec(`DELETE FROM google_ads_metrics_cache WHERE expires_at <= \$1`).
			WithArgs(now).
			WillReturnResult(sqlmock.NewResult(0, 7))

		count, err := repo.DeleteExpired(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})
}

func TestDailyMetricRepository(t *testing.T) {
	t.Run("SaveOrUpdate sobrescreve por chave", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewDailyMetricRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO google_ads_daily_metrics (.+) ON CONFLICT \(account_id, date, entity_type, entity_id\)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveOrUpdate(context.Background(), []*domain.DailyMetric{
			{AccountID: "acc-1", Date: "2024-03-09", EntityType: domain.EntityAccount, EntityID: "acc-1", Metrics: []byte(`{"clicks":1}`)},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByDateRange com filtro de entidade", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewDailyMetricRepository(conn)

		mock.ExpectQuery(`SELECT (.+) FROM google_ads_daily_metrics WHERE (.+) AND entity_type = \$4`).
			WithArgs("acc-1", "2024-03-01", "2024-03-09", domain.EntityCampaign).
			WillReturnRows(sqlmock.NewRows([]string{"account_id", "date", "entity_type", "entity_id", "entity_name", "metrics"}).
				AddRow("acc-1", "2024-03-01", "campaign", "c1", "Campanha", []byte(`{"clicks":3}`)))

		metrics, err := repo.GetByDateRange(context.Background(), "acc-1", "2024-03-01", "2024-03-09", domain.EntityCampaign)
		require.NoError(t, err)
		require.Len(t, metrics, 1)
		assert.Equal(t, "Campanha", metrics[0].EntityName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsightsSubscriptionRepository_ListActive(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewInsightsSubscriptionRepository(conn)

	sentAt := time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM insights_subscriptions WHERE is_active = \$1 AND is_paused = \$2`).
		WithArgs(true, false).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "google_ads_account_id", "frequency", "send_time", "time_zone",
			"selected_metrics", "is_active", "is_paused", "last_sent_at",
		}).
			AddRow("sub-1", "user-1", "acc-1", "daily", "09:00", "UTC", "{clicks,impressions}", true, false, sentAt).
			AddRow("sub-2", "user-2", "acc-2", "weekly", "18:30", "America/Sao_Paulo", "{}", true, false, nil))

	subs, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, []string{"clicks", "impressions"}, subs[0].SelectedMetrics)
	assert.Equal(t, domain.FrequencyDaily, subs[0].Frequency)
	require.NotNil(t, subs[0].LastSentAt)
	assert.Nil(t, subs[1].LastSentAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsightsEmailLogRepository_Create(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewInsightsEmailLogRepository(conn)

	mock.ExpectExec(`INSERT INTO insights_email_logs`).
		WillReturnError(errors.New("conexão perdida"))

	err := repo.Create(context.Background(), &domain.InsightsEmailLog{SubscriptionID: "sub-1", Status: domain.EmailStatusFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao executar a query")
}

func TestUserProfileRepository_GetByID(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewUserProfileRepository(conn)

	mock.ExpectQuery(`SELECT id, email, full_name FROM profiles WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name"}).AddRow("user-1", "ana@example.com", nil))

	profile, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Nil(t, profile.FullName)
}
