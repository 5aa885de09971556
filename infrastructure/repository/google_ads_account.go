package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
)

//go:generate mockgen -source=google_ads_account.go -destination=mocks/google_ads_account.go -package=mocks

const (
	googleAdsAccountsTable  = "google_ads_accounts"
	googleAdsAccountColumns = "id, user_id, customer_id, account_name, currency_code, time_zone, is_manager, " +
		"account_type, refresh_token, is_active, connection_status, needs_reconnection, last_error_message, " +
		"last_error_at, token_expires_at, created_at, updated_at"
)

type GoogleAdsAccountRepository interface {
	GetByID(ctx context.Context, accountID string) (*domain.GoogleAdsAccount, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.GoogleAdsAccount, error)
	ListSyncable(ctx context.Context) ([]*domain.GoogleAdsAccount, error)
	SaveOrUpdate(ctx context.Context, accounts []*domain.GoogleAdsAccount) error
	MarkNeedsReconnection(ctx context.Context, accountID string, message string) error
	RecordError(ctx context.Context, accountID string, message string) error
	UpdateTokenExpiry(ctx context.Context, accountID string, expiresAt time.Time) error
}

type googleAdsAccountRepository struct {
	conn postgres.Conn
}

func NewGoogleAdsAccountRepository(conn postgres.Conn) GoogleAdsAccountRepository {
	return &googleAdsAccountRepository{
		conn: conn,
	}
}

func (r *googleAdsAccountRepository) GetByID(ctx context.Context, accountID string) (*domain.GoogleAdsAccount, error) {
	query, args, err := squirrel.
		Select(googleAdsAccountColumns).
		From(googleAdsAccountsTable).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	acc, err := scanGoogleAdsAccount(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conta: %w", err)
	}

	return acc, nil
}

func (r *googleAdsAccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.GoogleAdsAccount, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

// ListSyncable lista contas ativas cuja concessão ainda é válida
func (r *googleAdsAccountRepository) ListSyncable(ctx context.Context) ([]*domain.GoogleAdsAccount, error) {
	return r.list(ctx, squirrel.Eq{"is_active": true, "needs_reconnection": false})
}

func (r *googleAdsAccountRepository) list(ctx context.Context, where squirrel.Eq) ([]*domain.GoogleAdsAccount, error) {
	query, args, err := squirrel.
		Select(googleAdsAccountColumns).
		From(googleAdsAccountsTable).
		Where(where).
		OrderBy("account_name ASC").
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

	accounts := make([]*domain.GoogleAdsAccount, 0)
	for rows.Next() {
		acc, err := scanGoogleAdsAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

// SaveOrUpdate grava as contas em uma única transação. A reconexão limpa o estado de erro.
func (r *googleAdsAccountRepository) SaveOrUpdate(ctx context.Context, accounts []*domain.GoogleAdsAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert(googleAdsAccountsTable).
		Columns(
			"id", "user_id", "customer_id", "account_name", "currency_code", "time_zone", "is_manager",
			"account_type", "refresh_token", "is_active", "connection_status", "needs_reconnection",
		)

	for _, acc := range accounts {
		if acc.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return fmt.Errorf("erro ao gerar id da conta: %w", err)
			}
			acc.ID = id
		}

		builder = builder.Values(
			acc.ID,
			acc.UserID,
			acc.CustomerID,
			acc.AccountName,
			acc.CurrencyCode,
			acc.TimeZone,
			acc.IsManager,
			acc.AccountType,
			acc.RefreshToken,
			acc.IsActive,
			domain.ConnectionStatusConnected,
			false,
		)
	}

	query, args, err := builder.
		Suffix(`
			ON CONFLICT (user_id, customer_id) DO UPDATE SET
				account_name = EXCLUDED.account_name,
				currency_code = EXCLUDED.currency_code,
				time_zone = EXCLUDED.time_zone,
				is_manager = EXCLUDED.is_manager,
				account_type = EXCLUDED.account_type,
				refresh_token = EXCLUDED.refresh_token,
				is_active = EXCLUDED.is_active,
				connection_status = EXCLUDED.connection_status,
				needs_reconnection = FALSE,
				last_error_message = NULL,
				last_error_at = NULL,
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

func (r *googleAdsAccountRepository) MarkNeedsReconnection(ctx context.Context, accountID string, message string) error {
	return r.update(ctx, accountID, map[string]any{
		"needs_reconnection": true,
		"connection_status":  domain.ConnectionStatusNeedsReconnection,
		"last_error_message": message,
		"last_error_at":      squirrel.Expr("NOW()"),
		"updated_at":         squirrel.Expr("NOW()"),
	})
}

func (r *googleAdsAccountRepository) RecordError(ctx context.Context, accountID string, message string) error {
	return r.update(ctx, accountID, map[string]any{
		"connection_status":  domain.ConnectionStatusError,
		"last_error_message": message,
		"last_error_at":      squirrel.Expr("NOW()"),
		"updated_at":         squirrel.Expr("NOW()"),
	})
}

func (r *googleAdsAccountRepository) UpdateTokenExpiry(ctx context.Context, accountID string, expiresAt time.Time) error {
	return r.update(ctx, accountID, map[string]any{
		"token_expires_at": expiresAt,
		"updated_at":       squirrel.Expr("NOW()"),
	})
}

func (r *googleAdsAccountRepository) update(ctx context.Context, accountID string, fields map[string]any) error {
	query, args, err := squirrel.
		Update(googleAdsAccountsTable).
		SetMap(fields).
		Where(squirrel.Eq{"id": accountID}).
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoogleAdsAccount(row rowScanner) (*domain.GoogleAdsAccount, error) {
	acc := &domain.GoogleAdsAccount{}

	if err := row.Scan(
		&acc.ID,
		&acc.UserID,
		&acc.CustomerID,
		&acc.AccountName,
		&acc.CurrencyCode,
		&acc.TimeZone,
		&acc.IsManager,
		&acc.AccountType,
		&acc.RefreshToken,
		&acc.IsActive,
		&acc.ConnectionStatus,
		&acc.NeedsReconnection,
		&acc.LastErrorMessage,
		&acc.LastErrorAt,
		&acc.TokenExpiresAt,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}

func wrapExecError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
