package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
)

type statement struct {
	name string
	sql  string
}

// profiles pertence ao provedor de identidade; a criação aqui só serve para ambientes locais
var schema = []statement{
	{"profiles", `CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		full_name TEXT
	)`},
	{"google_ads_accounts", `CREATE TABLE IF NOT EXISTS google_ads_accounts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		account_name TEXT NOT NULL,
		currency_code TEXT,
		time_zone TEXT,
		is_manager BOOLEAN NOT NULL DEFAULT FALSE,
		account_type TEXT NOT NULL DEFAULT 'PRODUCTION',
		refresh_token TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		connection_status TEXT NOT NULL DEFAULT 'CONNECTED',
		needs_reconnection BOOLEAN NOT NULL DEFAULT FALSE,
		last_error_message TEXT,
		last_error_at TIMESTAMPTZ,
		token_expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT google_ads_accounts_user_customer_key UNIQUE (user_id, customer_id)
	)`},
	{"google_ads_metrics_cache", `CREATE TABLE IF NOT EXISTS google_ads_metrics_cache (
		account_id TEXT NOT NULL,
		cache_key TEXT NOT NULL,
		data JSONB NOT NULL,
		query_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (account_id, cache_key)
	)`},
	{"google_ads_metrics_cache_expires_idx", `CREATE INDEX IF NOT EXISTS google_ads_metrics_cache_expires_idx
		ON google_ads_metrics_cache (expires_at)`},
	{"google_ads_daily_metrics", `CREATE TABLE IF NOT EXISTS google_ads_daily_metrics (
		account_id TEXT NOT NULL,
		date DATE NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		entity_name TEXT NOT NULL DEFAULT '',
		metrics JSONB NOT NULL,
		PRIMARY KEY (account_id, date, entity_type, entity_id)
	)`},
	{"insights_subscriptions", `CREATE TABLE IF NOT EXISTS insights_subscriptions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		google_ads_account_id TEXT NOT NULL REFERENCES google_ads_accounts (id),
		frequency TEXT NOT NULL,
		send_time TEXT NOT NULL,
		time_zone TEXT NOT NULL DEFAULT 'UTC',
		selected_metrics TEXT[] NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_paused BOOLEAN NOT NULL DEFAULT FALSE,
		last_sent_at TIMESTAMPTZ
	)`},
	{"insights_email_logs", `CREATE TABLE IF NOT EXISTS insights_email_logs (
		id TEXT PRIMARY KEY,
		subscription_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		recipient_email TEXT NOT NULL,
		status TEXT NOT NULL,
		error_message TEXT,
		metrics_snapshot JSONB,
		provider_message_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`},
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de criação do schema...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	defer conn.Close()

	startTime := time.Now()

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt.sql); err != nil {
				logrus.WithError(err).WithField("object", stmt.name).Error("Erro ao aplicar schema")
				return err
			}
			logrus.WithField("object", stmt.name).Info("Objeto criado ou já existente")
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("Criação do schema revertida")
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Schema aplicado com sucesso")
}
