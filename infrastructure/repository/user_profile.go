package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

//go:generate mockgen -source=user_profile.go -destination=mocks/user_profile.go -package=mocks

type UserProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type userProfileRepository struct {
	conn postgres.Conn
}

func NewUserProfileRepository(conn postgres.Conn) UserProfileRepository {
	return &userProfileRepository{
		conn: conn,
	}
}

func (r *userProfileRepository) GetByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query, args, err := squirrel.
		Select("id, email, full_name").
		From("profiles").
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	profile := &domain.UserProfile{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&profile.ID, &profile.Email, &profile.FullName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear perfil: %w", err)
	}

	return profile, nil
}
