package caching

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

// ConfigCompatibleWithStandardLibrary ordena as chaves de mapas, o que torna o hash canônico
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultTTL = time.Hour

// HotCache é uma camada opcional na frente do Postgres
type HotCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Store struct {
	repo       repository.MetricsCacheRepository
	hot        HotCache
	defaultTTL time.Duration
	now        func() time.Time
}

func NewStore(repo repository.MetricsCacheRepository, ttlHours int) *Store {
	ttl := DefaultTTL
	if ttlHours > 0 {
		ttl = time.Duration(ttlHours) * time.Hour
	}

	return &Store{
		repo:       repo,
		defaultTTL: ttl,
		now:        time.Now,
	}
}

// WithHotCache adiciona a camada em memória (Redis). O Postgres continua sendo a fonte da verdade.
func (s *Store) WithHotCache(hot HotCache) *Store {
	s.hot = hot
	return s
}

// CacheKey é determinística: métricas em ordens diferentes caem na mesma linha
func CacheKey(entity domain.EntityType, dateRange string, metrics []string) string {
	sorted := append([]string{}, metrics...)
	sort.Strings(sorted)
	return fmt.Sprintf("%s_%s_%s", entity, dateRange, strings.Join(sorted, ","))
}

// QueryHash é o sha256 do JSON canônico dos parâmetros completos
func QueryHash(params any) (string, error) {
	canonical, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar parâmetros: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func hotKey(accountID, cacheKey string) string {
	return accountID + ":" + cacheKey
}

// Get devolve nil quando não há entrada ou quando ela já expirou
func (s *Store) Get(ctx context.Context, accountID, cacheKey string) (*domain.CacheEntry, error) {
	now := s.now()

	if entry := s.getHot(ctx, accountID, cacheKey, now); entry != nil {
		return entry, nil
	}

	entry, err := s.repo.GetLive(ctx, accountID, cacheKey, now)
	if err != nil {
		return nil, err
	}

	if entry == nil || entry.IsExpired(now) {
		return nil, nil
	}

	s.setHot(ctx, entry, now)

	return entry, nil
}

// Set grava com last-write-wins; ttl <= 0 usa o TTL padrão
func (s *Store) Set(ctx context.Context, accountID, cacheKey string, payload any, queryHash string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar payload do cache: %w", err)
	}

	now := s.now()
	entry := &domain.CacheEntry{
		AccountID: accountID,
		CacheKey:  cacheKey,
		Data:      data,
		QueryHash: queryHash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return err
	}

	s.setHot(ctx, entry, now)

	return nil
}

// CleanupExpired remove do Postgres as linhas vencidas; no Redis a expiração é nativa
func (s *Store) CleanupExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}

func (s *Store) getHot(ctx context.Context, accountID, cacheKey string, now time.Time) *domain.CacheEntry {
	if s.hot == nil {
		return nil
	}

	raw, err := s.hot.Get(ctx, hotKey(accountID, cacheKey))
	if err != nil {
		logrus.WithError(err).Warn("cache: failed to read hot cache")
		return nil
	}
	if raw == nil {
		return nil
	}

	entry := &domain.CacheEntry{}
	if err := json.Unmarshal(raw, entry); err != nil {
		logrus.WithError(err).Warn("cache: invalid hot cache entry")
		return nil
	}

	if entry.IsExpired(now) {
		return nil
	}

	return entry
}

func (s *Store) setHot(ctx context.Context, entry *domain.CacheEntry, now time.Time) {
	if s.hot == nil {
		return
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		logrus.WithError(err).Warn("cache: failed to serialize hot cache entry")
		return
	}

	if err := s.hot.Set(ctx, hotKey(entry.AccountID, entry.CacheKey), raw, entry.ExpiresAt.Sub(now)); err != nil {
		logrus.WithError(err).Warn("cache: failed to write hot cache")
	}
}
