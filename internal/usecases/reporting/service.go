package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/notification"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reporter executa o lote de envio dos resumos por e-mail
type Reporter interface {
	Run(ctx context.Context) (*domain.InsightsRunResult, error)
}

type Service struct {
	subscriptions repository.InsightsSubscriptionRepository
	logs          repository.InsightsEmailLogRepository
	profiles      repository.UserProfileRepository
	accounts      repository.GoogleAdsAccountRepository
	insights      insighting.Insighter
	renderer      *Renderer
	sender        notification.Sender
	tolerance     time.Duration
	maxConcurrent int
	now           func() time.Time
}

func NewService(
	cfg *config.Config,
	subscriptions repository.InsightsSubscriptionRepository,
	logs repository.InsightsEmailLogRepository,
	profiles repository.UserProfileRepository,
	accounts repository.GoogleAdsAccountRepository,
	insights insighting.Insighter,
	renderer *Renderer,
	sender notification.Sender,
) *Service {
	tolerance := DefaultTolerance
	if cfg.InsightsEmail.ToleranceMinutes > 0 {
		tolerance = time.Duration(cfg.InsightsEmail.ToleranceMinutes) * time.Minute
	}

	maxConcurrent := cfg.InsightsEmail.MaxConcurrentJobs
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}

	return &Service{
		subscriptions: subscriptions,
		logs:          logs,
		profiles:      profiles,
		accounts:      accounts,
		insights:      insights,
		renderer:      renderer,
		sender:        sender,
		tolerance:     tolerance,
		maxConcurrent: maxConcurrent,
		now:           time.Now,
	}
}

// Run processa as assinaturas devidas. Falhas de um item nunca interrompem o lote.
func (s *Service) Run(ctx context.Context) (*domain.InsightsRunResult, error) {
	now := s.now()

	subscriptions, err := s.subscriptions.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar assinaturas: %w", err)
	}

	due := make([]*domain.InsightsSubscription, 0, len(subscriptions))
	for _, sub := range subscriptions {
		if IsDue(sub, now, s.tolerance) {
			due = append(due, sub)
		}
	}

	result := &domain.InsightsRunResult{Processed: len(due)}
	if len(due) == 0 {
		logrus.Debug("insights: no subscriptions due")
		return result, nil
	}

	var (
		mu       sync.Mutex
		failures error
	)

	group := &errgroup.Group{}
	group.SetLimit(s.maxConcurrent)

	for _, sub := range due {
		group.Go(func() error {
			err := s.deliver(ctx, sub, now)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed++
				failures = multierr.Append(failures, fmt.Errorf("assinatura %s: %w", sub.ID, err))
				return nil
			}
			result.Sent++
			return nil
		})
	}

	_ = group.Wait()

	fields := logrus.Fields{
		"processed": result.Processed,
		"sent":      result.Sent,
		"failed":    result.Failed,
	}
	if failures != nil {
		logrus.WithFields(fields).WithError(failures).Warn("insights: email batch finished with failures")
	} else {
		logrus.WithFields(fields).Info("insights: email batch finished")
	}

	return result, nil
}

// deliver envia um resumo e registra o resultado no log de envios
func (s *Service) deliver(ctx context.Context, sub *domain.InsightsSubscription, now time.Time) error {
	logger := logrus.WithFields(logrus.Fields{
		"subscription_id": sub.ID,
		"user_id":         sub.UserID,
	})

	profile, err := s.profiles.GetByID(ctx, sub.UserID)
	if err != nil {
		s.recordFailure(ctx, sub, "", nil, err)
		return err
	}
	if profile == nil || profile.Email == "" {
		err := fmt.Errorf("%w: perfil do usuário", domain.ErrNotFound)
		s.recordFailure(ctx, sub, "", nil, err)
		return err
	}

	account, err := s.accounts.GetByID(ctx, sub.GoogleAdsAccountID)
	if err != nil {
		s.recordFailure(ctx, sub, profile.Email, nil, err)
		return err
	}
	if account == nil {
		err := fmt.Errorf("%w: conta do Google Ads", domain.ErrNotFound)
		s.recordFailure(ctx, sub, profile.Email, nil, err)
		return err
	}

	startDate, endDate := utils.WindowEndingYesterday(now, location(sub.TimeZone), windowDays[sub.Frequency])

	metrics, err := s.insights.AggregateAccountMetrics(ctx, account, startDate, endDate)
	if err != nil {
		s.recordFailure(ctx, sub, profile.Email, nil, err)
		return err
	}

	snapshot, err := json.Marshal(metrics)
	if err != nil {
		logger.WithError(err).Warn("insights: failed to serialize metrics snapshot")
		snapshot = nil
	}

	name := ""
	if profile.FullName != nil {
		name = *profile.FullName
	}
	currency := ""
	if account.CurrencyCode != nil {
		currency = *account.CurrencyCode
	}

	rendered, err := s.renderer.Render(SummaryData{
		Name:        name,
		AccountName: account.AccountName,
		Currency:    currency,
		Frequency:   sub.Frequency,
		StartDate:   startDate,
		EndDate:     endDate,
		Metrics:     metrics,
		Selected:    sub.SelectedMetrics,
	})
	if err != nil {
		s.recordFailure(ctx, sub, profile.Email, snapshot, err)
		return err
	}

	messageID, err := s.sender.Send(ctx, &notification.EmailMessage{
		To:      profile.Email,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
	if err != nil {
		s.recordFailure(ctx, sub, profile.Email, snapshot, err)
		return err
	}

	entry := &domain.InsightsEmailLog{
		SubscriptionID:  sub.ID,
		UserID:          sub.UserID,
		RecipientEmail:  profile.Email,
		Status:          domain.EmailStatusSent,
		MetricsSnapshot: snapshot,
	}
	if messageID != "" {
		entry.ProviderMessageID = &messageID
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		logger.WithError(err).Error("Erro ao registrar envio de insights")
	}

	if err := s.subscriptions.UpdateLastSentAt(ctx, sub.ID, now); err != nil {
		logger.WithError(err).Error("Erro ao atualizar last_sent_at da assinatura")
	}

	logger.WithField("start_date", startDate).Info("insights: summary email sent")

	return nil
}

func (s *Service) recordFailure(ctx context.Context, sub *domain.InsightsSubscription, recipient string, snapshot []byte, cause error) {
	message := cause.Error()

	entry := &domain.InsightsEmailLog{
		SubscriptionID:  sub.ID,
		UserID:          sub.UserID,
		RecipientEmail:  recipient,
		Status:          domain.EmailStatusFailed,
		ErrorMessage:    &message,
		MetricsSnapshot: snapshot,
	}

	if err := s.logs.Create(ctx, entry); err != nil {
		logrus.WithError(err).WithField("subscription_id", sub.ID).Error("Erro ao registrar falha de envio de insights")
	}
}
