package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

//go:generate mockgen -source=ses.go -destination=mocks/ses.go -package=mocks

// EmailMessage é um e-mail pronto para envio
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender envia e-mails e devolve o id atribuído pelo provedor
type Sender interface {
	Send(ctx context.Context, msg *EmailMessage) (string, error)
}

// sesAPI é o subconjunto do cliente SES usado aqui
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESSender struct {
	client    sesAPI
	fromEmail string
	fromName  string
}

func NewSESSender(ctx context.Context, cfg config.Email) (*SESSender, error) {
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("%w: EMAIL_FROM_ADDRESS", domain.ErrConfiguration)
	}

	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	// Sem chaves explícitas vale a cadeia padrão da AWS (variáveis de ambiente, perfil, role)
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração da AWS: %w", err)
	}

	return newSESSender(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newSESSender(client sesAPI, cfg config.Email) *SESSender {
	return &SESSender{
		client:    client,
		fromEmail: cfg.FromAddress,
		fromName:  cfg.FromName,
	}
}

func (s *SESSender) Send(ctx context.Context, msg *EmailMessage) (string, error) {
	if msg == nil || msg.To == "" {
		return "", domain.NewValidationError("to", "destinatário obrigatório")
	}

	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	body := &types.Body{
		Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
	}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}

	output, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao enviar e-mail pelo SES")
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", domain.ErrTimeout, err)
		}
		return "", fmt.Errorf("erro ao enviar e-mail: %w", err)
	}

	return aws.ToString(output.MessageId), nil
}

// DisabledSender recusa todo envio; usado quando o SES não está configurado
type DisabledSender struct{}

func (DisabledSender) Send(ctx context.Context, msg *EmailMessage) (string, error) {
	return "", fmt.Errorf("%w: envio de e-mails desabilitado", domain.ErrConfiguration)
}
