package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"campusevents/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SendTimeout time.Duration
	SES         SESConfig
}

// NewMailer creates a mailer from config. Provider "ses" uses AWS SES; anything else logs the
// message instead of sending it.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	if config.Provider != "ses" {
		if config.Provider != "noop" && config.Provider != "" {
			logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		}
		return &noopMailer{logger: logger}, nil
	}
	if config.FromAddress == "" {
		return nil, fmt.Errorf("ses mailer: from address is required")
	}
	if config.SES.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for SES; use only in development")
	}
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: config.SES.InsecureSkipVerify,
				MinVersion:         tls.VersionTLS12,
			},
		},
	}
	awsCfg := aws.Config{
		Region: config.SES.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(config.SES.AccessKeyID, config.SES.SecretAccessKey, ""),
		),
		HTTPClient: httpClient,
	}
	timeout := config.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &sesMailer{
		client:  ses.NewFromConfig(awsCfg),
		source:  formatSource(config.FromName, config.FromAddress),
		timeout: timeout,
		logger:  logger,
	}, nil
}

func formatSource(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

type sesMailer struct {
	client  *ses.Client
	source  string
	timeout time.Duration
	logger  *slog.Logger
}

func utf8Content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

func buildSendEmailInput(source, to, subject, html, text string) *ses.SendEmailInput {
	input := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: utf8Content(subject),
			Body:    &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = utf8Content(html)
	}
	if text != "" {
		input.Message.Body.Text = utf8Content(text)
	}
	return input
}

func (s *sesMailer) Send(to, subject, html, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	result, err := s.client.SendEmail(ctx, buildSendEmailInput(s.source, to, subject, html, text))
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	s.logger.Info("email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(to, subject, html, text string) error {
	n.logger.Debug("email not sent (noop mailer)", "to", to, "subject", subject)
	return nil
}
