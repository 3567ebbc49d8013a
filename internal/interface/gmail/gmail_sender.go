package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/internal/domain/repository"
	"github.com/amenegatti1/flight-price-monitor/pkg/logger"
)

// GmailSender sends plain-text notification emails through the Gmail API
type GmailSender struct {
	gmailService *gmail.Service
	from         string
	to           string
	logger       logger.Logger
}

// NewGmailSender creates a new Gmail sender
func NewGmailSender(ctx context.Context, tokenSource oauth2.TokenSource, from, to string, logger logger.Logger) (repository.NotifierRepository, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailSender{
		gmailService: service,
		from:         from,
		to:           to,
		logger:       logger,
	}, nil
}

// Send delivers one plain-text email. Failures come back as
// NotificationError so callers can degrade instead of aborting the pass.
func (s *GmailSender) Send(ctx context.Context, subject, body string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", s.to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", encodeSubject(subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	raw := base64.URLEncoding.EncodeToString([]byte(msg.String()))
	_, err := s.gmailService.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return &entity.NotificationError{Err: err}
	}

	s.logger.Info("Notification sent", "to", s.to, "subject", subject)
	return nil
}

// encodeSubject RFC 2047-encodes the subject so non-ASCII characters
// survive transport
func encodeSubject(subject string) string {
	for _, r := range subject {
		if r > 127 {
			return fmt.Sprintf("=?UTF-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(subject)))
		}
	}
	return subject
}
