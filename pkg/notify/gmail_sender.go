// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/uplift-data/uplift/pkg/models"
	"github.com/uplift-data/uplift/pkg/retry"
)

const (
	gmailSendAttempts  = 3
	gmailSendRetryWait = 1 * time.Second
)

// GmailAPISender sends messages through the Gmail API on behalf of the
// authenticated user, building an OAuth client from the supplied credentials
// on every send.
type GmailAPISender struct {
	log *log.Entry
}

// NewGmailAPISender creates a new client for sending messages through the
// Gmail API
func NewGmailAPISender() *GmailAPISender {
	return &GmailAPISender{
		log: log.WithFields(log.Fields{"sender": "gmail-api"}),
	}
}

// Send delivers one message to one recipient, retrying transient failures
func (s *GmailAPISender) Send(credentials models.OAuthCredentials, to string, subject string, body string) error {
	ctx := context.Background()

	conf := &oauth2.Config{
		ClientID:     credentials.ClientID,
		ClientSecret: credentials.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	token := &oauth2.Token{
		AccessToken:  credentials.AccessToken,
		RefreshToken: credentials.RefreshToken,
		TokenType:    "Bearer",
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, token)))
	if err != nil {
		return errors.Wrap(err, "Failed to build Gmail service")
	}

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(buildRawMessage(to, subject, body))),
	}

	s.log.Debugf("Sending error report to '%s' ...", to)
	return retry.Retry(gmailSendAttempts, gmailSendRetryWait, fmt.Sprintf("Failed to send message to '%s'", to), func() error {
		_, sendErr := service.Users.Messages.Send("me", message).Do()
		return sendErr
	})
}

// buildRawMessage assembles the RFC 822 payload the Gmail API expects
func buildRawMessage(to string, subject string, body string) string {
	return fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		to,
		subject,
		body,
	)
}
