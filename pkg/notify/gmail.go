// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package notify

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/uplift-data/uplift/pkg/models"
	"github.com/uplift-data/uplift/pkg/valueprovider"
)

// EmailSender describes the interface for the mail transport collaborator;
// one blocking send per recipient, failing independently per call.
type EmailSender interface {
	Send(credentials models.OAuthCredentials, to string, subject string, body string) error
}

const emailBodyTemplate = `Hello,

Errors occurred during the last data upload for destination type {{ .DestinationType }}:
{{ range .Errors }}
- {{ .Execution }}: {{ .Message }}
{{ end }}
This message was generated automatically, please do not reply.
`

var emailBody = template.Must(template.New("email_body").Parse(emailBodyTemplate))

// GmailNotifier delivers a batch of errors as one email per configured
// recipient. The should-notify flag and the recipient list are late bound
// and resolved on every Notify call.
type GmailNotifier struct {
	shouldNotify    valueprovider.Provider
	credentials     models.OAuthCredentials
	destinationsRaw valueprovider.Provider
	sender          EmailSender

	log *log.Entry
}

// NewGmailNotifier creates a new notifier which emails collected errors to
// every configured recipient through the given sender
func NewGmailNotifier(shouldNotify valueprovider.Provider, credentials models.OAuthCredentials, destinationsRaw valueprovider.Provider, sender EmailSender) *GmailNotifier {
	return &GmailNotifier{
		shouldNotify:    shouldNotify,
		credentials:     credentials,
		destinationsRaw: destinationsRaw,
		sender:          sender,
		log:             log.WithFields(log.Fields{"notifier": "gmail"}),
	}
}

// EmailDestinations parses the raw comma separated recipient list into a
// deduplicated, sorted set of addresses. An unset raw value yields an empty
// set rather than an error.
func (n *GmailNotifier) EmailDestinations() []string {
	raw, ok := n.destinationsRaw.Resolve()
	if !ok {
		return nil
	}

	seen := map[string]bool{}
	for _, piece := range strings.Split(raw, ",") {
		address := strings.TrimSpace(piece)
		if address == "" {
			continue
		}
		seen[address] = true
	}

	destinations := make([]string, 0, len(seen))
	for address := range seen {
		destinations = append(destinations, address)
	}
	sort.Strings(destinations)
	return destinations
}

// Notify emails the batch to every configured recipient. When the
// should-notify flag does not resolve to "true" nothing is sent and neither
// credentials nor destinations are touched. A failed recipient does not stop
// delivery attempts to the remaining ones; the failures are folded together
// and returned after all attempts.
func (n *GmailNotifier) Notify(destinationType models.DestinationType, errs []models.Error) error {
	flag, ok := n.shouldNotify.Resolve()
	if !ok || !strings.EqualFold(strings.TrimSpace(flag), "true") {
		n.log.Debug("Notification is disabled, suppressing error report")
		return nil
	}

	subject, body, err := renderEmail(destinationType, errs)
	if err != nil {
		return errors.Wrap(err, "Failed to render error report email")
	}

	var result *multierror.Error
	for _, to := range n.EmailDestinations() {
		if sendErr := n.sender.Send(n.credentials, to, subject, body); sendErr != nil {
			n.log.Warnf("Failed to deliver error report to '%s': %s", to, sendErr)
			result = multierror.Append(result, errors.Wrapf(sendErr, "failed to deliver error report to '%s'", to))
		}
	}

	return result.ErrorOrNil()
}

func renderEmail(destinationType models.DestinationType, errs []models.Error) (string, string, error) {
	subject := fmt.Sprintf("Errors occurred on data upload - %s", destinationType)

	var body strings.Builder
	err := emailBody.Execute(&body, struct {
		DestinationType models.DestinationType
		Errors          []models.Error
	}{destinationType, errs})
	if err != nil {
		return "", "", err
	}

	return subject, body.String(), nil
}
