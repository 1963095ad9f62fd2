// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package notify

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/uplift-data/uplift/pkg/models"
	"github.com/uplift-data/uplift/pkg/retry"
)

const (
	webhookSendAttempts  = 3
	webhookSendRetryWait = 1 * time.Second
)

// WebhookClient describes the interface for how to execute the webhook request
type WebhookClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type webhookEvent struct {
	AppName         string         `json:"appName"`
	AppVersion      string         `json:"appVersion"`
	DestinationType string         `json:"destinationType"`
	Errors          []webhookError `json:"errors"`
}

type webhookError struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Message     string `json:"message"`
}

// WebhookNotifier posts a batch of errors as one JSON document to a
// configured HTTP endpoint
type WebhookNotifier struct {
	appName    string
	appVersion string
	client     WebhookClient
	endpoint   string

	log *log.Entry
}

// NewWebhookNotifier creates a new notifier for posting error batches to a
// webhook endpoint
func NewWebhookNotifier(appName string, appVersion string, client WebhookClient, endpoint string) *WebhookNotifier {
	return &WebhookNotifier{
		appName:    appName,
		appVersion: appVersion,
		client:     client,
		endpoint:   endpoint,
		log:        log.WithFields(log.Fields{"notifier": "webhook"}),
	}
}

// Notify posts the batch to the endpoint, one request per flush
func (n *WebhookNotifier) Notify(destinationType models.DestinationType, errs []models.Error) error {
	event := webhookEvent{
		AppName:         n.appName,
		AppVersion:      n.appVersion,
		DestinationType: string(destinationType),
		Errors:          make([]webhookError, 0, len(errs)),
	}
	for _, e := range errs {
		event.Errors = append(event.Errors, webhookError{
			Source:      e.Execution.Source.Name,
			Destination: e.Execution.Destination.Name,
			Message:     e.Message,
		})
	}

	payload, err := gojson.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal webhook event")
	}

	n.log.Debugf("Posting %d error(s) to '%s' ...", len(errs), n.endpoint)
	return retry.Retry(webhookSendAttempts, webhookSendRetryWait, "Failed to post error report", func() error {
		req, reqErr := http.NewRequest(http.MethodPost, n.endpoint, bytes.NewReader(payload))
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		resp, sendErr := n.client.Do(req)
		if sendErr != nil {
			return sendErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("got response status '%s'", resp.Status)
		}
		return nil
	})
}
