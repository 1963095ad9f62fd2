// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package notify

import (
	"io"
	"net/http"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"

	"github.com/uplift-data/uplift/pkg/models"
)

// --- Test WebhookClient

type TestWebhookClient struct {
	requests []*http.Request
	bodies   []string
	status   int
}

func (c *TestWebhookClient) Do(req *http.Request) (*http.Response, error) {
	c.requests = append(c.requests, req)
	body, _ := io.ReadAll(req.Body)
	c.bodies = append(c.bodies, string(body))

	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		Status:     http.StatusText(status),
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

// --- Tests

func TestWebhookNotifier_PostsOneRequestPerNotify(t *testing.T) {
	assert := assert.New(t)

	client := &TestWebhookClient{}
	notifier := NewWebhookNotifier("uplift", "0.1.0", client, "https://example.com/hooks/errors")

	err := notifier.Notify(models.CMOfflineConversion, testErrors())
	assert.Nil(err)
	assert.Equal(1, len(client.requests))
	assert.Equal("application/json", client.requests[0].Header.Get("Content-Type"))

	var event webhookEvent
	assert.Nil(gojson.Unmarshal([]byte(client.bodies[0]), &event))
	assert.Equal("uplift", event.AppName)
	assert.Equal("CM_OFFLINE_CONVERSION", event.DestinationType)
	assert.Equal(1, len(event.Errors))
	assert.Equal("s", event.Errors[0].Source)
	assert.Equal("d", event.Errors[0].Destination)
	assert.Equal("error message", event.Errors[0].Message)
}

func TestWebhookNotifier_BadStatusIsAnError(t *testing.T) {
	assert := assert.New(t)

	client := &TestWebhookClient{status: http.StatusBadGateway}
	notifier := NewWebhookNotifier("uplift", "0.1.0", client, "https://example.com/hooks/errors")

	err := notifier.Notify(models.CMOfflineConversion, testErrors())
	assert.NotNil(err)
	assert.Equal(webhookSendAttempts, len(client.requests))
}

func TestSilentNotifier(t *testing.T) {
	assert := assert.New(t)

	notifier := NewSilentNotifier()
	assert.Nil(notifier.Notify(models.AdsOfflineConversion, testErrors()))
}
