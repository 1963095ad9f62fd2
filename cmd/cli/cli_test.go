// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uplift-data/uplift/config"
	"github.com/uplift-data/uplift/pkg/models"
)

// --- Test Notifier

type TestNotifier struct {
	notifyCalls map[models.DestinationType]int
	errorsSent  map[models.DestinationType]int
}

func (n *TestNotifier) Notify(destinationType models.DestinationType, errs []models.Error) error {
	if n.notifyCalls == nil {
		n.notifyCalls = map[models.DestinationType]int{}
		n.errorsSent = map[models.DestinationType]int{}
	}
	n.notifyCalls[destinationType]++
	n.errorsSent[destinationType] += len(errs)
	return nil
}

func reportLine(sourceName string, destinationName string, destinationType string, message string) string {
	return `{"source":{"name":"` + sourceName + `","type":"BIG_QUERY","fields":["a"]},` +
		`"destination":{"name":"` + destinationName + `","type":"` + destinationType + `","fields":["b"]},` +
		`"message":"` + message + `"}`
}

// --- Tests

func TestCollectReports(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		reportLine("source1", "destination1", "ADS_OFFLINE_CONVERSION", "first error"),
		reportLine("source1", "destination1", "ADS_OFFLINE_CONVERSION", "second error"),
		reportLine("source2", "destination2", "CM_OFFLINE_CONVERSION", "other error"),
		"",
		"{malformed",
	}, "\n")

	notifier := &TestNotifier{}
	handlers, err := collectReports(strings.NewReader(input), notifier, nil)
	assert.Nil(err)
	assert.Equal(2, len(handlers))

	adsHandler := handlers[models.AdsOfflineConversion]
	assert.NotNil(adsHandler)
	adsErrors := adsHandler.Errors()
	assert.Equal(1, len(adsErrors))
	assert.Equal("second error", adsErrors[0].Message)

	cmHandler := handlers[models.CMOfflineConversion]
	assert.NotNil(cmHandler)
	assert.Equal(1, len(cmHandler.Errors()))
}

func TestCollectReports_AllowList(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		reportLine("source1", "destination1", "ADS_OFFLINE_CONVERSION", "first error"),
		reportLine("source2", "destination2", "CM_OFFLINE_CONVERSION", "other error"),
	}, "\n")

	notifier := &TestNotifier{}
	handlers, err := collectReports(strings.NewReader(input), notifier, []models.DestinationType{models.AdsOfflineConversion})
	assert.Nil(err)
	assert.Equal(1, len(handlers))
	assert.NotNil(handlers[models.AdsOfflineConversion])
	assert.Nil(handlers[models.CMOfflineConversion])
}

func TestFlushHandlers(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		reportLine("source1", "destination1", "ADS_OFFLINE_CONVERSION", "first error"),
		reportLine("source1", "destination1", "ADS_OFFLINE_CONVERSION", "second error"),
		reportLine("source2", "destination2", "CM_OFFLINE_CONVERSION", "other error"),
	}, "\n")

	notifier := &TestNotifier{}
	handlers, err := collectReports(strings.NewReader(input), notifier, nil)
	assert.Nil(err)

	buffer := flushHandlers(handlers)

	assert.Equal(1, notifier.notifyCalls[models.AdsOfflineConversion])
	assert.Equal(1, notifier.notifyCalls[models.CMOfflineConversion])
	assert.Equal(1, notifier.errorsSent[models.AdsOfflineConversion])
	assert.Equal(1, notifier.errorsSent[models.CMOfflineConversion])

	assert.Equal(int64(3), buffer.ErrorsCollected)
	assert.Equal(int64(1), buffer.ErrorsSuperseded)
	assert.Equal(int64(2), buffer.ReportsSent)
}

func TestRunApp(t *testing.T) {
	assert := assert.New(t)

	cfg, err := config.NewConfig()
	assert.Nil(err)

	input := strings.Join([]string{
		reportLine("source1", "destination1", "ADS_OFFLINE_CONVERSION", "first error"),
		reportLine("source2", "destination2", "CM_OFFLINE_CONVERSION", "other error"),
	}, "\n")

	buffer, err := RunApp(cfg, strings.NewReader(input))
	assert.Nil(err)
	assert.NotNil(buffer)
	assert.Equal(int64(2), buffer.ErrorsCollected)
	assert.Equal(int64(2), buffer.ReportsSent)
}

func TestRunApp_EmptyInput(t *testing.T) {
	assert := assert.New(t)

	cfg, err := config.NewConfig()
	assert.Nil(err)

	buffer, err := RunApp(cfg, strings.NewReader(""))
	assert.Nil(err)
	assert.NotNil(buffer)
	assert.Equal(int64(0), buffer.ErrorsCollected)
	assert.Equal(int64(0), buffer.ReportsSent)
}
