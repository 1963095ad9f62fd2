// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecution_Key(t *testing.T) {
	assert := assert.New(t)

	accountConfig := AccountConfig{GoogleAdsAccountID: "123-456-7890", MCC: true}
	source := Source{Name: "crm_conversions", Type: SourceTypeBigQuery, Fields: []string{"gclid", "time"}}
	destination := Destination{Name: "ads_dest", Type: AdsOfflineConversion, Fields: []string{"gclid"}}

	first := Execution{accountConfig, source, destination}
	second := Execution{accountConfig, source, destination}

	assert.Equal(first.Key(), second.Key())
	assert.True(first.Equals(second))
}

func TestExecution_Key_DistinguishesComponents(t *testing.T) {
	assert := assert.New(t)

	base := Execution{
		AccountConfig: AccountConfig{GoogleAdsAccountID: "123"},
		Source:        Source{Name: "source1", Type: SourceTypeBigQuery, Fields: []string{"a", "b"}},
		Destination:   Destination{Name: "destination1", Type: AdsOfflineConversion, Fields: []string{"c"}},
	}

	otherDestination := base
	otherDestination.Destination.Name = "destination2"
	assert.NotEqual(base.Key(), otherDestination.Key())
	assert.False(base.Equals(otherDestination))

	otherFields := base
	otherFields.Source = Source{Name: "source1", Type: SourceTypeBigQuery, Fields: []string{"a", "c"}}
	assert.NotEqual(base.Key(), otherFields.Key())

	otherAccount := base
	otherAccount.AccountConfig.MCC = true
	assert.NotEqual(base.Key(), otherAccount.Key())
}

func TestParseDestinationType(t *testing.T) {
	assert := assert.New(t)

	dt, err := ParseDestinationType("ADS_OFFLINE_CONVERSION")
	assert.Nil(err)
	assert.Equal(AdsOfflineConversion, dt)

	_, err = ParseDestinationType("TELEGRAM_UPLOAD")
	assert.NotNil(err)
}

func TestParseSourceType(t *testing.T) {
	assert := assert.New(t)

	st, err := ParseSourceType("BIG_QUERY")
	assert.Nil(err)
	assert.Equal(SourceTypeBigQuery, st)

	_, err = ParseSourceType("SPREADSHEET")
	assert.NotNil(err)
}

func TestReportBuffer(t *testing.T) {
	assert := assert.New(t)

	b := ReportBuffer{}
	b.AppendCollected(false)
	b.AppendCollected(true)
	b.AppendReportSent()
	b.AppendReportSuppressed()
	b.AppendReportFailed()

	other := ReportBuffer{}
	other.AppendCollected(false)
	b.Append(&other)

	assert.Equal(int64(3), b.ErrorsCollected)
	assert.Equal(int64(1), b.ErrorsSuperseded)
	assert.Equal(int64(1), b.ReportsSent)
	assert.Equal(int64(1), b.ReportsSuppressed)
	assert.Equal(int64(1), b.ReportsFailed)
	assert.Equal("ErrorsCollected:3,ErrorsSuperseded:1,ReportsSent:1,ReportsSuppressed:1,ReportsFailed:1", b.String())
}
