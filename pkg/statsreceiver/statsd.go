// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package statsreceiver

import (
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
	statsd "github.com/smira/go-statsd"

	"github.com/uplift-data/uplift/pkg/models"
)

// statsDStatsReceiver holds a new client for writing statistics to a StatsD server
type statsDStatsReceiver struct {
	client *statsd.Client
}

// NewStatsDStatsReceiver creates a new client for writing metrics to StatsD
func NewStatsDStatsReceiver(address string, prefix string, tagsRaw string, tagsMapClient map[string]string) (*statsDStatsReceiver, error) {
	tagsMap := map[string]string{}
	err := gojson.Unmarshal([]byte(tagsRaw), &tagsMap)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshall STATSD_TAGS to map")
	}

	var tags []statsd.Tag
	for key, value := range tagsMap {
		tags = append(tags, statsd.StringTag(key, value))
	}
	for key, value := range tagsMapClient {
		tags = append(tags, statsd.StringTag(key, value))
	}

	client := statsd.NewClient(address,
		statsd.MaxPacketSize(1400),
		statsd.MetricPrefix(fmt.Sprintf("%s.", prefix)),
		statsd.DefaultTags(tags...),
		statsd.ReconnectInterval(60*time.Second),
	)

	return &statsDStatsReceiver{
		client: client,
	}, nil
}

// Send emits the buffered run statistics to the receiver
func (s *statsDStatsReceiver) Send(b *models.ReportBuffer) {
	s.client.Incr("error_collected", b.ErrorsCollected)
	s.client.Incr("error_superseded", b.ErrorsSuperseded)
	s.client.Incr("report_sent", b.ReportsSent)
	s.client.Incr("report_suppressed", b.ReportsSuppressed)
	s.client.Incr("report_failed", b.ReportsFailed)
}
