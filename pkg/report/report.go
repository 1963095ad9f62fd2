// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package report

import (
	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/uplift-data/uplift/pkg/models"
)

// Report is one failure observed by a pipeline stage: the execution it
// belongs to plus a flattened failure message
type Report struct {
	Execution models.Execution
	Message   string
}

type reportJSON struct {
	AccountConfig struct {
		GoogleAdsAccountID       string `json:"googleAdsAccountId"`
		MCC                      bool   `json:"mcc"`
		GoogleAnalyticsAccountID string `json:"googleAnalyticsAccountId"`
		CampaignManagerAccountID string `json:"campaignManagerAccountId"`
		AppID                    string `json:"appId"`
	} `json:"accountConfig"`
	Source struct {
		Name   string   `json:"name"`
		Type   string   `json:"type"`
		Fields []string `json:"fields"`
	} `json:"source"`
	Destination struct {
		Name   string   `json:"name"`
		Type   string   `json:"type"`
		Fields []string `json:"fields"`
	} `json:"destination"`
	Message string `json:"message"`
}

// Parse decodes one JSON failure report and validates its identity fields
func Parse(data []byte) (*Report, error) {
	var raw reportJSON
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal failure report")
	}

	if raw.Source.Name == "" || raw.Destination.Name == "" {
		return nil, errors.New("Failure report is missing source or destination name")
	}
	if raw.Message == "" {
		return nil, errors.New("Failure report is missing a message")
	}

	sourceType, err := models.ParseSourceType(raw.Source.Type)
	if err != nil {
		return nil, err
	}
	destinationType, err := models.ParseDestinationType(raw.Destination.Type)
	if err != nil {
		return nil, err
	}

	return &Report{
		Execution: models.Execution{
			AccountConfig: models.AccountConfig{
				GoogleAdsAccountID:       raw.AccountConfig.GoogleAdsAccountID,
				MCC:                      raw.AccountConfig.MCC,
				GoogleAnalyticsAccountID: raw.AccountConfig.GoogleAnalyticsAccountID,
				CampaignManagerAccountID: raw.AccountConfig.CampaignManagerAccountID,
				AppID:                    raw.AccountConfig.AppID,
			},
			Source: models.Source{
				Name:   raw.Source.Name,
				Type:   sourceType,
				Fields: raw.Source.Fields,
			},
			Destination: models.Destination{
				Name:   raw.Destination.Name,
				Type:   destinationType,
				Fields: raw.Destination.Fields,
			},
		},
		Message: raw.Message,
	}, nil
}
