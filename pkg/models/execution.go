// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// SourceType denotes the kind of system records are read from
type SourceType string

const (
	SourceTypeBigQuery SourceType = "BIG_QUERY"
	SourceTypeCSV      SourceType = "CSV"
	SourceTypeFile     SourceType = "FILE"
)

// sourceTypes is the closed set of valid source types
var sourceTypes = map[SourceType]bool{
	SourceTypeBigQuery: true,
	SourceTypeCSV:      true,
	SourceTypeFile:     true,
}

// ParseSourceType returns the SourceType behind its string representation
func ParseSourceType(s string) (SourceType, error) {
	st := SourceType(s)
	if !sourceTypes[st] {
		return "", fmt.Errorf("Invalid source type found; expected one of 'BIG_QUERY, CSV, FILE' and got '%s'", s)
	}
	return st, nil
}

// DestinationType denotes the kind of external system receiving records
type DestinationType string

const (
	AdsOfflineConversion      DestinationType = "ADS_OFFLINE_CONVERSION"
	AdsSSDUpload              DestinationType = "ADS_SSD_UPLOAD"
	AdsEnhancedConversion     DestinationType = "ADS_ENHANCED_CONVERSION"
	AdsCustomerMatchContact   DestinationType = "ADS_CUSTOMER_MATCH_CONTACT_INFO_UPLOAD"
	AdsCustomerMatchDeviceID  DestinationType = "ADS_CUSTOMER_MATCH_MOBILE_DEVICE_ID_UPLOAD"
	AdsCustomerMatchUserID    DestinationType = "ADS_CUSTOMER_MATCH_USER_ID_UPLOAD"
	CMOfflineConversion       DestinationType = "CM_OFFLINE_CONVERSION"
	GAUserListUpload          DestinationType = "GA_USER_LIST_UPLOAD"
	GAMeasurementProtocol     DestinationType = "GA_MEASUREMENT_PROTOCOL"
	GADataImport              DestinationType = "GA_DATA_IMPORT"
	GA4MeasurementProtocol    DestinationType = "GA_4_MEASUREMENT_PROTOCOL"
	AppsFlyerS2SEvents        DestinationType = "APPSFLYER_S2S_EVENTS"
)

// destinationTypes is the closed set of valid destination types
var destinationTypes = map[DestinationType]bool{
	AdsOfflineConversion:     true,
	AdsSSDUpload:             true,
	AdsEnhancedConversion:    true,
	AdsCustomerMatchContact:  true,
	AdsCustomerMatchDeviceID: true,
	AdsCustomerMatchUserID:   true,
	CMOfflineConversion:      true,
	GAUserListUpload:         true,
	GAMeasurementProtocol:    true,
	GADataImport:             true,
	GA4MeasurementProtocol:   true,
	AppsFlyerS2SEvents:       true,
}

// ParseDestinationType returns the DestinationType behind its string representation
func ParseDestinationType(s string) (DestinationType, error) {
	dt := DestinationType(s)
	if !destinationTypes[dt] {
		return "", fmt.Errorf("Invalid destination type found; got '%s'", s)
	}
	return dt, nil
}

// AccountConfig holds the account level settings an execution runs under;
// the values are opaque to this layer and only contribute to execution identity
type AccountConfig struct {
	GoogleAdsAccountID       string
	MCC                      bool
	GoogleAnalyticsAccountID string
	CampaignManagerAccountID string
	AppID                    string
}

func (a AccountConfig) key() string {
	return strings.Join([]string{
		a.GoogleAdsAccountID,
		strconv.FormatBool(a.MCC),
		a.GoogleAnalyticsAccountID,
		a.CampaignManagerAccountID,
		a.AppID,
	}, "\x1f")
}

// Source identifies where records are read from; name, type and the ordered
// field names define its identity
type Source struct {
	Name   string
	Type   SourceType
	Fields []string
}

func (s Source) key() string {
	return strings.Join(append([]string{s.Name, string(s.Type)}, s.Fields...), "\x1f")
}

// Destination identifies where records are written to; same shape as Source
type Destination struct {
	Name   string
	Type   DestinationType
	Fields []string
}

func (d Destination) key() string {
	return strings.Join(append([]string{d.Name, string(d.Type)}, d.Fields...), "\x1f")
}

// Execution is one source to destination data-movement unit. It is a value
// object: two executions with the same account config, source and destination
// are the same unit of work.
type Execution struct {
	AccountConfig AccountConfig
	Source        Source
	Destination   Destination
}

// Key returns a stable composite of all identity fields so that an Execution
// can serve as a mapping key despite carrying field-name slices.
func (e Execution) Key() string {
	return strings.Join([]string{
		e.AccountConfig.key(),
		e.Source.key(),
		e.Destination.key(),
	}, "\x1e")
}

// Equals reports structural equality with another execution
func (e Execution) Equals(other Execution) bool {
	return e.Key() == other.Key()
}

func (e Execution) String() string {
	return fmt.Sprintf("Execution('%s' -> '%s')", e.Source.Name, e.Destination.Name)
}
