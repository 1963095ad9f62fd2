// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"

	"github.com/uplift-data/uplift/pkg/models"
	"github.com/uplift-data/uplift/pkg/notify"
	"github.com/uplift-data/uplift/pkg/notify/notifyiface"
	"github.com/uplift-data/uplift/pkg/statsreceiver"
	"github.com/uplift-data/uplift/pkg/statsreceiver/statsreceiveriface"
	"github.com/uplift-data/uplift/pkg/valueprovider"
)

// Config holds the configuration data along with the decoder to decode them
type Config struct {
	Data    *ConfigurationData
	Decoder Decoder
}

// ConfigurationData for holding all configuration options
type ConfigurationData struct {
	Notifier         *NotifierConfig `hcl:"notifier,block"`
	Sentry           *SentryConfig   `hcl:"sentry,block"`
	StatsReceiver    *StatsConfig    `hcl:"stats_receiver,block"`
	LogLevel         string          `hcl:"log_level,optional" env:"UPLIFT_LOG_LEVEL"`
	DestinationTypes string          `hcl:"destination_types,optional" env:"UPLIFT_DESTINATION_TYPES"`
}

// NotifierConfig holds configuration for the error notification channel
type NotifierConfig struct {
	Use     string                 `hcl:"use,optional" env:"UPLIFT_NOTIFIER"`
	Gmail   *GmailNotifierConfig   `hcl:"gmail,block"`
	Webhook *WebhookNotifierConfig `hcl:"webhook,block"`
}

// GmailNotifierConfig configures the email notification channel. The OAuth
// fields are handed through to the mail transport untouched.
type GmailNotifierConfig struct {
	ShouldNotify string `hcl:"should_notify,optional" env:"UPLIFT_NOTIFIER_GMAIL_SHOULD_NOTIFY"`
	Destinations string `hcl:"destinations,optional" env:"UPLIFT_NOTIFIER_GMAIL_DESTINATIONS"`
	ClientID     string `hcl:"client_id,optional" env:"UPLIFT_NOTIFIER_GMAIL_CLIENT_ID"`
	ClientSecret string `hcl:"client_secret,optional" env:"UPLIFT_NOTIFIER_GMAIL_CLIENT_SECRET"`
	AccessToken  string `hcl:"access_token,optional" env:"UPLIFT_NOTIFIER_GMAIL_ACCESS_TOKEN"`
	RefreshToken string `hcl:"refresh_token,optional" env:"UPLIFT_NOTIFIER_GMAIL_REFRESH_TOKEN"`
}

// WebhookNotifierConfig configures the webhook notification channel
type WebhookNotifierConfig struct {
	Endpoint string `hcl:"endpoint,optional" env:"UPLIFT_NOTIFIER_WEBHOOK_ENDPOINT"`
}

// SentryConfig configures the Sentry error tracker
type SentryConfig struct {
	Dsn   string `hcl:"dsn,optional" env:"SENTRY_DSN"`
	Tags  string `hcl:"tags,optional" env:"SENTRY_TAGS"`
	Debug bool   `hcl:"debug,optional" env:"SENTRY_DEBUG"`
}

// StatsConfig holds configuration for the optional stats receiver
type StatsConfig struct {
	Receiver string `hcl:"use,optional" env:"UPLIFT_STATS_RECEIVER"`
	Address  string `hcl:"address,optional" env:"UPLIFT_STATS_RECEIVER_STATSD_ADDRESS"`
	Prefix   string `hcl:"prefix,optional" env:"UPLIFT_STATS_RECEIVER_STATSD_PREFIX"`
	Tags     string `hcl:"tags,optional" env:"UPLIFT_STATS_RECEIVER_STATSD_TAGS"`
}

// defaultConfigData returns the initial main configuration target.
func defaultConfigData() *ConfigurationData {
	return &ConfigurationData{
		Notifier: &NotifierConfig{
			Use:     "silent",
			Gmail:   &GmailNotifierConfig{},
			Webhook: &WebhookNotifierConfig{},
		},
		Sentry: &SentryConfig{
			Tags: "{}",
		},
		StatsReceiver: &StatsConfig{
			Prefix: "uplift",
			Tags:   "{}",
		},
		LogLevel: "info",
	}
}

// NewConfig returns a configuration, either from the environment or from the
// HCL file named by UPLIFT_CONFIG_FILE
func NewConfig() (*Config, error) {
	filename := os.Getenv("UPLIFT_CONFIG_FILE")
	if filename == "" {
		return newEnvConfig()
	}

	switch suffix := strings.ToLower(filepath.Ext(filename)); suffix {
	case ".hcl":
		return newHclConfig(filename)
	default:
		return nil, errors.New("invalid extension for the configuration file")
	}
}

func newEnvConfig() (*Config, error) {
	decoderOpts := &DecoderOptions{}
	envDecoder := &EnvDecoder{}

	configData := defaultConfigData()

	if err := envDecoder.Decode(decoderOpts, configData); err != nil {
		return nil, err
	}

	return &Config{
		Data:    configData,
		Decoder: envDecoder,
	}, nil
}

func newHclConfig(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	fileHCL, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	configData := defaultConfigData()
	decoderOpts := &DecoderOptions{Input: fileHCL.Body}
	hclDecoder := &HclDecoder{EvalContext: CreateHclContext()}

	if err := hclDecoder.Decode(decoderOpts, configData); err != nil {
		return nil, err
	}

	return &Config{
		Data:    configData,
		Decoder: hclDecoder,
	}, nil
}

// GetNotifier builds and returns the notifier that is configured
func (c *Config) GetNotifier(appName string, appVersion string) (notifyiface.Notifier, error) {
	notifierConfig := c.Data.Notifier
	if notifierConfig == nil {
		notifierConfig = &NotifierConfig{Use: "silent"}
	}

	switch notifierConfig.Use {
	case "gmail":
		gmailConfig := notifierConfig.Gmail
		if gmailConfig == nil {
			gmailConfig = &GmailNotifierConfig{}
		}

		credentials := models.OAuthCredentials{
			ClientID:     gmailConfig.ClientID,
			ClientSecret: gmailConfig.ClientSecret,
			AccessToken:  gmailConfig.AccessToken,
			RefreshToken: gmailConfig.RefreshToken,
		}

		return notify.NewGmailNotifier(
			lateBoundValue(gmailConfig.ShouldNotify, "UPLIFT_NOTIFIER_GMAIL_SHOULD_NOTIFY"),
			credentials,
			lateBoundValue(gmailConfig.Destinations, "UPLIFT_NOTIFIER_GMAIL_DESTINATIONS"),
			notify.NewGmailAPISender(),
		), nil
	case "webhook":
		webhookConfig := notifierConfig.Webhook
		if webhookConfig == nil || webhookConfig.Endpoint == "" {
			return nil, errors.New("Webhook notifier requires an endpoint")
		}
		return notify.NewWebhookNotifier(appName, appVersion, http.DefaultClient, webhookConfig.Endpoint), nil
	case "silent", "":
		return notify.NewSilentNotifier(), nil
	default:
		return nil, errors.New(fmt.Sprintf("Invalid notifier found; expected one of 'gmail, webhook, silent' and got '%s'", notifierConfig.Use))
	}
}

// lateBoundValue prefers the decoded literal but falls back to resolving the
// environment variable at the point of use, so values supplied only at run
// time are still picked up.
func lateBoundValue(literal string, envKey string) valueprovider.Provider {
	if literal != "" {
		return valueprovider.Static(literal)
	}
	return valueprovider.FromEnv(envKey)
}

// GetDestinationTypes parses the optional comma separated list of destination
// types this instance should handle; nil means every known type is accepted
func (c *Config) GetDestinationTypes() ([]models.DestinationType, error) {
	raw := strings.TrimSpace(c.Data.DestinationTypes)
	if raw == "" {
		return nil, nil
	}

	var destinationTypes []models.DestinationType
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		dt, err := models.ParseDestinationType(piece)
		if err != nil {
			return nil, err
		}
		destinationTypes = append(destinationTypes, dt)
	}
	return destinationTypes, nil
}

// GetTags returns a list of tags to use in identifying this instance of
// uplift with enough entropy so as to avoid collisions
func (c *Config) GetTags() (map[string]string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to get server hostname as tag")
	}

	tags := map[string]string{
		"host":       hostname,
		"process_id": strconv.Itoa(os.Getpid()),
	}

	return tags, nil
}

// GetStatsReceiver builds and returns the stats receiver that is configured
func (c *Config) GetStatsReceiver(tags map[string]string) (statsreceiveriface.StatsReceiver, error) {
	statsConfig := c.Data.StatsReceiver
	if statsConfig == nil {
		return nil, nil
	}

	switch statsConfig.Receiver {
	case "statsd":
		return statsreceiver.NewStatsDStatsReceiver(
			statsConfig.Address,
			statsConfig.Prefix,
			statsConfig.Tags,
			tags,
		)
	case "":
		return nil, nil
	default:
		return nil, errors.New(fmt.Sprintf("Invalid stats receiver found; expected one of 'statsd' and got '%s'", statsConfig.Receiver))
	}
}
