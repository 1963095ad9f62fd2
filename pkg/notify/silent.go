// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package notify

import (
	"github.com/uplift-data/uplift/pkg/models"
)

// SilentNotifier discards every batch it is handed. It is the default sink
// when no notification channel is configured, keeping handlers total.
type SilentNotifier struct{}

// NewSilentNotifier creates a new notifier that drops everything
func NewSilentNotifier() *SilentNotifier {
	return &SilentNotifier{}
}

// Notify does nothing with the batch
func (n *SilentNotifier) Notify(destinationType models.DestinationType, errs []models.Error) error {
	return nil
}
