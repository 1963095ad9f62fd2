// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package retry

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Retry executes f up to attempts times, sleeping between tries with
// exponential backoff and jitter. The last error is wrapped with prefix.
func Retry(attempts int, sleep time.Duration, prefix string, f func() error) error {
	var err error

	for attempt := 1; ; attempt++ {
		err = f()
		if err == nil {
			return nil
		}
		if attempt >= attempts {
			break
		}

		log.Warnf("Retrying func (attempt %d of %d): %s: %s", attempt, attempts, prefix, err)

		jitter := time.Duration(rand.Int63n(int64(sleep)))
		time.Sleep(sleep + jitter/2)
		sleep = 2 * sleep
	}

	return errors.Wrap(err, prefix)
}
