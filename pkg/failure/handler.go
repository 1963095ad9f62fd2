// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package failure

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/uplift-data/uplift/pkg/models"
	"github.com/uplift-data/uplift/pkg/notify/notifyiface"
)

// InvalidDestinationTypeError is returned when an execution is reported to a
// handler configured for a different destination type. This is a wiring
// defect in the enclosing pipeline, not a data error.
type InvalidDestinationTypeError struct {
	Got  models.DestinationType
	Want models.DestinationType
}

func (e *InvalidDestinationTypeError) Error() string {
	return fmt.Sprintf("Invalid destination type for execution; expected '%s' and got '%s'", e.Want, e.Got)
}

// Handler aggregates at most one current error per execution for a single
// destination type and flushes the aggregated batch to a notifier on demand.
//
// A Handler is owned by one pipeline worker and is not safe for concurrent
// mutation; parallel sub-tasks must each own a private Handler or serialize
// access externally.
type Handler struct {
	destinationType models.DestinationType
	notifier        notifyiface.Notifier
	errors          map[string]models.Error
	buffer          models.ReportBuffer

	log *log.Entry
}

// NewHandler creates a new handler scoped to a destination type, flushing
// collected errors to the given notifier
func NewHandler(destinationType models.DestinationType, notifier notifyiface.Notifier) *Handler {
	return &Handler{
		destinationType: destinationType,
		notifier:        notifier,
		errors:          map[string]models.Error{},
		log:             log.WithFields(log.Fields{"name": "ErrorHandler", "destination_type": string(destinationType)}),
	}
}

// DestinationType returns the destination type this handler is scoped to
func (h *Handler) DestinationType() models.DestinationType {
	return h.destinationType
}

// AddError records a failure message for an execution. Re-adding an execution
// overwrites the previously stored message; only the latest one is retained.
// An execution whose destination type does not match the handler's fails
// without mutating state.
func (h *Handler) AddError(execution models.Execution, message string) error {
	if execution.Destination.Type != h.destinationType {
		return &InvalidDestinationTypeError{
			Got:  execution.Destination.Type,
			Want: h.destinationType,
		}
	}

	key := execution.Key()
	_, superseded := h.errors[key]
	h.errors[key] = models.Error{Execution: execution, Message: message}
	h.buffer.AppendCollected(superseded)

	return nil
}

// Errors returns a snapshot of the current batch, one entry per distinct
// execution carrying its most recently added message. The order is stable
// across calls. Reading does not clear the batch.
func (h *Handler) Errors() []models.Error {
	keys := make([]string, 0, len(h.errors))
	for key := range h.errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	errs := make([]models.Error, 0, len(keys))
	for _, key := range keys {
		errs = append(errs, h.errors[key])
	}
	return errs
}

// NotifyErrors flushes the collected batch to the notifier. An empty batch is
// a no-op and the notifier is not called. Delivery trouble is logged and
// contained here rather than propagated; the batch is kept after flushing, so
// a later flush reports the then-current full batch again.
func (h *Handler) NotifyErrors() {
	if len(h.errors) == 0 {
		h.log.Debug("No errors collected, skipping notification")
		h.buffer.AppendReportSuppressed()
		return
	}

	errs := h.Errors()
	h.log.Infof("Notifying %d error(s)", len(errs))

	if err := h.notifier.Notify(h.destinationType, errs); err != nil {
		h.log.WithFields(log.Fields{"error": err}).Error("Failed to deliver error notification")
		h.buffer.AppendReportFailed()
		return
	}
	h.buffer.AppendReportSent()
}

// Report returns the counters gathered by this handler so far
func (h *Handler) Report() models.ReportBuffer {
	return h.buffer
}
