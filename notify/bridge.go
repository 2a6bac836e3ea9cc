// ABOUTME: Notification bridge boundary for device reminders
// ABOUTME: Defines the Reconcile contract and a logging default
package notify

import (
	"log"

	"github.com/harperreed/pipetrack/models"
)

// Bridge receives the full set of pending follow-ups with resolved entity
// details after every follow-up-affecting mutation and is responsible for
// scheduling and cancelling device reminders. Delivery is best-effort: the
// core logs Reconcile failures and moves on.
type Bridge interface {
	Reconcile(pending []models.FollowUpDetail) error
}

// LogBridge is the default bridge. It only logs; useful for the CLI shell
// and anywhere no reminder backend is attached.
type LogBridge struct{}

func (LogBridge) Reconcile(pending []models.FollowUpDetail) error {
	log.Printf("notify: %d pending follow-ups", len(pending))
	return nil
}
