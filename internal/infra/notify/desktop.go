// Package notify surfaces daemon status through the system notification
// daemon.
package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

const title = "voicetype"

// Desktop shows status messages as desktop notifications.
type Desktop struct{}

func NewDesktop() *Desktop {
	return &Desktop{}
}

func (d *Desktop) Notify(_ context.Context, message string) error {
	return beeep.Notify(title, message, "")
}
