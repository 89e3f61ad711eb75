// Package notify sends desktop notifications and terminal-adjacent
// audio cues when a timer phase ends. Everything here is best effort:
// a headless or muted environment returns an error the caller may
// show in the status bar, never act on.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/ebincan/gomodoro/internal/session"
)

const appTitle = "Gomodoro"

// PhaseDone raises a desktop notification announcing the phase that
// just finished and the one that follows.
func PhaseDone(from, to session.Phase) error {
	if err := beeep.Notify(appTitle, phaseMessage(from, to), ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// Beep plays a short attention tone.
func Beep() error {
	if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		return fmt.Errorf("beep: %w", err)
	}
	return nil
}

func phaseMessage(from, to session.Phase) string {
	return fmt.Sprintf("%s finished! Time for your %s.", from, to)
}
