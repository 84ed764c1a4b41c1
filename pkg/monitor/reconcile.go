package monitor

import "github.com/headsetmon/headsetmon/pkg/headset"

// ReconcileResult describes what a fresh device list means for the UI.
type ReconcileResult struct {
	// SelectedIndex is the device to display, clamped into the fresh
	// list. -1 when the list is empty; the caller must short-circuit to
	// the no-adapter path in that case.
	SelectedIndex int
	// MenuChanged is true when the device menu must be rebuilt. Only a
	// count change triggers a rebuild; reordering at the same count is a
	// deliberately cheap non-event.
	MenuChanged bool
}

// Reconcile compares the freshly polled device list against the previous
// poll and clamps the current selection so it never indexes out of range
// when devices disappear.
func Reconcile(previousCount, selected int, fresh []headset.Device) ReconcileResult {
	result := ReconcileResult{
		MenuChanged: len(fresh) != previousCount,
	}

	if len(fresh) == 0 {
		result.SelectedIndex = -1
		return result
	}

	if selected < 0 {
		selected = 0
	}
	if selected > len(fresh)-1 {
		selected = len(fresh) - 1
	}
	result.SelectedIndex = selected

	return result
}
