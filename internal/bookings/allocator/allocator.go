// Package allocator turns an area requirement into a concrete slot
// selection, honoring the physical counter-rotating column numbering and
// keeping manual edits sticky for the rest of the booking session.
package allocator

import (
	"math"
	"time"

	"lagerbok/pkg/model"
)

// LayoutOrder reproduces the physical slot numbering: the list is split at
// the midpoint (first half takes the extra slot on odd counts), the first
// half is reversed, and the halves are interleaved. AutoSelect consumes
// slots in this order, not storage order.
func LayoutOrder(slots []model.Slot) []model.Slot {
	n := len(slots)
	if n == 0 {
		return []model.Slot{}
	}

	mid := (n + 1) / 2
	left := slots[:mid]
	right := slots[mid:]

	ordered := make([]model.Slot, 0, n)
	for i := 0; i < mid; i++ {
		ordered = append(ordered, left[mid-1-i])
		if i < len(right) {
			ordered = append(ordered, right[i])
		}
	}

	return ordered
}

// RequiredSlotCount converts an area requirement into a slot count,
// ceil(minMeters/slotVolume), clamped so it never exceeds what exists.
func RequiredSlotCount(minMeters, slotVolume float64, available int) int {
	if minMeters <= 0 || slotVolume <= 0 || available <= 0 {
		return 0
	}

	required := int(math.Ceil(minMeters / slotVolume))
	if required > available {
		return available
	}
	return required
}

// Allocator owns the slot selection for one storage's booking session.
type Allocator struct {
	selected    []model.Slot
	userTouched bool
}

func New() *Allocator {
	return &Allocator{selected: []model.Slot{}}
}

// Selected returns the current selection in insertion order.
func (a *Allocator) Selected() []model.Slot {
	return a.selected
}

// UserTouched reports whether the user has manually edited the selection.
func (a *Allocator) UserTouched() bool {
	return a.userTouched
}

// AutoSelect fills the selection with the first count slots, in layout
// order, that are available for the interval. It is a no-op once the user
// has touched the selection.
func (a *Allocator) AutoSelect(slots []model.Slot, start, end time.Time, count int) {
	if a.userTouched {
		return
	}

	selected := make([]model.Slot, 0, count)
	for _, slot := range LayoutOrder(slots) {
		if len(selected) == count {
			break
		}
		if slot.AvailableFor(start, end) {
			selected = append(selected, slot)
		}
	}
	a.selected = selected
}

// Toggle adds or removes an available slot. Unavailable slots are not
// clickable and leave the selection untouched. Any successful toggle makes
// the selection sticky: auto-selection is disabled for the rest of the
// session, even if the user empties the selection entirely.
func (a *Allocator) Toggle(slot model.Slot, start, end time.Time) {
	if !slot.AvailableFor(start, end) {
		return
	}

	a.userTouched = true

	for i, sel := range a.selected {
		if sel.ID == slot.ID {
			a.selected = append(a.selected[:i], a.selected[i+1:]...)
			return
		}
	}
	a.selected = append(a.selected, slot)
}

// CriteriaChanged is called when the date range or required count changes.
// Auto-selection re-runs unless the user has touched the selection; a
// touched selection is only pruned of slots that are no longer available.
func (a *Allocator) CriteriaChanged(slots []model.Slot, start, end time.Time, count int) {
	if a.userTouched {
		a.prune(slots, start, end)
		return
	}

	a.AutoSelect(slots, start, end, count)
}

func (a *Allocator) prune(slots []model.Slot, start, end time.Time) {
	kept := a.selected[:0]
	for _, sel := range a.selected {
		current, ok := findSlot(slots, sel.ID)
		if !ok {
			continue
		}
		if current.AvailableFor(start, end) {
			kept = append(kept, current)
		}
	}
	a.selected = kept
}

func findSlot(slots []model.Slot, id int64) (model.Slot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return model.Slot{}, false
}
