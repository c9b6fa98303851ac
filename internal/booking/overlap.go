package booking

import "time"

// Overlaps reports whether [start, end] conflicts with [otherStart, otherEnd].
// Only strict separation is free: sharing a boundary instant is a conflict.
func Overlaps(start, end, otherStart, otherEnd time.Time) bool {
	return !(end.Before(otherStart) || start.After(otherEnd))
}

// firstConflict scans existing bookings of an item for one that overlaps [start, end].
// Every status counts.
func firstConflict(start, end time.Time, existing []*Booking) *Booking {
	for _, b := range existing {
		if Overlaps(start, end, b.Start, b.End) {
			return b
		}
	}
	return nil
}
