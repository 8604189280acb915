package model

import (
	"errors"
	"fmt"
)

var ErrInvalidSlot = errors.New("model: invalid time slot")

// Slot is a canonical time-of-day value, stored as minutes since
// midnight so that slot ordering never re-parses strings.
type Slot int

// ParseSlot parses a strict zero-padded 24-hour "HH:MM" string in the
// range 00:00-23:59. Anything else, including unpadded forms like
// "9:5", is rejected.
func ParseSlot(raw string) (Slot, error) {
	if len(raw) != 5 || raw[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, raw)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, raw)
		}
	}
	hour := int(raw[0]-'0')*10 + int(raw[1]-'0')
	minute := int(raw[3]-'0')*10 + int(raw[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, raw)
	}
	return Slot(hour*60 + minute), nil
}

func (s Slot) IsValid() bool {
	return s >= 0 && s < 24*60
}

// String renders the canonical zero-padded "HH:MM" form.
func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", int(s)/60, int(s)%60)
}
