package appointment

import "github.com/BruksfildServices01/barber-booking/internal/models"

type AvailabilityInput struct {
	BarbershopID uint
	Date         string
}

type Slot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

// SlotTimes lists every slot start from wh.Start while the start is before
// wh.End. The last slot may run past closing time.
func SlotTimes(wh models.WorkingHours) ([]string, error) {
	if err := ValidateWorkingHours(wh); err != nil {
		return nil, err
	}

	start, _ := ParseClock(wh.Start)
	end, _ := ParseClock(wh.End)

	times := make([]string, 0, (end-start)/wh.IntervalMin+1)
	for cur := start; cur < end; cur += wh.IntervalMin {
		times = append(times, FormatClock(cur))
	}
	return times, nil
}

// BuildSlots marks every time in taken as unavailable.
func BuildSlots(times []string, taken map[string]bool) []Slot {
	slots := make([]Slot, 0, len(times))
	for _, t := range times {
		slots = append(slots, Slot{Time: t, IsAvailable: !taken[t]})
	}
	return slots
}

// IsSlotTime reports whether clock is one of the slot starts of wh.
func IsSlotTime(wh models.WorkingHours, clock string) bool {
	times, err := SlotTimes(wh)
	if err != nil {
		return false
	}
	for _, t := range times {
		if t == clock {
			return true
		}
	}
	return false
}
