package schedule

import "fmt"

// Block mirrors a BlockedPeriod for slot generation: a closed date, either
// salon-wide (ProfessionalID nil) or for one professional.
type Block struct {
	Date           string
	ProfessionalID *uint
}

type SlotInput struct {
	OpenTime    string // "HH:MM"
	CloseTime   string // "HH:MM"
	IntervalMin int

	Date           string // "YYYY-MM-DD", empty means no date selected
	ProfessionalID uint

	Blocked []Block

	// Start times ("HH:MM") of scheduled appointments for the selected
	// professional on Date. Slots matching one are not offered again.
	BookedTimes []string
}

// Slots produces the ordered candidate start times covering [open, close)
// stepping by the interval. The close time itself is never a slot.
func Slots(in SlotInput) []string {
	if in.Date == "" || in.IntervalMin <= 0 {
		return []string{}
	}

	open, okOpen := parseHM(in.OpenTime)
	end, okClose := parseHM(in.CloseTime)
	if !okOpen || !okClose || end <= open {
		return []string{}
	}

	for _, b := range in.Blocked {
		if b.Date != in.Date {
			continue
		}
		if b.ProfessionalID != nil && *b.ProfessionalID != in.ProfessionalID {
			continue
		}
		// A matching block closes the whole date.
		return []string{}
	}

	booked := make(map[string]struct{}, len(in.BookedTimes))
	for _, t := range in.BookedTimes {
		booked[t] = struct{}{}
	}

	slots := make([]string, 0, (end-open)/in.IntervalMin)
	for t := open; t < end; t += in.IntervalMin {
		hm := formatHM(t)
		if _, taken := booked[hm]; taken {
			continue
		}
		slots = append(slots, hm)
	}

	return slots
}

func parseHM(hm string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(hm, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
