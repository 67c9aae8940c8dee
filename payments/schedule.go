package payments

import "time"

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// ResolveDueDates computes the three-installment due-date ladder for a trip.
// Each date starts at its nominal offset before travel, then collapses
// forward so the ladder stays strictly increasing and after today. When the
// forward pass pushes the last date past the travel date, the ladder is
// pulled backward from travelDate-1 instead, sacrificing spacing to keep
// every date before travel.
func ResolveDueDates(today, travelDate time.Time, offsets [3]int) [3]time.Time {
	today = day(today)
	travelDate = day(travelDate)

	d1 := addDays(travelDate, -offsets[0])
	d2 := addDays(travelDate, -offsets[1])
	d3 := addDays(travelDate, -offsets[2])

	if !d1.After(today) {
		d1 = addDays(today, 1)
	}
	if !d2.After(d1) {
		d2 = addDays(d1, 7)
	}
	if !d3.After(d2) {
		d3 = addDays(d2, 7)
	}
	if !d3.Before(travelDate) {
		d3 = addDays(travelDate, -1)
		if !d3.After(d2) {
			d2 = addDays(d3, -1)
		}
		if !d2.After(d1) {
			d1 = addDays(d2, -1)
		}
		if !d1.After(today) {
			d1 = addDays(today, 1)
		}
	}

	return [3]time.Time{d1, d2, d3}
}

// ladderValid reports whether the resolved dates satisfy
// today < d1 < d2 < d3 < travelDate. Very near-term travel dates cannot fit
// three dates in range; plan creation rejects those rather than persisting a
// non-monotonic schedule.
func ladderValid(today, travelDate time.Time, dates [3]time.Time) bool {
	return dates[0].After(day(today)) &&
		dates[1].After(dates[0]) &&
		dates[2].After(dates[1]) &&
		dates[2].Before(day(travelDate))
}

// SplitAmount divides total into parts integer shares that sum exactly to
// total. The remainder spreads one unit each across the leading shares.
func SplitAmount(total int64, parts int) []int64 {
	base := total / int64(parts)
	remainder := total % int64(parts)

	amounts := make([]int64, parts)
	for i := range amounts {
		amounts[i] = base
		if int64(i) < remainder {
			amounts[i]++
		}
	}
	return amounts
}
