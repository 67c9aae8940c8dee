package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var defaultOffsets = [3]int{DefaultOffsetFirst, DefaultOffsetSecond, DefaultOffsetThird}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSplitAmountSumsToTotal(t *testing.T) {
	for _, total := range []int64{1, 2, 3, 10, 99, 100, 101, 999999, 1000000} {
		amounts := SplitAmount(total, 3)
		assert.Len(t, amounts, 3)

		var sum int64
		for _, amount := range amounts {
			sum += amount
		}
		assert.Equal(t, total, sum, "split of %d must sum back", total)

		base := total / 3
		remainder := total % 3
		for i, amount := range amounts {
			if int64(i) < remainder {
				assert.Equal(t, base+1, amount)
			} else {
				assert.Equal(t, base, amount)
			}
		}
	}
}

func TestResolveDueDatesFarFuture(t *testing.T) {
	today := date(2026, time.March, 1)
	travel := today.AddDate(0, 0, 100)

	dates := ResolveDueDates(today, travel, defaultOffsets)

	assert.Equal(t, travel.AddDate(0, 0, -45), dates[0])
	assert.Equal(t, travel.AddDate(0, 0, -30), dates[1])
	assert.Equal(t, travel.AddDate(0, 0, -15), dates[2])
}

func TestResolveDueDatesExactlyAtFirstOffset(t *testing.T) {
	// Travel 46 days out keeps the nominal ladder with d1 at today+1.
	today := date(2026, time.March, 1)
	travel := today.AddDate(0, 0, 46)

	dates := ResolveDueDates(today, travel, defaultOffsets)

	assert.Equal(t, today.AddDate(0, 0, 1), dates[0])
	assert.Equal(t, travel.AddDate(0, 0, -30), dates[1])
	assert.Equal(t, travel.AddDate(0, 0, -15), dates[2])
	assert.True(t, ladderValid(today, travel, dates))
}

func TestResolveDueDatesNearTermCollapse(t *testing.T) {
	today := date(2026, time.March, 1)

	// Travel dates close enough to force the backward pass but far enough
	// to fit three dates must still produce a strictly increasing in-range
	// ladder.
	for days := 4; days <= 20; days++ {
		travel := today.AddDate(0, 0, days)
		dates := ResolveDueDates(today, travel, defaultOffsets)

		assert.True(t, dates[0].After(today), "d1 must be after today for travel +%d", days)
		assert.True(t, dates[1].After(dates[0]), "d2 must follow d1 for travel +%d", days)
		assert.True(t, dates[2].After(dates[1]), "d3 must follow d2 for travel +%d", days)
		assert.True(t, dates[2].Before(travel), "d3 must precede travel for travel +%d", days)
		assert.True(t, ladderValid(today, travel, dates))
	}
}

func TestResolveDueDatesFiveDaysOut(t *testing.T) {
	today := date(2026, time.March, 1)
	travel := today.AddDate(0, 0, 5)

	dates := ResolveDueDates(today, travel, defaultOffsets)

	assert.Equal(t, today.AddDate(0, 0, 1), dates[0])
	assert.Equal(t, today.AddDate(0, 0, 3), dates[1])
	assert.Equal(t, today.AddDate(0, 0, 4), dates[2])
}

func TestResolveDueDatesDegenerateBoundary(t *testing.T) {
	// Three days out there is no room for three distinct dates between
	// today and travel; the collapsed ladder ties d1 and d2 and ladderValid
	// flags it so plan creation can reject.
	today := date(2026, time.March, 1)
	travel := today.AddDate(0, 0, 3)

	dates := ResolveDueDates(today, travel, defaultOffsets)

	assert.Equal(t, today.AddDate(0, 0, 1), dates[0])
	assert.Equal(t, today.AddDate(0, 0, 1), dates[1])
	assert.Equal(t, today.AddDate(0, 0, 2), dates[2])
	assert.False(t, ladderValid(today, travel, dates))
}

func TestResolveDueDatesCustomOffsets(t *testing.T) {
	today := date(2026, time.March, 1)
	travel := today.AddDate(0, 0, 120)

	dates := ResolveDueDates(today, travel, [3]int{60, 40, 20})

	assert.Equal(t, travel.AddDate(0, 0, -60), dates[0])
	assert.Equal(t, travel.AddDate(0, 0, -40), dates[1])
	assert.Equal(t, travel.AddDate(0, 0, -20), dates[2])
}
