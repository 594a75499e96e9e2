package conditions

import (
	"context"
	"fmt"
	"time"
)

type timezoneOffset struct {
	hours int
}

// TimezoneOffsetEquals gates on the local UTC offset equalling the given
// signed hour count. Offsets outside the real-world -12..+14 range are a
// configuration error. Zones with a fractional-hour offset never match
// an integer hour count.
func TimezoneOffsetEquals(hours int) (Condition, error) {
	if hours < -12 || hours > 14 {
		return nil, fmt.Errorf("timezone offset %+d out of range -12..+14", hours)
	}
	return timezoneOffset{hours: hours}, nil
}

func (c timezoneOffset) Check(_ context.Context) (bool, string, error) {
	_, offset := time.Now().Zone()
	if offset == c.hours*3600 {
		return true, "", nil
	}
	return false, fmt.Sprintf("because the timezone offset is not %+d", c.hours), nil
}
