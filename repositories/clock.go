package repositories

import "time"

// nowUTC truncates to milliseconds, the precision BSON datetimes survive a
// round trip with.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
