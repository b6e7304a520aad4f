package cache

import "time"

// Fresh reports whether a record written at writtenAt is still fresh at now
// under the given TTL. The boundary is exclusive: a record aged exactly ttl
// is stale. A zero writtenAt (absent or unparseable stored timestamp) is
// always stale, so a corrupt row triggers a re-fetch instead of an error.
func Fresh(writtenAt time.Time, ttl time.Duration, now time.Time) bool {
	if writtenAt.IsZero() {
		return false
	}
	return now.Sub(writtenAt) < ttl
}
