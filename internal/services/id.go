package services

import (
	"strconv"
	"time"
)

// isoLayout is the createdAt wire format: UTC millisecond precision with
// a Z suffix.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func isoTimestamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// timestampID derives a record id from the creation time as a decimal
// millisecond token. taken reports collisions with existing ids; on
// collision the millisecond value is bumped until free.
func timestampID(now time.Time, taken func(string) bool) string {
	ms := now.UnixMilli()
	id := strconv.FormatInt(ms, 10)
	for taken(id) {
		ms++
		id = strconv.FormatInt(ms, 10)
	}
	return id
}
