package util

import "time"

const (
	logTimestampLayout = "2006-01-02 15:04:05"
	dateStampLayout    = "2006_01_02"
)

// Now is the clock used by the formatting helpers. Tests replace it.
var Now = time.Now

// TimestampForLog returns the current local time as "YYYY-MM-DD HH:MM:SS".
func TimestampForLog() string {
	return Now().Local().Format(logTimestampLayout)
}

// DateStampYMD returns the current local date as "YYYY_MM_DD".
func DateStampYMD() string {
	return Now().Local().Format(dateStampLayout)
}
