package util

import (
	"testing"
	"time"
)

func TestDateFormatting(t *testing.T) {
	orig := Now
	defer func() { Now = orig }()
	Now = func() time.Time {
		return time.Date(2021, time.August, 7, 9, 5, 3, 0, time.Local)
	}

	if got := TimestampForLog(); got != "2021-08-07 09:05:03" {
		t.Errorf("TimestampForLog() = %q, expected %q", got, "2021-08-07 09:05:03")
	}
	if got := DateStampYMD(); got != "2021_08_07" {
		t.Errorf("DateStampYMD() = %q, expected %q", got, "2021_08_07")
	}
}
