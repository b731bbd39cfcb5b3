package format

import (
	"testing"
	"time"
)

func TestByteSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 bytes"},
		{1, "1 bytes"},
		{512, "512 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048575, "1024.00 KB"},
		{1048576, "1.00 MB"},
		{5242880, "5.00 MB"},
		{1073741823, "1024.00 MB"},
		{1073741824, "1.00 GB"},
		{2684354560, "2.50 GB"},
	}
	for _, c := range cases {
		if got := ByteSize(c.in); got != c.want {
			t.Errorf("ByteSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTimestamp(t *testing.T) {
	in := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	want := "Mar 05, 2024, 02:07:09 PM"
	if got := Timestamp(in); got != want {
		t.Errorf("Timestamp = %q, want %q", got, want)
	}
}

func TestTimestamp_Morning(t *testing.T) {
	in := time.Date(2023, time.December, 31, 9, 5, 1, 0, time.UTC)
	want := "Dec 31, 2023, 09:05:01 AM"
	if got := Timestamp(in); got != want {
		t.Errorf("Timestamp = %q, want %q", got, want)
	}
}

func TestTimestampMillis(t *testing.T) {
	local := time.Date(2024, time.June, 15, 18, 30, 45, 0, time.Local)
	want := "Jun 15, 2024, 06:30:45 PM"
	if got := TimestampMillis(local.UnixMilli()); got != want {
		t.Errorf("TimestampMillis = %q, want %q", got, want)
	}
}
