package grid

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ts := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "thirty seconds", in: ts(30 * time.Second), want: "1m ago"},
		{name: "just now", in: ts(0), want: "1m ago"},
		{name: "ninety seconds", in: ts(90 * time.Second), want: "1 minute ago"},
		{name: "ten minutes", in: ts(10 * time.Minute), want: "10 minutes ago"},
		{name: "one hour strips about", in: ts(70 * time.Minute), want: "1 hour ago"},
		{name: "two hours strips about", in: ts(2*time.Hour + 5*time.Minute), want: "2 hours ago"},
		{name: "one day", in: ts(30 * time.Hour), want: "1 day ago"},
		{name: "five days", in: ts(5 * day), want: "5 days ago"},
		{name: "three months", in: ts(95 * day), want: "3 months ago"},
		{name: "millisecond precision", in: now.Add(-3 * time.Hour).Format("2006-01-02T15:04:05.000Z07:00"), want: "3 hours ago"},
		{name: "future", in: now.Add(3 * time.Hour).Format(time.RFC3339), want: "3 hours from now"},
		{name: "empty", in: "", want: ""},
		{name: "garbage", in: "not a date", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeAgo(tt.in, now); got != tt.want {
				t.Errorf("TimeAgo(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLongDate(t *testing.T) {
	if got := LongDate("2026-03-10T08:30:00Z"); got != "March 10, 2026" {
		t.Errorf("LongDate = %q", got)
	}
	if got := LongDate("soon"); got != "soon" {
		t.Errorf("LongDate on garbage = %q, want input back", got)
	}
}
