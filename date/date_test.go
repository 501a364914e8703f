package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	today := Today()
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, time.July, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"0d", today, false},
		{"today", today, false},
		{"-1d", today.Add(-1), false},
		{"-2w", today.Add(-14), false},
		{"+1y", New(today.Year()+1, today.Month(), today.Day()), false},
		{"yesterday", Date{}, true},
		{"2025/07/01", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestOf(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	// 2024-05-20T20:30:00Z is already the 21st in Hanoi.
	on := time.Date(2024, time.May, 20, 20, 30, 0, 0, time.UTC).In(loc)
	if got, want := Of(on), New(2024, time.May, 21); got != want {
		t.Errorf("Of() = %v, want %v", got, want)
	}
}

func TestDate_JSON(t *testing.T) {
	d := New(2024, time.February, 29)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-02-29"` {
		t.Errorf("Marshal() = %s, want %q", data, "2024-02-29")
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}
}
