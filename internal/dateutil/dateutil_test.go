package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2026-09-14", time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("nil location is local", func(t *testing.T) {
		got, err := ParseDate("2026-09-14", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Location() != time.Local {
			t.Errorf("location = %v, want Local", got.Location())
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("09-14-2026", time.UTC)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday morning", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC), "2026-10-12"},
		{"wednesday night", time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC), "2026-10-12"},
		{"sunday belongs to the previous monday", time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC), "2026-10-12"},
		{"across a month", time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC), "2026-10-26"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("WeekStart(%s) = %s, want %s", tt.in.Format(time.DateOnly), got.Format(time.DateOnly), tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("WeekStart should be midnight, got %s", got.Format(time.TimeOnly))
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	monday, sunday := WeekRange(time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC))
	if monday.Format(time.DateOnly) != "2026-10-12" || sunday.Format(time.DateOnly) != "2026-10-18" {
		t.Errorf("WeekRange = %s..%s", monday.Format(time.DateOnly), sunday.Format(time.DateOnly))
	}
}

func TestDayOfWeek(t *testing.T) {
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	if got := DayOfWeek(monday, 4).Format(time.DateOnly); got != "2026-10-16" {
		t.Errorf("DayOfWeek(monday, 4) = %s, want 2026-10-16", got)
	}
}

func TestParseWeekOf(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: "", want: "2026-10-12"},
		{input: "this-week", want: "2026-10-12"},
		{input: "NEXT-WEEK", want: "2026-10-19"},
		{input: "last-week", want: "2026-10-05"},
		{input: "thursday", want: "2026-10-12"},
		{input: "wednesday", want: "2026-10-19"},
		{input: "monday", want: "2026-10-19"},
		{input: "next-friday", want: "2026-10-12"},
		{input: "2026-09-16", want: "2026-09-14"},
		{input: " 2027-01-04 ", want: "2027-01-04"},
		{input: "next-funday", wantErr: ErrInvalidDateFormat},
		{input: "tomorrowish", wantErr: ErrInvalidDateFormat},
		{input: "2026/09/14", wantErr: ErrInvalidDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekOf(tt.input, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseWeekOf(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeekOf(%q) unexpected error: %v", tt.input, err)
			}
			if got.Format(time.DateOnly) != tt.want {
				t.Errorf("ParseWeekOf(%q) = %s, want %s", tt.input, got.Format(time.DateOnly), tt.want)
			}
		})
	}
}
