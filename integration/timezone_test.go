package integration

import (
	"bytes"
	"testing"
	"time"

	"github.com/javiermolinar/aula/internal/export"
	"github.com/javiermolinar/aula/internal/generator"
)

func loadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("time zone %s unavailable: %v", name, err)
	}
	return loc
}

// Slot times are wall-clock times, so a calendar written in one zone and read
// in another keeps day and start.
func TestICSWallClockAcrossTimezones(t *testing.T) {
	refs, slots := generator.Demo()
	tokyo := loadLocation(t, "Asia/Tokyo")
	newYork := loadLocation(t, "America/New_York")

	tests := []struct {
		name   string
		weekOf time.Time
		write  *time.Location
		read   *time.Location
	}{
		{"same zone", time.Date(2026, 10, 12, 0, 0, 0, 0, tokyo), tokyo, tokyo},
		{"written east, read west", time.Date(2026, 10, 12, 0, 0, 0, 0, tokyo), tokyo, newYork},
		// US clocks change on 2026-11-01.
		{"week after a DST change", time.Date(2026, 11, 2, 0, 0, 0, 0, newYork), newYork, time.UTC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := export.WriteICS(&buf, slots, export.ICSOptions{WeekOf: tt.weekOf, Weeks: 1, Location: tt.write}); err != nil {
				t.Fatal(err)
			}
			inputs, skipped, err := export.ParseICS(&buf, refs, tt.read)
			if err != nil {
				t.Fatal(err)
			}
			if len(skipped) != 0 || len(inputs) != len(slots) {
				t.Fatalf("parsed %d inputs, skipped %v", len(inputs), skipped)
			}
			for i, in := range inputs {
				want := slots[i]
				if in.DayOfWeek != want.DayOfWeek || in.StartTime != want.StartTime || in.EndTime != want.EndTime {
					t.Errorf("event %d: %d %s-%s, want %d %s-%s", i,
						in.DayOfWeek, in.StartTime, in.EndTime,
						want.DayOfWeek, want.StartTime, want.EndTime)
				}
			}
		})
	}
}
