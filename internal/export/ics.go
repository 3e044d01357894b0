package export

import (
	"cmp"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/javiermolinar/aula/internal/dateutil"
	"github.com/javiermolinar/aula/internal/timetable"
)

const (
	icsProductID   = "-//aula//timetable//EN"
	icsLocalLayout = "20060102T150405"
	icsUTCLayout   = "20060102T150405Z"
	icsDateLayout  = "20060102"
	defaultWeeks   = 15
)

// ICSOptions controls calendar export.
type ICSOptions struct {
	// WeekOf is any date in the first teaching week. Defaults to now.
	WeekOf time.Time
	// Weeks is the number of weekly occurrences. Defaults to 15.
	Weeks int
	// Location is the wall clock of slot times. Defaults to time.Local.
	Location *time.Location
}

// WriteICS writes one weekly recurring event per slot. Slots whose times do
// not parse are skipped.
func WriteICS(w io.Writer, slots []timetable.Slot, opts ICSOptions) error {
	loc := cmp.Or(opts.Location, time.Local)
	weeks := cmp.Or(opts.Weeks, defaultWeeks)
	weekOf := opts.WeekOf
	if weekOf.IsZero() {
		weekOf = time.Now()
	}
	monday := dateutil.WeekStart(weekOf.In(loc))
	stamp := time.Now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	for _, s := range slots {
		from, to, err := timetable.Span(s.StartTime, s.EndTime)
		if err != nil {
			continue
		}
		day := dateutil.DayOfWeek(monday, s.DayOfWeek)
		start := day.Add(time.Duration(from) * time.Minute)
		end := day.Add(time.Duration(to) * time.Minute)

		evt := cal.AddEvent(fmt.Sprintf("%s@aula", s.ID))
		evt.SetDtStampTime(stamp)
		evt.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsLocalLayout))
		evt.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsLocalLayout))
		evt.SetSummary(strings.TrimSpace(s.CourseCode + " " + s.CourseName))
		evt.SetLocation(s.ClassroomName)
		evt.SetDescription("Teacher: " + s.TeacherName)
		if len(s.StudentGroups) > 0 {
			evt.SetProperty(ics.ComponentPropertyCategories, strings.Join(s.StudentGroups, ","))
		}
		evt.AddProperty(ics.ComponentPropertyRrule, fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", weeks))
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// ParseICS reads VEVENTs from r and converts them to slot inputs. SUMMARY is
// matched to a course by code, name or "code name"; LOCATION to a classroom
// by name or id. The course's teacher teaches the slot. Events that cannot be
// matched are returned as skipped reasons.
func ParseICS(r io.Reader, refs *timetable.References, loc *time.Location) ([]timetable.SlotInput, []string, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing calendar: %w", err)
	}
	loc = cmp.Or(loc, time.Local)

	var (
		inputs  []timetable.SlotInput
		skipped []string
	)
	for i, evt := range cal.Events() {
		in, err := eventInput(evt, refs, loc)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("event %d: %v", i+1, err))
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, skipped, nil
}

func eventInput(evt *ics.VEvent, refs *timetable.References, loc *time.Location) (timetable.SlotInput, error) {
	summary := propertyText(evt, ics.ComponentPropertySummary)
	if summary == "" {
		return timetable.SlotInput{}, fmt.Errorf("missing SUMMARY")
	}
	course, ok := matchCourse(refs, summary)
	if !ok {
		return timetable.SlotInput{}, fmt.Errorf("no course matches %q", summary)
	}
	location := propertyText(evt, ics.ComponentPropertyLocation)
	room, ok := matchClassroom(refs, location)
	if !ok {
		return timetable.SlotInput{}, fmt.Errorf("no classroom matches %q", location)
	}

	start, err := eventTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return timetable.SlotInput{}, err
	}
	end, err := eventTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		return timetable.SlotInput{}, err
	}

	var groups []string
	if raw := propertyText(evt, ics.ComponentPropertyCategories); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, g)
			}
		}
	}

	return timetable.SlotInput{
		CourseID:      course.ID,
		TeacherID:     course.TeacherID,
		ClassroomID:   room.ID,
		DayOfWeek:     timetable.Weekday(start.Weekday()),
		StartTime:     start.Format("15:04"),
		EndTime:       end.Format("15:04"),
		StudentGroups: groups,
	}, nil
}

var icsUnescaper = strings.NewReplacer(`\,`, ",", `\;`, ";", `\n`, " ", `\N`, " ", `\\`, `\`)

func propertyText(evt *ics.VEvent, prop ics.ComponentProperty) string {
	p := evt.GetProperty(prop)
	if p == nil {
		return ""
	}
	return strings.TrimSpace(icsUnescaper.Replace(p.Value))
}

// eventTime parses a DATE-TIME property. UTC values are converted to loc,
// TZID values use their zone and floating values are read in loc.
func eventTime(evt *ics.VEvent, prop ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	p := evt.GetProperty(prop)
	if p == nil {
		return time.Time{}, fmt.Errorf("missing %s", prop)
	}
	if tzid, ok := p.ICalParameters[string(ics.ParameterTzid)]; ok && len(tzid) > 0 {
		if zone, err := time.LoadLocation(tzid[0]); err == nil {
			loc = zone
		}
	}

	if t, err := time.Parse(icsUTCLayout, p.Value); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(icsLocalLayout, p.Value, loc); err == nil {
		return t, nil
	}
	if _, err := time.ParseInLocation(icsDateLayout, p.Value, loc); err == nil {
		return time.Time{}, fmt.Errorf("%s is an all-day date", prop)
	}
	return time.Time{}, fmt.Errorf("unrecognized %s value %q", prop, p.Value)
}

func matchCourse(refs *timetable.References, summary string) (timetable.Course, bool) {
	for _, c := range refs.Courses {
		switch {
		case strings.EqualFold(summary, c.Code),
			strings.EqualFold(summary, c.Name),
			strings.EqualFold(summary, strings.TrimSpace(c.Code+" "+c.Name)):
			return c, true
		}
	}
	return timetable.Course{}, false
}

func matchClassroom(refs *timetable.References, location string) (timetable.Classroom, bool) {
	if location == "" {
		return timetable.Classroom{}, false
	}
	for _, c := range refs.Classrooms {
		if strings.EqualFold(location, c.Name) || location == c.ID {
			return c, true
		}
	}
	return timetable.Classroom{}, false
}
