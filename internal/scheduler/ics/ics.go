// Package ics renders meetings as RFC 5545 calendars, compatible with Google
// Calendar, Outlook and Apple Calendar.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
)

const prodID = "-//Huddle//huddle-scheduler//EN"

// ForMeeting renders one meeting with organizer and attendees as an
// invitation (METHOD:REQUEST).
func ForMeeting(m domain.Meeting, participants []domain.Participant, organizerEmail string, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "REQUEST")

	cal.Children = append(cal.Children, event(m, participants, organizerEmail, now))

	return encode(cal)
}

// ForMeetings renders a bulk calendar of meetings without attendee detail,
// used for the "my calendar" download.
func ForMeetings(meetings []domain.Meeting, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	for _, m := range meetings {
		cal.Children = append(cal.Children, event(m, nil, "", now))
	}

	return encode(cal)
}

func event(m domain.Meeting, participants []domain.Participant, organizerEmail string, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, m.ID)
	ve.Props.SetText(ical.PropSummary, m.Title)
	ve.Props.SetText(ical.PropDescription, m.Description)
	ve.Props.SetText(ical.PropLocation, m.Location)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, m.StartTime.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, m.EndTime.UTC())
	ve.Props.SetText(ical.PropStatus, eventStatus(m.Status))
	ve.Props.SetDateTime(ical.PropCreated, m.CreatedAt.UTC())
	ve.Props.SetDateTime(ical.PropLastModified, m.UpdatedAt.UTC())

	if organizerEmail != "" {
		p := ical.NewProp(ical.PropOrganizer)
		p.Params.Set(ical.ParamRole, "CHAIR")
		p.SetText(fmt.Sprintf("mailto:%s", organizerEmail))
		ve.Props.Add(p)
	}

	for _, participant := range participants {
		p := ical.NewProp(ical.PropAttendee)
		p.Params.Set(ical.ParamCommonName, participant.DisplayName())
		p.Params.Set(ical.ParamRole, "REQ-PARTICIPANT")
		p.Params.Set(ical.ParamRSVP, "TRUE")
		p.Params.Set(ical.ParamParticipationStatus, partStat(participant.Status))
		p.SetText(fmt.Sprintf("mailto:%s", participant.Email))
		ve.Props.Add(p)
	}

	return ve
}

func encode(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func eventStatus(s domain.MeetingStatus) string {
	// VEVENT STATUS only allows TENTATIVE, CONFIRMED and CANCELLED;
	// completed meetings stay CONFIRMED.
	if s == domain.MeetingCancelled {
		return "CANCELLED"
	}
	return "CONFIRMED"
}

func partStat(s domain.ParticipantStatus) string {
	switch s {
	case domain.ParticipantAccepted:
		return "ACCEPTED"
	case domain.ParticipantDeclined:
		return "DECLINED"
	case domain.ParticipantTentative:
		return "TENTATIVE"
	default:
		return "NEEDS-ACTION"
	}
}
