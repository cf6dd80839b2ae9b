package ical

import (
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	ContentType       = "text/calendar; charset=utf-8; method=REQUEST"
	CancelContentType = "text/calendar; charset=utf-8; method=CANCEL"
	productID         = "-//Advisory Assistant//Consultations//EN"
)

var ErrInvalidWindow = errors.New("invite must end after it starts")

type Invite struct {
	UID            string
	Summary        string
	Description    string
	Location       string
	Start          time.Time
	End            time.Time
	OrganizerName  string
	OrganizerEmail string
	AttendeeName   string
	AttendeeEmail  string
}

// Request renders a METHOD:REQUEST calendar with a single event, the form
// mail clients show with accept and decline buttons.
func Request(inv Invite, now time.Time) ([]byte, error) {
	return render(inv, now, ics.MethodRequest, ics.ObjectStatusConfirmed)
}

// Cancel renders the matching METHOD:CANCEL for an invite sent earlier
// with the same UID.
func Cancel(inv Invite, now time.Time) ([]byte, error) {
	return render(inv, now, ics.MethodCancel, ics.ObjectStatusCancelled)
}

func render(inv Invite, now time.Time, method ics.Method, status ics.ObjectStatus) ([]byte, error) {
	if !inv.End.After(inv.Start) {
		return nil, ErrInvalidWindow
	}

	cal := ics.NewCalendar()
	cal.SetMethod(method)
	cal.SetProductId(productID)

	event := cal.AddEvent(inv.UID)
	event.SetCreatedTime(now)
	event.SetDtStampTime(now)
	event.SetModifiedAt(now)
	event.SetStartAt(inv.Start)
	event.SetEndAt(inv.End)
	event.SetSummary(inv.Summary)
	event.SetStatus(status)

	if inv.Description != "" {
		event.SetDescription(inv.Description)
	}
	if inv.Location != "" {
		event.SetLocation(inv.Location)
	}
	if inv.OrganizerEmail != "" {
		event.SetOrganizer("mailto:"+inv.OrganizerEmail, ics.WithCN(inv.OrganizerName))
	}

	event.AddAttendee(inv.AttendeeEmail,
		ics.WithCN(inv.AttendeeName),
		ics.CalendarUserTypeIndividual,
		ics.ParticipationRoleReqParticipant,
		ics.ParticipationStatusNeedsAction,
		ics.WithRSVP(true),
	)

	return []byte(cal.Serialize()), nil
}
