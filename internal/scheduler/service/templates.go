package service

import (
	"strings"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
)

const timeLayout = "2006-01-02 15:04 MST"

type messageTemplate struct {
	subject string
	body    string
}

var messageTemplates = map[domain.NotificationKind]messageTemplate{
	domain.NotificationInvitation: {
		subject: "You have been invited to: {title}",
		body: "Hi {name},\n\n" +
			"You have been invited to the following meeting:\n\n" +
			"Title:       {title}\n" +
			"Description: {description}\n" +
			"Location:    {location}\n" +
			"Start:       {start_time}\n" +
			"End:         {end_time}\n\n" +
			"Please respond to confirm your attendance.\n\n" +
			"Best regards,\nHuddle",
	},
	domain.NotificationUpdate: {
		subject: "Meeting updated: {title}",
		body: "Hi {name},\n\n" +
			"The following meeting has been updated:\n\n" +
			"Title:    {title}\n" +
			"Location: {location}\n" +
			"Start:    {start_time}\n" +
			"End:      {end_time}\n\n" +
			"Best regards,\nHuddle",
	},
	domain.NotificationCancellation: {
		subject: "Meeting cancelled: {title}",
		body: "Hi {name},\n\n" +
			"The following meeting has been CANCELLED:\n\n" +
			"Title:         {title}\n" +
			"Was scheduled: {start_time}\n\n" +
			"Best regards,\nHuddle",
	},
	domain.NotificationReminder: {
		subject: "Reminder: {title} starts soon",
		body: "Hi {name},\n\n" +
			"This is a reminder that the following meeting starts soon:\n\n" +
			"Title:    {title}\n" +
			"Location: {location}\n" +
			"Start:    {start_time}\n\n" +
			"Best regards,\nHuddle",
	},
}

// renderMessage builds the subject and body for one recipient. An unknown
// kind falls back to the invitation template rather than failing; callers
// that want strict validation check kind.Valid() first.
func renderMessage(kind domain.NotificationKind, m domain.Meeting, p domain.Participant) (subject, body string) {
	tmpl := messageTemplates[domain.NotificationInvitation]
	if kind.Valid() {
		tmpl = messageTemplates[kind]
	}

	r := strings.NewReplacer(
		"{name}", p.DisplayName(),
		"{title}", m.Title,
		"{description}", orDash(m.Description),
		"{location}", orDash(m.Location),
		"{start_time}", m.StartTime.UTC().Format(timeLayout),
		"{end_time}", m.EndTime.UTC().Format(timeLayout),
	)
	return r.Replace(tmpl.subject), r.Replace(tmpl.body)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
