package notify

import (
	"fmt"
	"strings"

	"github.com/techmaintain/parts-service/internal/events"
)

const (
	requiredDateFormat = "02/01/2006"
	requestDateFormat  = "02/01/2006 15:04"
)

// BuildRequestCreated renders the email sent to the responsible address when
// a part request is created.
func BuildRequestCreated(event events.RequestCreatedEvent) Notification {
	serial := event.PartSerialNumber
	if serial == "" {
		serial = "part"
	}

	subject := fmt.Sprintf("[TECHTEAM] Request %s – %s", serial, strings.ToUpper(event.Priority))

	body := fmt.Sprintf(`NEW PART REQUEST - TECHTEAM

Code: %s
Module: %s
Quantity: %d
Priority: %s
Required date: %s
Request date: %s
Requester: %s

Reason:
%s
`,
		orNA(event.PartSerialNumber),
		orNA(event.PartModule),
		event.Quantity,
		capitalize(event.Priority),
		event.RequiredDate.Format(requiredDateFormat),
		event.RequestDate.Format(requestDateFormat),
		event.Requester,
		event.Reason,
	)

	return Notification{
		Recipient: event.ResponsibleEmail,
		Subject:   subject,
		Body:      body,
	}
}

// BuildPasswordRecovery renders the account-recovery email.
func BuildPasswordRecovery(recipient string, resetURL string) Notification {
	return Notification{
		Recipient: recipient,
		Subject:   "[TECHTEAM] Password recovery",
		Body:      "Click here to reset your password: " + resetURL + "\n",
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
