// internal/workers/candidates/notify-status-change/templates.go
package notifystatuschange

import (
	"fmt"
	"strings"

	"recruiting-workers/internal/models"
)

var statusHeadlines = map[models.ProcessStatus]string{
	models.StatusPending:   "is pending review",
	models.StatusReviewed:  "has been reviewed",
	models.StatusInterview: "moved to interview",
	models.StatusRejected:  "was rejected",
	models.StatusHired:     "was hired",
}

// smsStatuses are the transitions worth a text message.
var smsStatuses = map[models.ProcessStatus]bool{
	models.StatusInterview: true,
	models.StatusHired:     true,
}

type message struct {
	Subject string
	Body    string
	SMS     string
}

func buildMessage(input *Input, status models.ProcessStatus) message {
	name := strings.TrimSpace(input.CandidateName)
	if name == "" {
		name = "Candidate " + input.CandidateID
	}
	headline := fmt.Sprintf("%s %s", name, statusHeadlines[status])

	var body strings.Builder
	body.WriteString(headline)
	body.WriteString(".\n")
	if input.PreviousStatus != "" {
		fmt.Fprintf(&body, "Previous status: %s\n", input.PreviousStatus)
	}
	fmt.Fprintf(&body, "Current status: %s\n", status)
	fmt.Fprintf(&body, "Candidate id: %s\n", input.CandidateID)

	return message{
		Subject: "Candidate update: " + headline,
		Body:    body.String(),
		SMS:     headline + ".",
	}
}
