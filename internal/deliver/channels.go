package deliver

import (
	"context"
	"strings"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// DryRunSender validates the send without leaving the process. Its results
// carry the same shape as live delivery results.
type DryRunSender struct{}

// NewDryRunSender creates a no-op sender that still validates recipients.
func NewDryRunSender() *DryRunSender {
	return &DryRunSender{}
}

func (s *DryRunSender) Send(ctx context.Context, lead types.Lead, msg types.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch msg.Channel {
	case types.ChannelEmail:
		if lead.Email == "" {
			return &SendError{LeadID: lead.ID, Channel: msg.Channel, Message: "lead has no email address"}
		}
	case types.ChannelLinkedIn:
		if lead.LinkedInURL == "" {
			return &SendError{LeadID: lead.ID, Channel: msg.Channel, Message: "lead has no linkedin profile"}
		}
	}
	return nil
}

// LinkedInSender simulates LinkedIn outreach. There is no LinkedIn messaging
// API for this use; the sender validates the profile URL and records the
// touch as if delivered.
type LinkedInSender struct{}

// NewLinkedInSender creates a simulated LinkedIn sender.
func NewLinkedInSender() *LinkedInSender {
	return &LinkedInSender{}
}

func (s *LinkedInSender) Send(ctx context.Context, lead types.Lead, msg types.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.Channel != types.ChannelLinkedIn {
		return &SendError{LeadID: lead.ID, Channel: msg.Channel, Message: "linkedin sender only handles linkedin"}
	}
	if !strings.Contains(lead.LinkedInURL, "linkedin.com/") {
		return &SendError{LeadID: lead.ID, Channel: types.ChannelLinkedIn, Message: "lead has no valid linkedin profile"}
	}
	return nil
}

// SenderFor picks the sender for a mode and channel. Dry-run always uses the
// validating no-op sender; live email goes through SMTP and live LinkedIn
// through the simulated sender.
func SenderFor(mode types.SendMode, channel types.Channel) Sender {
	if mode == types.SendDryRun {
		return NewDryRunSender()
	}
	if channel == types.ChannelLinkedIn {
		return NewLinkedInSender()
	}
	return NewSMTPSender(SMTPConfigFromEnv())
}
