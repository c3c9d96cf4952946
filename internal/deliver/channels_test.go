package deliver

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

func channelLead() types.Lead {
	return types.Lead{
		ID:          "lead-1",
		FullName:    "Maya Okafor",
		Email:       "maya@acme.example",
		LinkedInURL: "https://www.linkedin.com/in/maya-okafor",
		Status:      types.StatusMessaged,
	}
}

func TestDryRunSenderValidatesRecipient(t *testing.T) {
	ctx := context.Background()
	s := NewDryRunSender()
	lead := channelLead()

	assert.NoError(t, s.Send(ctx, lead, types.Message{Channel: types.ChannelEmail}))
	assert.NoError(t, s.Send(ctx, lead, types.Message{Channel: types.ChannelLinkedIn}))

	lead.Email = ""
	err := s.Send(ctx, lead, types.Message{Channel: types.ChannelEmail})
	var serr *SendError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "lead-1", serr.LeadID)

	lead.LinkedInURL = ""
	assert.Error(t, s.Send(ctx, lead, types.Message{Channel: types.ChannelLinkedIn}))
}

func TestLinkedInSenderRequiresProfile(t *testing.T) {
	ctx := context.Background()
	s := NewLinkedInSender()
	lead := channelLead()

	assert.NoError(t, s.Send(ctx, lead, types.Message{Channel: types.ChannelLinkedIn}))
	assert.Error(t, s.Send(ctx, lead, types.Message{Channel: types.ChannelEmail}),
		"wrong channel is rejected")

	lead.LinkedInURL = "https://example.com/profile"
	assert.Error(t, s.Send(ctx, lead, types.Message{Channel: types.ChannelLinkedIn}))
}

func TestSMTPSenderBuildsEnvelope(t *testing.T) {
	ctx := context.Background()
	lead := channelLead()
	msg := types.Message{
		Channel: types.ChannelEmail,
		Subject: "Quick question",
		Body:    "Hi Maya,\n\nShort and sweet.",
	}

	var gotAddr, gotFrom string
	var gotTo []string
	var gotPayload []byte
	s := NewSMTPSender(SMTPConfig{Host: "relay.example", Port: "2525", From: "sdr@ours.example"})
	s.send = func(addr string, a smtp.Auth, from string, to []string, payload []byte) error {
		gotAddr, gotFrom, gotTo, gotPayload = addr, from, to, payload
		return nil
	}

	require.NoError(t, s.Send(ctx, lead, msg))
	assert.Equal(t, "relay.example:2525", gotAddr)
	assert.Equal(t, "sdr@ours.example", gotFrom)
	assert.Equal(t, []string{"maya@acme.example"}, gotTo)

	payload := string(gotPayload)
	assert.True(t, strings.Contains(payload, "Subject: Quick question\r\n"))
	assert.True(t, strings.Contains(payload, "To: maya@acme.example\r\n"))
	assert.True(t, strings.Contains(payload, msg.Body))
}

func TestSMTPSenderWrapsRelayError(t *testing.T) {
	ctx := context.Background()
	s := NewSMTPSender(SMTPConfig{Host: "relay.example", Port: "2525", From: "sdr@ours.example"})
	relayErr := errors.New("550 rejected")
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return relayErr }

	err := s.Send(ctx, channelLead(), types.Message{Channel: types.ChannelEmail})
	var serr *SendError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, relayErr)
}

func TestSMTPSenderRejectsNonEmail(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{})
	err := s.Send(context.Background(), channelLead(), types.Message{Channel: types.ChannelLinkedIn})
	assert.Error(t, err)
}

func TestSenderFor(t *testing.T) {
	assert.IsType(t, &DryRunSender{}, SenderFor(types.SendDryRun, types.ChannelEmail))
	assert.IsType(t, &DryRunSender{}, SenderFor(types.SendDryRun, types.ChannelLinkedIn))
	assert.IsType(t, &LinkedInSender{}, SenderFor(types.SendLive, types.ChannelLinkedIn))
	assert.IsType(t, &SMTPSender{}, SenderFor(types.SendLive, types.ChannelEmail))
}
