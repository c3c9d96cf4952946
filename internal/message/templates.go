package message

import "github.com/jonathan/outreach-pipeline/internal/types"

// template is a parameterized message draft. Placeholders are filled by
// the generator from the lead and its enrichment record.
type template struct {
	subject string
	body    string
	cta     string
}

// wordLimits caps drafted body length per channel.
var wordLimits = map[types.Channel]int{
	types.ChannelEmail:    120,
	types.ChannelLinkedIn: 60,
}

// emailTemplates holds the A/B email drafts. Variant A leads with the pain
// point; variant B leads with the buying trigger.
var emailTemplates = map[types.Variant]template{
	types.VariantA: {
		subject: "Quick question about {company}'s {pain_short}",
		body: `Hi {first_name},

I noticed {company} operates in {industry}, and teams like yours often tell us {pain_point} is a constant drag on the roadmap.

We help {persona_plural} cut through exactly that, without adding headcount or another sprawling platform to maintain.

{cta}

Best,
Alex`,
		cta: "Would a 15-minute call next week be worth your time?",
	},
	types.VariantB: {
		subject: "{trigger_short} at {company}?",
		body: `Hi {first_name},

Companies in {industry} are moving fast right now: {buying_trigger} keeps coming up in conversations with {persona_plural} we work with.

If {pain_point} is on your radar too, we have a playbook that has worked well for teams at a similar stage to {company}.

{cta}

Regards,
Alex`,
		cta: "Open to a short intro call to compare notes?",
	},
}

// linkedinTemplates holds the A/B LinkedIn drafts. Shorter and more casual
// than email; no subject line.
var linkedinTemplates = map[types.Variant]template{
	types.VariantA: {
		body: `Hi {first_name}, saw your work at {company}. {pain_point} comes up a lot with {persona_plural} in {industry}. We've built something that helps. {cta}`,
		cta:  "Worth a quick chat?",
	},
	types.VariantB: {
		body: `Hi {first_name}, with {buying_trigger} reshaping {industry}, curious how {company} is handling {pain_point}. We work with {persona_plural} on exactly this. {cta}`,
		cta:  "Open to connecting?",
	},
}

// templatesFor returns the template table for a channel.
func templatesFor(channel types.Channel) map[types.Variant]template {
	if channel == types.ChannelLinkedIn {
		return linkedinTemplates
	}
	return emailTemplates
}
