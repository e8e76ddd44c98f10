package tones

import "github.com/jonathan/wordsmithery/internal/types"

// Default tone ids
const (
	ParentBrandID = "toneA"
	MSocialID     = "toneB"
)

const parentBrandDescription = `Millennium speaks with quiet authority. It is measured, composed, and confident without needing to announce itself. The tone carries institutional credibility and long term stewardship, the kind that comes from decades of operating at a global scale.
The language is polished but not ornamental. It favours clarity over cleverness, reassurance over excitement. When Millennium speaks, it sounds like a host who has seen everything before and knows exactly how to make things work, for guests, partners, owners, and teams.
Emotion is present, but controlled. Warmth shows up as thoughtfulness, care, and consistency rather than overt sentiment. Stories are framed around legacy, trust, reliability, and human connection at scale. Even when talking about innovation or transformation, the tone remains grounded and responsible.
This voice is designed to be trusted. It reassures stakeholders that the brand is stable, globally competent, and quietly evolving without abandoning its foundations.
If Millennium were a person, it would be the experienced chair at the table. Calm, observant, deliberate. Not rushed. Not reactive. Always considered.`

const mSocialDescription = `The challenger voice
M Social speaks in contrast. It is bold, conversational, and culturally fluent. The voice feels alive in the present moment, tuned into art, music, design, and the social energy of the city it lives in.
The tone is confident but playful. It is unafraid of wit, surprise, or informality, but never slips into gimmickry. Language is expressive and visual. It invites participation rather than delivering proclamations. It sounds like someone who knows what is happening right now and wants you inside it.
Emotion is front and centre. M Social tells stories through lived moments, personalities, and atmospheres. It celebrates individuality, creativity, and community. There is a sense of movement and immediacy, as if something is always happening just beyond the frame.
Crucially, M Social is not reckless. Its confidence is backed by intention. The voice pushes boundaries, but it is still curated, still intelligent, still aware that it represents a global hospitality group. The edge is designed, not chaotic.
If M Social were a person, it would be the magnetic friend who knows the city inside out. Stylish without trying too hard. Curious. A little provocative. Always inviting you into the story.`

// DefaultProfiles returns a fresh copy of the built-in tone profiles
func DefaultProfiles() []types.ToneProfile {
	return []types.ToneProfile{
		{ID: ParentBrandID, Name: "Parent Brand", Description: parentBrandDescription},
		{ID: MSocialID, Name: "M Social", Description: mSocialDescription},
	}
}
