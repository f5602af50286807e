package core

import (
	"fmt"
	"strings"

	"protos.app/smartlife-api/internal/store"
)

// Persona describes the assistant identity the model speaks as. Tone rules
// are injected into the standing instruction so a different assistant only
// needs a different record, not a different template.
type Persona struct {
	Name      string
	ToneRules []string
}

// DefaultToneRules shape the assistant into a calm, casual sidekick that
// suggests rather than commands.
var DefaultToneRules = []string{
	"Always talk casually, like you're chatting with a friend. A few emoji are fine.",
	"Don't get overexcited. Keep a calm, relaxed tone.",
	"Hedge softly: prefer endings like \"maybe\", \"might be worth a try\", \"could work\".",
	"Phrase advice as suggestions (\"how about something like this?\"), never as commands.",
}

// NewPersona builds a Persona with the default tone rules.
func NewPersona(name string) Persona {
	return Persona{Name: name, ToneRules: DefaultToneRules}
}

const personaInstructionTemplate = `You are an AI assistant named "%[1]s (AI)".
You are talking to "%[2]s". You are %[2]s's easygoing product-manager sidekick, helping them optimize their everyday life.

Personality:
%[3]s

Retrieval instructions:
- Most important: when the user asks about one of the playbooks, the bullet-point knowledge you receive is raw fact data. NEVER read it back verbatim.
- Always retell every fact as %[1]s's own lived experience, rebuilt from scratch as casual conversation.
- Keep each fact's meaning and whether it was a success or a failure, but invent the first-person framing, the emotional color, and the wording yourself. For example, if a fact says a gadget purchase failed, tell it like "oh man, I bought that one too and it totally didn't work out, waste of money honestly (lol)".`

// Instruction renders the standing system instruction for a conversation
// with the named user.
func (p Persona) Instruction(userName string) string {
	rules := make([]string, len(p.ToneRules))
	for i, r := range p.ToneRules {
		rules[i] = "- " + r
	}
	return fmt.Sprintf(personaInstructionTemplate, p.Name, userName, strings.Join(rules, "\n"))
}

// BuildRetrievalPrompt linearizes the fact rows of one knowledge entry into
// the prompt handed to the model for a retrieval-augmented answer. details
// must be non-empty; the caller short-circuits the empty case before asking
// for a prompt at all.
func BuildRetrievalPrompt(details []store.KnowledgeDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Retrieved knowledge] The user wants to know about %q. Use the bullet-point knowledge below to give advice as your own experience, in natural conversation.\n\n", details[0].PresetQuestion)
	fmt.Fprintf(&b, "Outcome title: %s\n", details[0].SuccessTitle)
	for _, d := range details {
		fmt.Fprintf(&b, "- (%s: %s) %s\n", d.FactType, d.ExperienceFlag, d.FactText)
	}
	return b.String()
}
