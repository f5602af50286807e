package core

import (
	"strings"
	"testing"

	"protos.app/smartlife-api/internal/store"
)

func TestPersonaInstruction(t *testing.T) {
	persona := NewPersona("Ken")
	got := persona.Instruction("Alice")

	if !strings.Contains(got, `"Ken (AI)"`) {
		t.Errorf("instruction does not name the assistant: %q", got)
	}
	if !strings.Contains(got, `"Alice"`) {
		t.Errorf("instruction does not name the user: %q", got)
	}
	for _, rule := range DefaultToneRules {
		if !strings.Contains(got, rule) {
			t.Errorf("instruction missing tone rule %q", rule)
		}
	}
	if !strings.Contains(got, "NEVER read it back verbatim") {
		t.Errorf("instruction missing the no-verbatim directive: %q", got)
	}
}

func TestPersonaInstructionCustomToneRules(t *testing.T) {
	persona := Persona{Name: "Momo", ToneRules: []string{"Always answer in haiku."}}
	got := persona.Instruction("Bob")

	if !strings.Contains(got, "- Always answer in haiku.") {
		t.Errorf("custom tone rule not rendered: %q", got)
	}
	if strings.Contains(got, DefaultToneRules[0]) {
		t.Errorf("default tone rules leaked into custom persona: %q", got)
	}
}

func TestBuildRetrievalPrompt(t *testing.T) {
	details := []store.KnowledgeDetail{
		{
			SuccessTitle:   "Slept better",
			PresetQuestion: "Sleep tracking?",
			FactType:       "action",
			FactText:       "Set a fixed wake-up time",
			ExperienceFlag: "POSITIVE",
		},
		{
			SuccessTitle:   "Slept better",
			PresetQuestion: "Sleep tracking?",
			FactType:       "action",
			FactText:       "Tried going to bed earlier; it never stuck",
			ExperienceFlag: "NEGATIVE",
		},
	}

	got := BuildRetrievalPrompt(details)

	if !strings.Contains(got, "Outcome title: Slept better") {
		t.Errorf("prompt missing success title: %q", got)
	}
	if !strings.Contains(got, `"Sleep tracking?"`) {
		t.Errorf("prompt missing the original question: %q", got)
	}

	wantLines := []string{
		"- (action: POSITIVE) Set a fixed wake-up time",
		"- (action: NEGATIVE) Tried going to bed earlier; it never stuck",
	}
	lastIndex := -1
	for _, line := range wantLines {
		idx := strings.Index(got, line)
		if idx < 0 {
			t.Fatalf("prompt missing fact line %q:\n%s", line, got)
		}
		if idx < lastIndex {
			t.Errorf("fact line %q out of input order", line)
		}
		lastIndex = idx
	}
}
