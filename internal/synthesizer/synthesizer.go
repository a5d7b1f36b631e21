// Package synthesizer turns a template's answers into a formatted prompt
// document. Each recognized template id has its own strategy: a fixed heading
// followed by an ordered list of field emission rules. Unknown ids fall back
// to a generic strategy that emits one line per answered question.
//
// Synthesize is a pure function: identical inputs always produce byte
// identical output, so the UI can recompute the full document on every
// answer change.
package synthesizer

import (
	"strings"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

// rule describes one field emission: if the answer under key is present,
// append either an inline "Label: value" line or a "## Label" section.
// Rule order within a strategy is fixed and defines section order in the
// output regardless of the order answers were entered.
type rule struct {
	key     string
	label   string
	section bool
	// leadBreak inserts a blank line before the section heading, separating
	// the inline field block from the first section block
	leadBreak bool
}

// strategy is the full emission plan for one template category
type strategy struct {
	heading string
	rules   []rule
	trailer func(b *strings.Builder, answers *models.AnswerSet)
}

// Synthesize produces the prompt document for a template and its answers.
// A non-empty initialText is prepended, followed by a blank line, before any
// category content.
func Synthesize(tmpl *models.Template, answers *models.AnswerSet, initialText string) string {
	var b strings.Builder

	if initialText != "" {
		b.WriteString(initialText)
		b.WriteString("\n\n")
	}

	var id string
	if tmpl != nil {
		id = tmpl.ID
	}

	strat, ok := strategies[id]
	if !ok {
		writeGeneric(&b, tmpl, answers)
		return b.String()
	}

	b.WriteString(strat.heading)
	b.WriteString("\n\n")

	for _, r := range strat.rules {
		value := answers.Get(r.key)
		if !models.IsPresent(value) {
			continue
		}
		text := models.FormatAnswer(value)
		if r.section {
			if r.leadBreak {
				b.WriteString("\n")
			}
			b.WriteString("## ")
			b.WriteString(r.label)
			b.WriteString("\n")
			b.WriteString(text)
			b.WriteString("\n\n")
		} else {
			b.WriteString(r.label)
			b.WriteString(": ")
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	if strat.trailer != nil {
		strat.trailer(&b, answers)
	}

	return b.String()
}

// writeGeneric emits one "Label: value" line per answered question, in the
// order the answers were entered. Answer keys with no matching question in
// the template schema are silently skipped.
func writeGeneric(b *strings.Builder, tmpl *models.Template, answers *models.AnswerSet) {
	b.WriteString("# AI Tool Prompt\n\n")

	if tmpl == nil || answers == nil {
		return
	}

	for _, key := range answers.Keys() {
		question, ok := tmpl.Question(key)
		if !ok {
			continue
		}
		value := answers.Get(key)
		if !models.IsPresent(value) {
			continue
		}
		b.WriteString(question.Label)
		b.WriteString(": ")
		b.WriteString(models.FormatAnswer(value))
		b.WriteString("\n")
	}
}

// boolAnswer reports whether the answer under key is strictly the boolean
// true. A "true" string or any other truthy value does not count.
func boolAnswer(answers *models.AnswerSet, key string) bool {
	v, ok := answers.Get(key).(bool)
	return ok && v
}
