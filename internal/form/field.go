// Package form implements the dynamic form model that drives answer
// collection from a template's question schema. It resolves each question to
// an interaction affordance, supplies per-type default values, and applies
// raw user input to produce the new answer value. The package holds no state
// of its own; the TUI wires its change events into the active session.
package form

import (
	"strconv"
	"strings"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

// Affordance is the interaction style a question resolves to
type Affordance int

const (
	// AffordanceUnsupported renders a visible no-op placeholder. Unknown
	// question types degrade here instead of failing, so a newer schema
	// never breaks the rest of the form.
	AffordanceUnsupported Affordance = iota
	AffordanceTextInput
	AffordanceTextArea
	AffordanceChoiceSingle
	AffordanceChoiceMulti
	AffordanceToggle
	AffordanceNumericRange
	AffordanceColor
)

// String returns a short name for the affordance, used in placeholders and logs
func (a Affordance) String() string {
	switch a {
	case AffordanceTextInput:
		return "text"
	case AffordanceTextArea:
		return "textarea"
	case AffordanceChoiceSingle:
		return "choice"
	case AffordanceChoiceMulti:
		return "multi-choice"
	case AffordanceToggle:
		return "toggle"
	case AffordanceNumericRange:
		return "range"
	case AffordanceColor:
		return "color"
	default:
		return "unsupported"
	}
}

// Resolve maps a question to its interaction affordance
func Resolve(q models.Question) Affordance {
	switch q.Type {
	case models.QuestionText:
		return AffordanceTextInput
	case models.QuestionTextarea:
		return AffordanceTextArea
	case models.QuestionSelect, models.QuestionRadio:
		return AffordanceChoiceSingle
	case models.QuestionCheckbox:
		if q.IsMultiSelect() {
			return AffordanceChoiceMulti
		}
		return AffordanceToggle
	case models.QuestionSlider:
		return AffordanceNumericRange
	case models.QuestionColor:
		return AffordanceColor
	default:
		return AffordanceUnsupported
	}
}

// Value returns the effective current value for a question, substituting the
// per-type default when no answer is stored: empty string for text, false for
// a bare checkbox, the slider minimum, black for color, and an empty set for
// a multi-select.
func Value(q models.Question, answers *models.AnswerSet) interface{} {
	stored := answers.Get(q.ID)
	if stored != nil {
		return stored
	}

	switch Resolve(q) {
	case AffordanceTextInput, AffordanceTextArea:
		return ""
	case AffordanceToggle:
		return false
	case AffordanceNumericRange:
		return q.SliderMin()
	case AffordanceColor:
		return models.DefaultColor
	case AffordanceChoiceMulti:
		return []string{}
	default:
		return nil
	}
}

// Apply produces the new answer value for a question given the raw input
// event. No input is rejected: partial or out-of-vocabulary text is stored
// as-is, and required-ness is only checked at submission time.
//
// Per-affordance semantics:
//   - text, textarea, color: the raw string is the value
//   - choice-single: the raw string is the chosen option value
//   - toggle: input is ignored; the boolean flips
//   - choice-multi: the raw string toggles that option's membership,
//     preserving the relative order of the remaining selections
//   - numeric-range: the raw string parses as a number and is clamped to
//     the question's bounds and step
func Apply(q models.Question, current interface{}, raw string) interface{} {
	switch Resolve(q) {
	case AffordanceTextInput, AffordanceTextArea, AffordanceChoiceSingle, AffordanceColor:
		return raw
	case AffordanceToggle:
		v, _ := current.(bool)
		return !v
	case AffordanceChoiceMulti:
		return toggleSelection(current, raw)
	case AffordanceNumericRange:
		return clampToRange(q, raw)
	default:
		return current
	}
}

// toggleSelection adds the value if absent, removes it if present. Remaining
// elements keep their original relative order.
func toggleSelection(current interface{}, value string) []string {
	selected, _ := current.([]string)
	for i, v := range selected {
		if v == value {
			result := make([]string, 0, len(selected)-1)
			result = append(result, selected[:i]...)
			result = append(result, selected[i+1:]...)
			return result
		}
	}
	result := make([]string, 0, len(selected)+1)
	result = append(result, selected...)
	return append(result, value)
}

// clampToRange parses a numeric input and snaps it into the question's
// [min, max] bounds at step increments. Unparseable input falls back to the
// minimum.
func clampToRange(q models.Question, raw string) float64 {
	min, max, step := q.SliderMin(), q.SliderMax(), q.SliderStep()

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}

	// Snap to the nearest step from the minimum
	steps := (value - min) / step
	snapped := min + float64(int(steps+0.5))*step
	if snapped > max {
		snapped = max
	}
	return snapped
}

// CanSubmit reports whether every required question of the template has a
// present answer, and returns the ids of those still missing. This is the
// only place required-ness is enforced.
func CanSubmit(tmpl *models.Template, answers *models.AnswerSet) (bool, []string) {
	var missing []string
	for _, q := range tmpl.Questions {
		if !q.Required {
			continue
		}
		if !models.IsPresent(answers.Get(q.ID)) {
			missing = append(missing, q.ID)
		}
	}
	return len(missing) == 0, missing
}
