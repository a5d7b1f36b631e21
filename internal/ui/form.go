package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptfoundry/prompt-foundry/internal/form"
	"github.com/promptfoundry/prompt-foundry/internal/models"
)

// QuestionnaireForm walks a template's question schema and collects answers.
// Every edit is committed immediately through onChange, so the preview and
// the session always reflect the latest state.
type QuestionnaireForm struct {
	template *models.Template
	answers  *models.AnswerSet
	onChange func(questionID string, value interface{})

	fields  []formField
	focused int
	width   int
	height  int
}

// formField pairs one question with its interaction widget
type formField struct {
	question   models.Question
	affordance form.Affordance
	input      textinput.Model
	textarea   textarea.Model
	cursor     int
}

// NewQuestionnaireForm builds a form for the template. The answers set is
// read for current values; changes are reported through onChange.
func NewQuestionnaireForm(tmpl *models.Template, answers *models.AnswerSet, onChange func(string, interface{})) *QuestionnaireForm {
	f := &QuestionnaireForm{
		template: tmpl,
		answers:  answers,
		onChange: onChange,
	}

	for _, q := range tmpl.Questions {
		field := formField{
			question:   q,
			affordance: form.Resolve(q),
		}

		switch field.affordance {
		case form.AffordanceTextInput, form.AffordanceColor:
			ti := textinput.New()
			ti.Placeholder = q.Placeholder
			ti.CharLimit = 0
			ti.Width = 50
			if s, ok := form.Value(q, answers).(string); ok {
				ti.SetValue(s)
			}
			field.input = ti
		case form.AffordanceTextArea:
			ta := textarea.New()
			ta.Placeholder = q.Placeholder
			ta.CharLimit = 0
			ta.ShowLineNumbers = false
			ta.SetWidth(70)
			ta.SetHeight(4)
			if s, ok := form.Value(q, answers).(string); ok {
				ta.SetValue(s)
			}
			field.textarea = ta
		}

		f.fields = append(f.fields, field)
	}

	f.focusField(0)
	return f
}

// Resize adjusts widget widths to the terminal
func (f *QuestionnaireForm) Resize(width, height int) {
	f.width = width
	f.height = height

	inputWidth := width - 10
	if inputWidth > 70 {
		inputWidth = 70
	}
	if inputWidth < 20 {
		inputWidth = 20
	}
	for i := range f.fields {
		switch f.fields[i].affordance {
		case form.AffordanceTextInput, form.AffordanceColor:
			f.fields[i].input.Width = inputWidth
		case form.AffordanceTextArea:
			f.fields[i].textarea.SetWidth(inputWidth)
		}
	}
}

// Update handles key events for the focused field
func (f *QuestionnaireForm) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		if f.textareaFocused() && keyMsg.String() == "down" {
			break
		}
		f.nextField()
		return nil
	case "shift+tab", "up":
		if f.textareaFocused() && keyMsg.String() == "up" {
			break
		}
		f.prevField()
		return nil
	}

	if len(f.fields) == 0 {
		return nil
	}
	field := &f.fields[f.focused]
	q := field.question

	switch field.affordance {
	case form.AffordanceTextInput, form.AffordanceTextArea, form.AffordanceColor:
		var cmd tea.Cmd
		if field.affordance == form.AffordanceTextArea {
			field.textarea, cmd = field.textarea.Update(msg)
			f.commit(q, field.textarea.Value())
		} else {
			field.input, cmd = field.input.Update(msg)
			f.commit(q, field.input.Value())
		}
		return cmd

	case form.AffordanceChoiceSingle:
		switch keyMsg.String() {
		case "left", "h":
			if field.cursor > 0 {
				field.cursor--
			}
		case "right", "l":
			if field.cursor < len(q.Options)-1 {
				field.cursor++
			}
		case "enter", " ", "space":
			if field.cursor < len(q.Options) {
				f.commit(q, q.Options[field.cursor].Value)
			}
		}

	case form.AffordanceChoiceMulti:
		switch keyMsg.String() {
		case "left", "h":
			if field.cursor > 0 {
				field.cursor--
			}
		case "right", "l":
			if field.cursor < len(q.Options)-1 {
				field.cursor++
			}
		case "enter", " ", "space":
			if field.cursor < len(q.Options) {
				f.commit(q, q.Options[field.cursor].Value)
			}
		}

	case form.AffordanceToggle:
		switch keyMsg.String() {
		case "enter", " ", "space":
			f.commit(q, "")
		}

	case form.AffordanceNumericRange:
		current, _ := form.Value(q, f.answers).(float64)
		switch keyMsg.String() {
		case "left", "h", "-":
			f.commit(q, formatNumber(current-q.SliderStep()))
		case "right", "l", "+", "=":
			f.commit(q, formatNumber(current+q.SliderStep()))
		}
	}

	return nil
}

// commit applies one raw input event and reports the resulting value
func (f *QuestionnaireForm) commit(q models.Question, raw string) {
	current := form.Value(q, f.answers)
	value := form.Apply(q, current, raw)
	f.onChange(q.ID, value)
}

// CanSubmit reports whether all required questions are answered
func (f *QuestionnaireForm) CanSubmit() (bool, []string) {
	return form.CanSubmit(f.template, f.answers)
}

func (f *QuestionnaireForm) textareaFocused() bool {
	return len(f.fields) > 0 && f.fields[f.focused].affordance == form.AffordanceTextArea
}

func (f *QuestionnaireForm) nextField() {
	if len(f.fields) == 0 {
		return
	}
	f.blurField(f.focused)
	f.focused = (f.focused + 1) % len(f.fields)
	f.focusField(f.focused)
}

func (f *QuestionnaireForm) prevField() {
	if len(f.fields) == 0 {
		return
	}
	f.blurField(f.focused)
	f.focused--
	if f.focused < 0 {
		f.focused = len(f.fields) - 1
	}
	f.focusField(f.focused)
}

func (f *QuestionnaireForm) focusField(i int) {
	if i >= len(f.fields) {
		return
	}
	switch f.fields[i].affordance {
	case form.AffordanceTextInput, form.AffordanceColor:
		f.fields[i].input.Focus()
	case form.AffordanceTextArea:
		f.fields[i].textarea.Focus()
	}
}

func (f *QuestionnaireForm) blurField(i int) {
	if i >= len(f.fields) {
		return
	}
	switch f.fields[i].affordance {
	case form.AffordanceTextInput, form.AffordanceColor:
		f.fields[i].input.Blur()
	case form.AffordanceTextArea:
		f.fields[i].textarea.Blur()
	}
}

// View renders all fields with the focused one highlighted
func (f *QuestionnaireForm) View() string {
	var b strings.Builder

	for i, field := range f.fields {
		q := field.question

		label := q.Label
		if q.Required {
			label += " *"
		}
		if i == f.focused {
			b.WriteString(StyleFocused.Render(label))
		} else {
			b.WriteString(StyleFormLabel.Render(label))
		}
		b.WriteString("\n")

		b.WriteString(f.renderField(i, field))
		b.WriteString("\n\n")
	}

	return b.String()
}

func (f *QuestionnaireForm) renderField(i int, field formField) string {
	q := field.question

	switch field.affordance {
	case form.AffordanceTextInput, form.AffordanceColor:
		return field.input.View()

	case form.AffordanceTextArea:
		return field.textarea.View()

	case form.AffordanceChoiceSingle:
		selected, _ := form.Value(q, f.answers).(string)
		var parts []string
		for j, opt := range q.Options {
			label := opt.Label
			if opt.Value == selected {
				label = "(•) " + label
			} else {
				label = "( ) " + label
			}
			parts = append(parts, CreateOption(label, i == f.focused && j == field.cursor))
		}
		return strings.Join(parts, "\n")

	case form.AffordanceChoiceMulti:
		selected, _ := form.Value(q, f.answers).([]string)
		chosen := make(map[string]bool, len(selected))
		for _, v := range selected {
			chosen[v] = true
		}
		var parts []string
		for j, opt := range q.Options {
			label := opt.Label
			if chosen[opt.Value] {
				label = "[x] " + label
			} else {
				label = "[ ] " + label
			}
			parts = append(parts, CreateOption(label, i == f.focused && j == field.cursor))
		}
		return strings.Join(parts, "\n")

	case form.AffordanceToggle:
		on, _ := form.Value(q, f.answers).(bool)
		label := "[ ] No"
		if on {
			label = "[x] Yes"
		}
		return CreateOption(label, i == f.focused)

	case form.AffordanceNumericRange:
		value, _ := form.Value(q, f.answers).(float64)
		track := RenderSliderTrack(value, q.SliderMin(), q.SliderMax(), 30)
		return fmt.Sprintf("  %s %s", track, StyleTextMuted.Render(formatNumber(value)))

	default:
		return StyleFormHelp.Render(fmt.Sprintf("(%s question type is not supported here)", q.Type))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
