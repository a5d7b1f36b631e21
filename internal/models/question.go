package models

// QuestionType identifies the interaction affordance a question asks for
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionSelect   QuestionType = "select"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
	QuestionSlider   QuestionType = "slider"
	QuestionColor    QuestionType = "color"
)

// Slider bounds used when a question leaves them unset
const (
	DefaultSliderMin  = 0
	DefaultSliderMax  = 100
	DefaultSliderStep = 1
)

// DefaultColor is stored for a color question that has no answer yet
const DefaultColor = "#000000"

// Option is one selectable choice for select, radio and multi-checkbox questions
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Question is one declarative form field inside a template
type Question struct {
	ID          string       `yaml:"id"`
	Type        QuestionType `yaml:"type"`
	Label       string       `yaml:"label"`
	Description string       `yaml:"description,omitempty"`
	Placeholder string       `yaml:"placeholder,omitempty"`
	Required    bool         `yaml:"required,omitempty"`
	Options     []Option     `yaml:"options,omitempty"`
	Min         *float64     `yaml:"min,omitempty"`
	Max         *float64     `yaml:"max,omitempty"`
	Step        *float64     `yaml:"step,omitempty"`
}

// IsMultiSelect reports whether a checkbox question collects a set of option
// values rather than a single boolean
func (q Question) IsMultiSelect() bool {
	return q.Type == QuestionCheckbox && len(q.Options) > 0
}

// NeedsOptions reports whether the question type is meaningless without options
func (q Question) NeedsOptions() bool {
	return q.Type == QuestionSelect || q.Type == QuestionRadio
}

// SliderMin returns the lower bound for a slider question
func (q Question) SliderMin() float64 {
	if q.Min != nil {
		return *q.Min
	}
	return DefaultSliderMin
}

// SliderMax returns the upper bound for a slider question
func (q Question) SliderMax() float64 {
	if q.Max != nil {
		return *q.Max
	}
	return DefaultSliderMax
}

// SliderStep returns the increment for a slider question
func (q Question) SliderStep() float64 {
	if q.Step != nil && *q.Step > 0 {
		return *q.Step
	}
	return DefaultSliderStep
}
