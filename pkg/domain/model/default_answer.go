package model

import "encoding/json"

// DefaultAnswer is the normalized default of a question as consumed by form builders.
// Exactly one of text or choices is present in its JSON form.
type DefaultAnswer struct {
	Text    *string
	Choices []string
}

// TextAnswer returns a text default answer
func TextAnswer(text string) DefaultAnswer {
	return DefaultAnswer{Text: &text}
}

// ChoiceAnswer returns a choice default answer. No argument yields an empty choice list.
func ChoiceAnswer(ids ...string) DefaultAnswer {
	if ids == nil {
		ids = []string{}
	}
	return DefaultAnswer{Choices: ids}
}

// IsChoice reports whether the answer is a choice answer
func (a DefaultAnswer) IsChoice() bool {
	return a.Text == nil
}

// MarshalJSON encodes the answer as {"text": ...} or {"choices": [...]}
func (a DefaultAnswer) MarshalJSON() ([]byte, error) {
	if a.Text != nil {
		return json.Marshal(struct {
			Text string `json:"text"`
		}{Text: *a.Text})
	}

	choices := a.Choices
	if choices == nil {
		choices = []string{}
	}
	return json.Marshal(struct {
		Choices []string `json:"choices"`
	}{Choices: choices})
}

// UnmarshalJSON decodes either answer form
func (a *DefaultAnswer) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text    *string  `json:"text"`
		Choices []string `json:"choices"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Text != nil {
		*a = TextAnswer(*raw.Text)
		return nil
	}
	*a = ChoiceAnswer(raw.Choices...)
	return nil
}
