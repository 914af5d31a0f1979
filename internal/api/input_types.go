package api

import (
	"bytes"
	"encoding/json"
)

type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type profileUpdateInput struct {
	Savings      *float64 `json:"savings"`
	CurrentPhase *string  `json:"current_phase"`
	Name         *string  `json:"name"`
}

type taskCreateInput struct {
	TaskKey   string `json:"task_key"`
	Text      string `json:"text"`
	Turn      string `json:"turn"`
	MinPhase  *int   `json:"min_phase"`
	MaxPhase  *int   `json:"max_phase"`
	SortOrder *int   `json:"sort_order"`
}

type taskUpdateInput struct {
	Text      *string     `json:"text"`
	Turn      *string     `json:"turn"`
	MinPhase  *int        `json:"min_phase"`
	MaxPhase  optionalInt `json:"max_phase"`
	SortOrder *int        `json:"sort_order"`
	IsActive  *bool       `json:"is_active"`
}

type checkToggleInput struct {
	TaskID      uint   `json:"task_id"`
	Date        string `json:"date"`
	IsCompleted *bool  `json:"is_completed"`
}

type historyInput struct {
	Date              string `json:"date"`
	CompletionPercent *int   `json:"completion_percent"`
	Phase             string `json:"phase"`
}

type journalInput struct {
	Content   *string `json:"content"`
	WeekStart string  `json:"week_start"`
}

// optionalInt tells an absent JSON field apart from an explicit null.
type optionalInt struct {
	Set   bool
	Value *int
}

func (value *optionalInt) UnmarshalJSON(data []byte) error {
	value.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		value.Value = nil
		return nil
	}
	var parsed int
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	value.Value = &parsed
	return nil
}
