package services

import (
	"strings"

	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
)

// Classifier suggests a triage type for raw capture text.
type Classifier struct{}

// NewClassifier returns a classifier instance.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Suggest returns the likely triage type. It is a hint for the user, never
// applied automatically.
func (c *Classifier) Suggest(rawText string) domain.TriageType {
	text := strings.ToLower(strings.TrimSpace(rawText))
	switch {
	case strings.HasPrefix(text, "note:"), strings.HasPrefix(text, "idea:"):
		return domain.TriageNote
	case strings.Contains(text, "someday"), strings.Contains(text, "maybe"):
		return domain.TriageSomeday
	case strings.HasPrefix(text, "project:"), strings.Contains(text, "launch"), strings.Contains(text, "plan out"):
		return domain.TriageProject
	}
	return domain.TriageTask
}
