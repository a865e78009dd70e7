package services

import (
	"testing"

	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifier_Suggest(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name     string
		content  string
		expected domain.TriageType
	}{
		{name: "plain action", content: "Email Dana about invoices", expected: domain.TriageTask},
		{name: "note prefix", content: "Note: the router password is on the fridge", expected: domain.TriageNote},
		{name: "idea prefix", content: "idea: pottery class", expected: domain.TriageNote},
		{name: "someday", content: "Learn Portuguese someday", expected: domain.TriageSomeday},
		{name: "maybe", content: "maybe repaint the hallway", expected: domain.TriageSomeday},
		{name: "project prefix", content: "project: garden beds", expected: domain.TriageProject},
		{name: "launch", content: "Launch the newsletter", expected: domain.TriageProject},
		{name: "empty", content: "   ", expected: domain.TriageTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Suggest(tt.content))
		})
	}
}
