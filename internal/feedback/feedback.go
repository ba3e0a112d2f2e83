// internal/feedback/feedback.go

// Package feedback classifies the assistant's free-text code review into
// categorized items for display. The ✅/⚠️ markers and category keywords are
// a convention the prompt asks for, not a contract: lines that don't match
// fall into the defaults rather than failing.
package feedback

import "strings"

// Severity of one feedback line.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Item is one classified feedback line.
type Item struct {
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// CategoryRule maps keywords to a display category. Rules are checked in
// order and the first match wins.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// Classifier holds the marker and keyword tables. The zero value is not
// usable; start from DefaultClassifier and adjust.
type Classifier struct {
	SuccessMarkers  []string
	WarningMarkers  []string
	Categories      []CategoryRule
	DefaultCategory string
}

// DefaultClassifier returns the classifier matching the review prompt's
// requested format.
func DefaultClassifier() *Classifier {
	return &Classifier{
		SuccessMarkers: []string{"✅", "Good", "Well"},
		WarningMarkers: []string{"⚠️", "Consider", "Should"},
		Categories: []CategoryRule{
			{Name: "Structure", Keywords: []string{"Structure", "Architecture"}},
			{Name: "Patterns", Keywords: []string{"Pattern", "Design"}},
			{Name: "Best Practices", Keywords: []string{"Practice", "Standard"}},
			{Name: "Security", Keywords: []string{"Security"}},
			{Name: "Performance", Keywords: []string{"Performance"}},
		},
		DefaultCategory: "General",
	}
}

// Classify splits text into non-blank lines and classifies each one. The
// marker symbols are stripped from the displayed message.
func (c *Classifier) Classify(text string) []Item {
	var items []Item
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, Item{
			Category: c.category(line),
			Severity: c.severity(line),
			Message:  c.stripMarkers(line),
		})
	}
	return items
}

func (c *Classifier) severity(line string) Severity {
	if containsAny(line, c.SuccessMarkers) {
		return SeveritySuccess
	}
	if containsAny(line, c.WarningMarkers) {
		return SeverityWarning
	}
	return SeverityInfo
}

func (c *Classifier) category(line string) string {
	for _, rule := range c.Categories {
		if containsAny(line, rule.Keywords) {
			return rule.Name
		}
	}
	return c.DefaultCategory
}

func (c *Classifier) stripMarkers(line string) string {
	for _, marker := range []string{"✅", "⚠️"} {
		line = strings.ReplaceAll(line, marker, "")
	}
	return strings.TrimSpace(line)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
