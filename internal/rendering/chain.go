// Package rendering merges values into the master application template.
package rendering

import "strings"

// Substitute replaces every literal occurrence of token in template with value.
func Substitute(template, token, value string) string {
	if token == "" {
		return template
	}
	return strings.ReplaceAll(template, token, value)
}

// Step is one placeholder substitution.
type Step struct {
	Token string
	Value string
}

// Chain is an ordered sequence of substitutions.
//
// Steps run in the order they were added. A step only scans text that came
// from the template: values inserted by earlier steps are never rescanned, so
// a body that happens to contain "{{SIGNATURE}}" stays literal.
type Chain struct {
	steps []Step
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a step and returns the chain for further calls.
func (c *Chain) Add(token, value string) *Chain {
	c.steps = append(c.steps, Step{Token: token, Value: value})
	return c
}

// segment is either template text (still scannable) or an inserted value.
type segment struct {
	text     string
	inserted bool
}

// Apply runs the chain over template and returns the merged text.
// The template string itself is never modified.
func (c *Chain) Apply(template string) string {
	segments := []segment{{text: template}}

	for _, step := range c.steps {
		if step.Token == "" {
			continue
		}
		next := make([]segment, 0, len(segments))
		for _, seg := range segments {
			if seg.inserted || !strings.Contains(seg.text, step.Token) {
				next = append(next, seg)
				continue
			}
			parts := strings.Split(seg.text, step.Token)
			for i, part := range parts {
				if i > 0 {
					next = append(next, segment{text: step.Value, inserted: true})
				}
				if part != "" {
					next = append(next, segment{text: part})
				}
			}
		}
		segments = next
	}

	var result strings.Builder
	result.Grow(len(template))
	for _, seg := range segments {
		result.WriteString(seg.text)
	}
	return result.String()
}
