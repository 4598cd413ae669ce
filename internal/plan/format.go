package plan

import (
	"fmt"
	"strings"
)

// Text renders the plan as plain text for the terminal or the clipboard.
func (p *StudyPlan) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Title)
	fmt.Fprintf(&b, "Created: %s\n", p.CreatedAt.Local().Format("2 Jan 2006"))
	for _, d := range p.Schedule {
		fmt.Fprintf(&b, "\n%s", d.Day)
		if d.Notes != "" {
			fmt.Fprintf(&b, "  (%s)", d.Notes)
		}
		b.WriteString("\n")
		for _, s := range d.Sessions {
			fmt.Fprintf(&b, "  - %s [%s] %s", s.Topic, s.Duration, s.Method)
			if s.Focus != "" {
				fmt.Fprintf(&b, ". Focus: %s", s.Focus)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
