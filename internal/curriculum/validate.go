package curriculum

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the structural rules of a curriculum: non-empty ids and
// titles, ids unique within their parent, and at most one nesting level.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(c Curriculum) error {
	var errs []string

	sectionIDs := make(map[string]bool, len(c))
	for _, s := range c {
		if s.ID == "" || s.Title == "" {
			errs = append(errs, fmt.Sprintf("section %q: id and title are required", s.ID))
		}
		if sectionIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate section ID: %q", s.ID))
		}
		sectionIDs[s.ID] = true
		errs = append(errs, validateItems(s.ID, s.Topics, 0)...)
	}

	if len(errs) > 0 {
		return errors.New("curriculum validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}

func validateItems(parent string, items []Item, depth int) []string {
	var errs []string
	ids := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" || it.Title == "" {
			errs = append(errs, fmt.Sprintf("%s/%q: id and title are required", parent, it.ID))
		}
		if ids[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate ID %q under %q", it.ID, parent))
		}
		ids[it.ID] = true
		if len(it.Subtopics) == 0 {
			continue
		}
		if depth > 0 {
			errs = append(errs, fmt.Sprintf("subtopic %q under %q has its own subtopics", it.ID, parent))
			continue
		}
		errs = append(errs, validateItems(parent+"/"+it.ID, it.Subtopics, depth+1)...)
	}
	return errs
}
