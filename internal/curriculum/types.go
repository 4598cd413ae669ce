package curriculum

// Item is a topic or a subtopic. Only topics carry subtopics; nil and empty
// Subtopics mean the same thing everywhere in this package.
type Item struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
	Subtopics []Item `json:"subtopics,omitempty" yaml:"subtopics,omitempty"`
}

// Section is a top-level syllabus domain such as Pharmacology.
type Section struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Topics []Item `json:"topics" yaml:"topics"`
}

// Curriculum is the ordered list of sections the user tracks.
type Curriculum []Section

// Stats is the global completion count. Topics and subtopics are counted
// independently, so a topic with three subtopics contributes four to Total.
type Stats struct {
	Total     int
	Completed int
}

// Percent returns the rounded completion percentage, 0 when Total is 0.
func (s Stats) Percent() int {
	return percent(s.Completed, s.Total)
}

// Domain is one row of the per-section breakdown.
type Domain struct {
	Name       string
	Completed  int
	Total      int
	Percentage int
}

// Clone returns a deep copy.
func (c Curriculum) Clone() Curriculum {
	if c == nil {
		return nil
	}
	out := make(Curriculum, len(c))
	for i, s := range c {
		out[i] = Section{ID: s.ID, Title: s.Title, Topics: cloneItems(s.Topics)}
	}
	return out
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Subtopics = cloneItems(it.Subtopics)
	}
	return out
}
