package curriculum

import "math"

// Toggle flips Completed on the addressed item. With subtopicID empty the
// topic itself is flipped; otherwise only the subtopic is. Parent and child
// flags never cascade. It reports false, leaving c untouched, when any id
// does not resolve.
//
// Toggle mutates c in place. Callers that share c should Clone first.
func (c Curriculum) Toggle(sectionID, topicID, subtopicID string) bool {
	item := c.find(sectionID, topicID, subtopicID)
	if item == nil {
		return false
	}
	item.Completed = !item.Completed
	return true
}

// Lookup returns a copy of the addressed item.
func (c Curriculum) Lookup(sectionID, topicID, subtopicID string) (Item, bool) {
	item := c.find(sectionID, topicID, subtopicID)
	if item == nil {
		return Item{}, false
	}
	return *item, true
}

func (c Curriculum) find(sectionID, topicID, subtopicID string) *Item {
	for si := range c {
		if c[si].ID != sectionID {
			continue
		}
		for ti := range c[si].Topics {
			topic := &c[si].Topics[ti]
			if topic.ID != topicID {
				continue
			}
			if subtopicID == "" {
				return topic
			}
			for ki := range topic.Subtopics {
				if topic.Subtopics[ki].ID == subtopicID {
					return &topic.Subtopics[ki]
				}
			}
			return nil
		}
		return nil
	}
	return nil
}

// ComputeStats counts every topic and every subtopic.
func ComputeStats(c Curriculum) Stats {
	var st Stats
	for _, s := range c {
		for _, t := range s.Topics {
			st.Total++
			if t.Completed {
				st.Completed++
			}
			for _, sub := range t.Subtopics {
				st.Total++
				if sub.Completed {
					st.Completed++
				}
			}
		}
	}
	return st
}

// DomainBreakdown reports completion per section using top-level topics only.
func DomainBreakdown(c Curriculum) []Domain {
	out := make([]Domain, 0, len(c))
	for _, s := range c {
		d := Domain{Name: s.Title, Total: len(s.Topics)}
		for _, t := range s.Topics {
			if t.Completed {
				d.Completed++
			}
		}
		d.Percentage = percent(d.Completed, d.Total)
		out = append(out, d)
	}
	return out
}

// WeakestDomain returns the entry with the lowest percentage. Ties go to the
// earliest entry. ok is false for an empty breakdown.
func WeakestDomain(breakdown []Domain) (Domain, bool) {
	if len(breakdown) == 0 {
		return Domain{}, false
	}
	weakest := breakdown[0]
	for _, d := range breakdown[1:] {
		if d.Percentage < weakest.Percentage {
			weakest = d
		}
	}
	return weakest, true
}

// IncompleteTopics lists what is left to revise, in syllabus order. Each
// incomplete topic appears as "<section>: <topic>" and is followed by the
// bare titles of its incomplete subtopics. Subtopics of a completed topic
// are not listed.
func IncompleteTopics(c Curriculum) []string {
	var out []string
	for _, s := range c {
		for _, t := range s.Topics {
			if t.Completed {
				continue
			}
			out = append(out, s.Title+": "+t.Title)
			for _, sub := range t.Subtopics {
				if !sub.Completed {
					out = append(out, sub.Title)
				}
			}
		}
	}
	return out
}

// Merge lays the completion flags of saved onto base, matching by id.
// Sections and topics come from base, so items added to the syllabus show
// up and items that no longer exist are dropped. base is not modified.
func Merge(base, saved Curriculum) Curriculum {
	out := base.Clone()
	for si := range out {
		ss := findSection(saved, out[si].ID)
		if ss == nil {
			continue
		}
		mergeItems(out[si].Topics, ss.Topics)
	}
	return out
}

func mergeItems(dst, src []Item) {
	byID := make(map[string]*Item, len(src))
	for i := range src {
		byID[src[i].ID] = &src[i]
	}
	for i := range dst {
		s, ok := byID[dst[i].ID]
		if !ok {
			continue
		}
		dst[i].Completed = s.Completed
		mergeItems(dst[i].Subtopics, s.Subtopics)
	}
}

func findSection(c Curriculum, id string) *Section {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// percent mirrors round(completed/total*100) with halves rounded up.
func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(completed)/float64(total)*100 + 0.5))
}
