package convert

import "github.com/dgallion1/factbook/internal/book"

// Tracker holds the state shared by every document of one run: the fact
// texts seen so far and the titles of topics already added to the Book.
// Entries are only ever added.
type Tracker struct {
	facts  map[string]struct{}
	topics map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{
		facts:  make(map[string]struct{}),
		topics: make(map[string]int),
	}
}

// SeenFact reports whether text was already registered in this run.
func (t *Tracker) SeenFact(text string) bool {
	_, ok := t.facts[text]
	return ok
}

// AddFact registers fact text.
func (t *Tracker) AddFact(text string) {
	t.facts[text] = struct{}{}
}

// AddTopic registers a topic title and reports whether it was already taken.
func (t *Tracker) AddTopic(title string) bool {
	t.topics[title]++
	return t.topics[title] > 1
}

// duplicateSubtopic returns the first subtopic title that appears twice.
func duplicateSubtopic(subs []book.Subtopic) (string, bool) {
	seen := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		if _, ok := seen[s.Title]; ok {
			return s.Title, true
		}
		seen[s.Title] = struct{}{}
	}
	return "", false
}
