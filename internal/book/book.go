package book

// Book is the result of converting a set of Markdown documents.
type Book struct {
	Topics []Topic `json:"topics" yaml:"topics"`
}

// Topic is the single top-level section of one source document.
type Topic struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Subtopics   []Subtopic `json:"subtopics" yaml:"subtopics"`
}

// Subtopic is a named group of facts inside a Topic.
type Subtopic struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Facts       []Fact `json:"facts" yaml:"facts"`
}

// Fact is an atomic statement with optional questions and attachments.
type Fact struct {
	Text        string   `json:"text" yaml:"text"`
	Questions   []string `json:"questions" yaml:"questions"`
	Attachments []string `json:"attachments" yaml:"attachments"`
}

// NewFact returns a Fact with empty (non-nil) question and attachment lists.
func NewFact(text string) Fact {
	return Fact{
		Text:        text,
		Questions:   []string{},
		Attachments: []string{},
	}
}

// New returns an empty Book.
func New() *Book {
	return &Book{Topics: []Topic{}}
}

// FactCount returns the number of facts across all topics.
func (b *Book) FactCount() int {
	n := 0
	for _, t := range b.Topics {
		for _, s := range t.Subtopics {
			n += len(s.Facts)
		}
	}
	return n
}
