package convert

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/factbook/internal/book"
	"github.com/dgallion1/factbook/internal/parser"
)

// Nesting levels of inline tokens that carry facts, questions and attachments.
const (
	levelDescription = 1
	levelFact        = 3
	levelAttachment  = 5
	levelQuestion    = 6
)

// headingState is the element whose title is currently being read.
type headingState int

const (
	stateNone headingState = iota
	stateTopicHeading
	stateSubtopicHeading
)

// stepResult tells the walking loop whether to keep reading tokens.
type stepResult int

const (
	stepContinue stepResult = iota
	stepAbort
)

// docBuilder turns the token stream of one document into a Topic. It lives
// for exactly one document; only the Tracker outlives it.
type docBuilder struct {
	limits  Limits
	tracker *Tracker
	diags   *collector

	state  headingState
	h1Seen int

	topicTitle       string
	topicDescription string

	subtopicOpen  bool
	subtopicTitle string
	descLines     []string
	facts         []book.Fact
	currentFact   int

	subtopics []book.Subtopic
}

func newDocBuilder(fileIndex int, limits Limits, tracker *Tracker) *docBuilder {
	return &docBuilder{
		limits:      limits,
		tracker:     tracker,
		diags:       newCollector(fileIndex),
		currentFact: -1,
	}
}

// build walks tokens and validates the result. It returns nil when the
// document failed or produced an empty Topic.
func (b *docBuilder) build(tokens []parser.Token) *book.Topic {
	if b.walk(tokens) == stepAbort {
		return nil
	}
	topic, res := b.finish()
	if res == stepAbort || topic == nil {
		return nil
	}
	if b.checkDuplicates(topic) == stepAbort {
		return nil
	}
	return topic
}

func (b *docBuilder) walk(tokens []parser.Token) stepResult {
	for _, tok := range tokens {
		b.diags.observe(tok)
		if b.step(tok) == stepAbort {
			return stepAbort
		}
	}
	return b.flush()
}

func (b *docBuilder) step(tok parser.Token) stepResult {
	switch tok.Type {
	case parser.TypeHeadingOpen:
		switch tok.HeadingLevel() {
		case 1:
			return b.openTopic()
		case 2:
			if b.flush() == stepAbort {
				return stepAbort
			}
			b.subtopicOpen = true
			b.state = stateSubtopicHeading
		}
	case parser.TypeHeadingClose:
		switch tok.HeadingLevel() {
		case 1:
			return b.closeTopic()
		case 2:
			b.state = stateNone
			b.currentFact = -1
		}
	case parser.TypeInline:
		return b.inline(tok)
	}
	return stepContinue
}

func (b *docBuilder) openTopic() stepResult {
	if b.h1Seen == 0 && (b.subtopicOpen || len(b.subtopics) > 0) {
		name := b.subtopicTitle
		if name == "" && len(b.subtopics) > 0 {
			name = b.subtopics[0].Title
		}
		return b.fail("Subtopic [%s] must be enclosed inside a Topic.", strings.TrimSpace(name))
	}
	b.topicTitle = ""
	b.state = stateTopicHeading
	return stepContinue
}

func (b *docBuilder) closeTopic() stepResult {
	if b.state != stateTopicHeading {
		return stepContinue
	}
	b.h1Seen++
	if b.h1Seen >= 2 {
		return b.fail("Only one topic can be defined per file, found a second topic [%s].", strings.TrimSpace(b.topicTitle))
	}
	if strings.TrimSpace(b.topicTitle) == "" {
		return b.fail("Topic title cannot be empty.")
	}
	b.state = stateNone
	return stepContinue
}

func (b *docBuilder) inline(tok parser.Token) stepResult {
	switch {
	case b.state == stateTopicHeading:
		b.topicTitle += StripLinks(tok.Content)
		if title := strings.TrimSpace(b.topicTitle); tooLong(title, b.limits.Title) {
			return b.fail("Topic title [%s] exceeds the maximum length of %d characters.", truncate(title, 50), b.limits.Title)
		}

	case b.state == stateSubtopicHeading:
		b.subtopicTitle += StripLinks(tok.Content)
		if title := strings.TrimSpace(b.subtopicTitle); tooLong(title, b.limits.Title) {
			return b.fail("Subtopic title [%s] exceeds the maximum length of %d characters.", truncate(title, 50), b.limits.Title)
		}

	case tok.Level == levelFact:
		return b.addFact(tok.Content)

	case tok.Level == levelQuestion && b.currentFact >= 0:
		return b.addQuestion(tok.Content)

	case tok.Level >= levelAttachment && b.currentFact >= 0 && isAttachment(strings.TrimSpace(tok.Content)):
		return b.addAttachment(strings.TrimSpace(tok.Content))

	case tok.Level == levelDescription && tok.Content != "":
		b.descLines = append(b.descLines, tok.Content)
	}
	return stepContinue
}

func (b *docBuilder) addFact(content string) stepResult {
	text := strings.TrimSpace(StripLinks(content))
	if utf8.RuneCountInString(text) <= 1 {
		return b.fail("Fact cannot be empty, found [%s].", text)
	}
	if tooLong(text, b.limits.Fact) {
		return b.fail("Fact [%s] exceeds the maximum length of %d characters.", truncate(text, 50), b.limits.Fact)
	}
	if b.tracker.SeenFact(text) {
		b.warn("Fact [%s] is duplicated.", truncate(text, 50))
	}
	if !b.subtopicOpen {
		return b.fail("Facts must be contained inside subtopics, not in topics. Found [%s] in topic [%s].",
			truncate(text, 50), strings.TrimSpace(b.topicTitle))
	}
	b.tracker.AddFact(text)
	b.facts = append(b.facts, book.NewFact(text))
	b.currentFact = len(b.facts) - 1
	return stepContinue
}

func (b *docBuilder) addQuestion(content string) stepResult {
	q := strings.TrimSpace(StripLinks(content))
	if q == "" {
		return stepContinue
	}
	if tooLong(q, b.limits.Question) {
		return b.fail("Question [%s] exceeds the maximum length of %d characters.", truncate(q, 50), b.limits.Question)
	}
	f := &b.facts[b.currentFact]
	f.Questions = append(f.Questions, q)
	return stepContinue
}

func (b *docBuilder) addAttachment(wrapped string) stepResult {
	a := strings.TrimSpace(StripLinks(strings.Trim(wrapped, "`")))
	if a == "" {
		return stepContinue
	}
	if tooLong(a, b.limits.Attachment) {
		return b.fail("Attachment [%s] exceeds the maximum length of %d characters.", truncate(a, 50), b.limits.Attachment)
	}
	f := &b.facts[b.currentFact]
	f.Attachments = append(f.Attachments, a)
	return stepContinue
}

// flush closes whatever was being accumulated: the open Subtopic, or the
// Topic's own description when no Subtopic has been opened yet.
func (b *docBuilder) flush() stepResult {
	desc := buildDescription(b.descLines)

	if b.subtopicOpen {
		title := strings.TrimSpace(b.subtopicTitle)
		if title == "" {
			return b.fail("Subtopic title cannot be empty.")
		}
		if desc == "" {
			return b.fail("Subtopic [%s] is missing a description.", title)
		}
		if tooLong(desc, b.limits.Description) {
			return b.fail("Description of subtopic [%s] exceeds the maximum length of %d characters.", title, b.limits.Description)
		}
		facts := make([]book.Fact, len(b.facts))
		copy(facts, b.facts)
		b.subtopics = append(b.subtopics, book.Subtopic{
			Title:       title,
			Description: desc,
			Facts:       facts,
		})
	} else if len(b.descLines) > 0 {
		if tooLong(desc, b.limits.Description) {
			return b.fail("Description of topic [%s] exceeds the maximum length of %d characters.",
				strings.TrimSpace(b.topicTitle), b.limits.Description)
		}
		b.topicDescription = desc
	}

	b.facts = nil
	b.currentFact = -1
	b.subtopicOpen = false
	b.subtopicTitle = ""
	b.descLines = nil
	return stepContinue
}

// finish runs the checks that need the whole document and drops empty
// Subtopics. A nil Topic with stepContinue means the Topic was empty.
func (b *docBuilder) finish() (*book.Topic, stepResult) {
	title := strings.TrimSpace(b.topicTitle)
	if b.h1Seen == 0 {
		if len(b.subtopics) > 0 {
			return nil, b.fail("Subtopic [%s] must be enclosed inside a Topic.", b.subtopics[0].Title)
		}
		return nil, b.fail("Document has no topic, it must start with a level 1 heading.")
	}
	if strings.TrimSpace(b.topicDescription) == "" && len(b.diags.errors) == 0 {
		return nil, b.fail("Topic [%s] is missing a description.", title)
	}

	kept := make([]book.Subtopic, 0, len(b.subtopics))
	for _, s := range b.subtopics {
		if len(s.Facts) == 0 {
			b.diags.warn(snapshot{topic: title, subtopic: s.Title},
				fmt.Sprintf("Subtopic [%s] contains no fact (is empty) and will be ignored.", s.Title))
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		b.warn("Topic [%s] is empty (contains no subtopic) and will be ignored.", title)
		return nil, stepContinue
	}

	return &book.Topic{
		Title:       title,
		Description: b.topicDescription,
		Subtopics:   kept,
	}, stepContinue
}

func (b *docBuilder) checkDuplicates(topic *book.Topic) stepResult {
	if b.tracker.AddTopic(topic.Title) {
		return b.fail("Topic [%s] is duplicated.", topic.Title)
	}
	if name, dup := duplicateSubtopic(topic.Subtopics); dup {
		return b.fail("Subtopic [%s] is duplicated in topic [%s].", name, topic.Title)
	}
	return stepContinue
}

func (b *docBuilder) snapshot() snapshot {
	s := snapshot{
		topic:    strings.TrimSpace(b.topicTitle),
		subtopic: strings.TrimSpace(b.subtopicTitle),
	}
	if b.currentFact >= 0 && b.currentFact < len(b.facts) {
		s.fact = b.facts[b.currentFact].Text
	}
	return s
}

func (b *docBuilder) warn(format string, args ...any) {
	b.diags.warn(b.snapshot(), fmt.Sprintf(format, args...))
}

func (b *docBuilder) fail(format string, args ...any) stepResult {
	b.diags.fail(b.snapshot(), fmt.Sprintf(format, args...))
	return stepAbort
}
