package study

import (
	"regexp"
	"strings"
)

var (
	reHeading     = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*$`)
	reBoldHeading = regexp.MustCompile(`^\*\*(.+?)\*\*:?$`)
	reNumbered    = regexp.MustCompile(`^\d+[.)]\s`)
)

type sectionKind int

const (
	kindNone sectionKind = iota
	kindSummary
	kindTopics
	kindQuiz
	kindFlashcards
)

// boldLevel ranks bold pseudo-headings below every markdown heading level.
const boldLevel = 7

type heading struct {
	kind     sectionKind
	level    int
	bold     bool
	numbered bool
}

// Parse splits a packet on its Summary, Key Topics, Quiz Questions and
// Flashcards headings. Text before the first section heading is dropped.
//
// A heading stays content when it names the current section (per-item
// headings such as "### Flashcard 2"), or when it names a section already
// seen and is either deeper than the section headings or list-numbered.
// Bold lines only act as headings when the packet has no markdown section
// headings. A section that appears twice collects both parts.
func Parse(raw string) Sections {
	lines := strings.Split(raw, "\n")
	useBold := !hasMarkdownSections(lines)

	var (
		s            Sections
		current      = kindNone
		sectionLevel = 0
		seen         = map[sectionKind]bool{}
		buf          []string
	)

	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = buf[:0]
		switch current {
		case kindSummary:
			s.Summary = appendText(s.Summary, text)
		case kindTopics:
			s.KeyTopics = appendText(s.KeyTopics, text)
		case kindQuiz:
			s.Quiz = appendText(s.Quiz, text)
		case kindFlashcards:
			s.Flashcards = appendText(s.Flashcards, text)
		}
	}

	for _, line := range lines {
		h, ok := parseHeading(strings.TrimSpace(line))
		if !ok || (h.bold && !useBold) || !switches(h, current, sectionLevel, seen) {
			buf = append(buf, line)
			continue
		}

		flush()
		if current == kindNone {
			sectionLevel = h.level
		}
		current = h.kind
		seen[h.kind] = true
	}
	flush()

	return s
}

func switches(h heading, current sectionKind, sectionLevel int, seen map[sectionKind]bool) bool {
	if h.kind == current {
		return false
	}
	if current == kindNone {
		return true
	}
	if seen[h.kind] && (h.level > sectionLevel || h.numbered) {
		return false
	}
	return true
}

func hasMarkdownSections(lines []string) bool {
	for _, line := range lines {
		if h, ok := parseHeading(strings.TrimSpace(line)); ok && !h.bold {
			return true
		}
	}
	return false
}

func parseHeading(line string) (heading, bool) {
	var h heading
	var title string
	if m := reHeading.FindStringSubmatch(line); m != nil {
		h.level = len(m[1])
		title = m[2]
	} else if m := reBoldHeading.FindStringSubmatch(line); m != nil {
		h.level = boldLevel
		h.bold = true
		title = m[1]
	} else {
		return h, false
	}

	// questions and long lines are content, even when styled as headings
	if strings.Contains(title, "?") || len(title) > 40 {
		return h, false
	}
	h.numbered = reNumbered.MatchString(title)
	if h.bold && h.numbered {
		return h, false
	}

	h.kind = titleKind(strings.ToLower(title))
	return h, h.kind != kindNone
}

func titleKind(title string) sectionKind {
	switch {
	case strings.Contains(title, "flashcard"):
		return kindFlashcards
	case strings.Contains(title, "quiz"):
		return kindQuiz
	case strings.Contains(title, "topic"):
		return kindTopics
	case strings.Contains(title, "summary"):
		return kindSummary
	}
	return kindNone
}

func appendText(existing, text string) string {
	switch {
	case text == "":
		return existing
	case existing == "":
		return text
	}
	return existing + "\n\n" + text
}

// Notes is the summary and topic list, or the raw text when neither was found.
func (m *Material) Notes() string {
	if m.Sections.Summary == "" && m.Sections.KeyTopics == "" {
		return m.Raw
	}
	return joinSections(
		titled("Summary", m.Sections.Summary),
		titled("Key Topics", m.Sections.KeyTopics),
	)
}

// Practice is the quiz and flashcards, or the raw text when neither was found.
func (m *Material) Practice() string {
	if m.Sections.Quiz == "" && m.Sections.Flashcards == "" {
		return m.Raw
	}
	return joinSections(
		titled("Quiz Questions", m.Sections.Quiz),
		titled("Flashcards", m.Sections.Flashcards),
	)
}

func titled(title, body string) string {
	if body == "" {
		return ""
	}
	return "## " + title + "\n\n" + body
}

func joinSections(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
