package study

import "context"

// Counts are the requested sizes of the generated quiz and flashcard sets.
type Counts struct {
	QuizQuestions int `json:"quiz_questions"`
	Flashcards    int `json:"flashcards"`
}

// Sections is a best-effort split of the generated packet by heading.
type Sections struct {
	Summary    string `json:"summary,omitempty"`
	KeyTopics  string `json:"key_topics,omitempty"`
	Quiz       string `json:"quiz,omitempty"`
	Flashcards string `json:"flashcards,omitempty"`
}

// Material is the generated study packet. Raw is the verbatim model output.
type Material struct {
	Raw      string   `json:"raw"`
	Sections Sections `json:"sections"`
}

// Synthesizer turns the combined chunk summaries into a study packet.
type Synthesizer interface {
	Synthesize(ctx context.Context, combined string, counts Counts) (*Material, error)
}
