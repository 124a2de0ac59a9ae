package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/study"
)

// Document is one lecture's exportable output.
type Document struct {
	Title      string
	Transcript string
	Material   *study.Material
	Generated  time.Time
}

// Markdown renders the study packet followed by the transcript.
func Markdown(doc Document) string {
	return fmt.Sprintf("# %s\n\n%s", doc.Title, body(doc))
}

// WritePacket writes the same content as Markdown to a docx file.
func WritePacket(outputPath string, doc Document) error {
	return WriteDocx(outputPath, doc.Title, body(doc))
}

func body(doc Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "_%s_\n\n", doc.Generated.Format("2006-01-02 15:04"))

	if doc.Material != nil {
		b.WriteString(strings.TrimSpace(doc.Material.Raw))
		b.WriteString("\n\n")
	}

	if doc.Transcript != "" {
		b.WriteString("## Transcript\n\n")
		b.WriteString(strings.Join(paragraphs(doc.Transcript), "\n\n"))
		b.WriteString("\n")
	}

	return b.String()
}
