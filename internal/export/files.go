package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// Files lists the paths written by WriteFiles.
type Files struct {
	Markdown   string
	Packet     string
	Transcript string
}

// WriteFiles writes <base>.md, <base>.docx and <base>-transcript.docx into dir.
func WriteFiles(dir, base string, doc Document) (Files, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Files{}, fmt.Errorf("create output dir: %w", err)
	}

	files := Files{
		Markdown:   filepath.Join(dir, base+".md"),
		Packet:     filepath.Join(dir, base+".docx"),
		Transcript: filepath.Join(dir, base+"-transcript.docx"),
	}

	if err := os.WriteFile(files.Markdown, []byte(Markdown(doc)), 0644); err != nil {
		return Files{}, fmt.Errorf("write markdown: %w", err)
	}
	if err := WritePacket(files.Packet, doc); err != nil {
		return Files{}, err
	}
	if doc.Transcript != "" {
		if err := WriteTranscriptDocx(files.Transcript, doc.Title+" - Transcript", doc.Transcript); err != nil {
			return Files{}, err
		}
	} else {
		files.Transcript = ""
	}

	return files, nil
}
