package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/export"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/study"
)

var (
	outDir        string
	chunkSize     int
	quizQuestions int
	flashcards    int
	modelVariant  string
	showSummaries bool
)

var processCmd = &cobra.Command{
	Use:   "process [audio]",
	Short: "Generate study notes for one lecture recording",
	Long: `process runs a single .wav or .mp3 recording through the pipeline and
prints the transcript and study packet.

Examples:
  lecturenotes process week1.mp3
  lecturenotes process week1.mp3 --chunk-size 3000 --quiz 5 --flashcards 8
  lecturenotes process week1.wav --out notes/`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVar(&outDir, "out", "", "write <name>.md and <name>.docx into this directory")
	processCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "transcript chunk size in characters (default from config)")
	processCmd.Flags().IntVar(&quizQuestions, "quiz", 0, "number of quiz questions (default from config)")
	processCmd.Flags().IntVar(&flashcards, "flashcards", 0, "number of flashcards (default from config)")
	processCmd.Flags().StringVar(&modelVariant, "model", "", "transcription model variant (default from config)")
	processCmd.Flags().BoolVar(&showSummaries, "summaries", false, "print each chunk summary")
}

// Styling
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

// progressPrinter reports pipeline progress on the terminal.
type progressPrinter struct{}

func (progressPrinter) StageStarted(ctx context.Context, stage processor.Stage) {
	if stage != processor.StageDone {
		fmt.Println(mutedStyle.Render("→ " + string(stage) + "..."))
	}
}

func (progressPrinter) ChunkDone(ctx context.Context, done, total int) {
	fmt.Println(mutedStyle.Render(fmt.Sprintf("  chunk %d/%d summarized", done, total)))
}

func runProcess(cmd *cobra.Command, args []string) error {
	audioPath := args[0]

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if chunkSize != 0 && (chunkSize < cfg.Chunking.MinSize || chunkSize > cfg.Chunking.MaxSize) {
		return fmt.Errorf("--chunk-size must be between %d and %d", cfg.Chunking.MinSize, cfg.Chunking.MaxSize)
	}
	for name, n := range map[string]int{"--quiz": quizQuestions, "--flashcards": flashcards} {
		if n < 0 || n > cfg.Study.MaxCount {
			return fmt.Errorf("%s must be between 1 and %d", name, cfg.Study.MaxCount)
		}
	}

	if modelVariant != "" && !slices.Contains(cfg.Transcription.Variants, modelVariant) {
		return fmt.Errorf("--model must be one of %s", strings.Join(cfg.Transcription.Variants, ", "))
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("read audio: %w", err)
	}

	proc, _, err := buildProcessor(cfg, log)
	if err != nil {
		return err
	}

	filename := filepath.Base(audioPath)
	fmt.Println()
	fmt.Println(headerStyle.Render("Lecture: ") + bodyStyle.Render(filename))
	fmt.Println()

	res, err := proc.Process(cmd.Context(), processor.Request{
		Filename:  filename,
		Audio:     data,
		ChunkSize: chunkSize,
		Counts:    study.Counts{QuizQuestions: quizQuestions, Flashcards: flashcards},
		Model:     modelVariant,
		Observer:  progressPrinter{},
	})
	if res != nil && res.Transcript != "" {
		printSection("Raw Transcript", res.Transcript)
	}
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	if showSummaries {
		for _, s := range res.Summaries {
			printSection(fmt.Sprintf("Chunk %d", s.Index+1), s.Text)
		}
	}
	printSection("Notes", res.Material.Notes())
	printSection("Quiz & Flashcards", res.Material.Practice())

	if outDir != "" {
		base := strings.TrimSuffix(filename, filepath.Ext(filename))
		files, err := export.WriteFiles(outDir, base, export.Document{
			Title:      base,
			Transcript: res.Transcript,
			Material:   res.Material,
			Generated:  time.Now(),
		})
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		fmt.Println(successStyle.Render("✓ Saved " + files.Markdown))
		fmt.Println(successStyle.Render("✓ Saved " + files.Packet))
		if files.Transcript != "" {
			fmt.Println(successStyle.Render("✓ Saved " + files.Transcript))
		}
	}

	fmt.Println(mutedStyle.Render(fmt.Sprintf("Done in %s (%d chunks)", res.Duration.Round(time.Millisecond), len(res.Chunks))))
	return nil
}

func printSection(title, body string) {
	fmt.Println(headerStyle.Render(title + ":"))
	fmt.Println(bodyStyle.Render(strings.TrimSpace(body)))
	fmt.Println()
}
