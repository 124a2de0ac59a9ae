package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nguyentantai21042004/lecture-notes/internal/export"
	"github.com/nguyentantai21042004/lecture-notes/internal/jobs"
	"github.com/nguyentantai21042004/lecture-notes/internal/render"
)

type indexPage struct {
	Error    string
	Chunking struct{ Min, Max, Default int }
	Quiz     int
	Cards    int
	MaxCount int
	Models   []string
	Model    string
}

type lecturePage struct {
	Job        jobs.Snapshot
	Title      string
	Running    bool
	Notes      template.HTML
	Practice   template.HTML
	Summaries  []string
	Transcript string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r, http.StatusOK, "")
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	page := indexPage{
		Error:    errMsg,
		Quiz:     s.cfg.Study.QuizQuestions,
		Cards:    s.cfg.Study.Flashcards,
		MaxCount: s.cfg.Study.MaxCount,
		Models:   s.cfg.Transcription.Variants,
		Model:    s.cfg.Transcription.Variant,
	}
	page.Chunking.Min = s.cfg.Chunking.MinSize
	page.Chunking.Max = s.cfg.Chunking.MaxSize
	page.Chunking.Default = s.cfg.Chunking.Size

	s.renderPage(w, r, status, "index.html", page)
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	job, err := s.parseUpload(w, r)
	if err != nil {
		s.renderIndex(w, r, uploadStatus(err), err.Error())
		return
	}

	if err := s.runner.Submit(job); err != nil {
		s.renderIndex(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}

	http.Redirect(w, r, "/lectures/"+job.ID, http.StatusSeeOther)
}

func (s *Server) handleSubmitAPI(w http.ResponseWriter, r *http.Request) {
	job, err := s.parseUpload(w, r)
	if err != nil {
		jsonError(w, err.Error(), uploadStatus(err))
		return
	}

	if err := s.runner.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/lectures/%s", snap.ID),
		"page_url": fmt.Sprintf("/lectures/%s", snap.ID),
	})
}

func (s *Server) handleLectureStatus(w http.ResponseWriter, r *http.Request) {
	job := s.runner.Get(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleLecturePage(w http.ResponseWriter, r *http.Request) {
	job := s.runner.Get(chi.URLParam(r, "jobID"))
	if job == nil {
		http.Error(w, "lecture not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	page := lecturePage{
		Job:        snap,
		Title:      lectureTitle(snap.Filename),
		Running:    snap.Status == jobs.StatusQueued || snap.Status == jobs.StatusRunning,
		Summaries:  snap.Summaries,
		Transcript: snap.Transcript,
	}

	if m := snap.Material; m != nil {
		var err error
		if page.Notes, err = render.Markdown(m.Notes()); err != nil {
			s.log.Warn(r.Context(), "Render notes for %s: %v", snap.ID, err)
		}
		if page.Practice, err = render.Markdown(m.Practice()); err != nil {
			s.log.Warn(r.Context(), "Render practice for %s: %v", snap.ID, err)
		}
	}

	s.renderPage(w, r, http.StatusOK, "lecture.html", page)
}

func (s *Server) handlePacketMarkdown(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.completedJob(w, r)
	if !ok {
		return
	}

	title := lectureTitle(snap.Filename)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.md"`, title))
	w.Write([]byte(export.Markdown(document(snap))))
}

func (s *Server) handlePacketDocx(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.completedJob(w, r)
	if !ok {
		return
	}

	dir, err := os.MkdirTemp(s.cfg.Paths.Temp, "export-*")
	if err != nil {
		s.log.Error(r.Context(), "Create export dir: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(dir)

	title := lectureTitle(snap.Filename)
	path := filepath.Join(dir, "packet.docx")
	if err := export.WritePacket(path, document(snap)); err != nil {
		s.log.Error(r.Context(), "Write docx for %s: %v", snap.ID, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.docx"`, title))
	http.ServeFile(w, r, path)
}

// completedJob writes an error response unless the job finished successfully.
func (s *Server) completedJob(w http.ResponseWriter, r *http.Request) (jobs.Snapshot, bool) {
	job := s.runner.Get(chi.URLParam(r, "jobID"))
	if job == nil {
		http.Error(w, "lecture not found", http.StatusNotFound)
		return jobs.Snapshot{}, false
	}

	snap := job.Snapshot()
	if snap.Status != jobs.StatusCompleted || snap.Material == nil {
		http.Error(w, "study packet is not ready", http.StatusConflict)
		return snap, false
	}
	return snap, true
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf strings.Builder
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error(r.Context(), "Render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(buf.String()))
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"provider": s.cfg.LLM.Provider,
		"model":    s.cfg.LLM.Model,
		"stats":    s.stats.Snapshot(),
	})
}

func document(snap jobs.Snapshot) export.Document {
	return export.Document{
		Title:      lectureTitle(snap.Filename),
		Transcript: snap.Transcript,
		Material:   snap.Material,
		Generated:  snap.UpdatedAt,
	}
}

func lectureTitle(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func uploadStatus(err error) int {
	var ue *uploadError
	if errors.As(err, &ue) {
		return ue.status
	}
	return http.StatusBadRequest
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
