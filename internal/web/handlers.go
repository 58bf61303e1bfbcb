package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/surface"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	quizSurface := surface.New()
	s.renderer.Build(quizSurface)
	s.writePage(w, r, quizSurface, "", "")
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	quizSurface, results, res := s.grade(func(qs *surface.Surface) { qs.ApplyForm(r.PostForm) })
	s.record(r.Context(), store.SourceWeb, res)
	s.writePage(w, r, quizSurface, results.Text(), res.Performance())
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, qs *surface.Surface, results, performance string) {
	markup, err := qs.HTML()
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render surface", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	err = renderPage(&buf, pageData{
		Title:       s.bank.Title(),
		Quiz:        markup,
		Results:     results,
		Performance: performance,
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type questionView struct {
	Group   string   `json:"group"`
	Kind    string   `json:"kind"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}

type quizView struct {
	Title     string         `json:"title"`
	Questions []questionView `json:"questions"`
}

func (s *Server) handleQuiz(w http.ResponseWriter, _ *http.Request) {
	view := quizView{Title: s.bank.Title(), Questions: make([]questionView, 0, s.bank.Len())}
	for i, q := range s.bank.Questions() {
		qv := questionView{Group: quiz.GroupID(i), Kind: string(q.Kind()), Prompt: q.Text()}
		switch c := q.(type) {
		case quiz.SingleChoice:
			qv.Options = c.Options
		case quiz.MultiChoice:
			qv.Options = c.Options
		}
		view.Questions = append(view.Questions, qv)
	}
	writeJSON(w, http.StatusOK, view)
}

type scoreRequest struct {
	Answers map[string][]string `json:"answers"`
}

type outcomeView struct {
	Group    string   `json:"group"`
	Answered bool     `json:"answered"`
	Correct  bool     `json:"correct"`
	Response []string `json:"response,omitempty"`
}

type scoreResponse struct {
	Score       int           `json:"score"`
	Total       int           `json:"total"`
	Summary     string        `json:"summary"`
	Percentage  float64       `json:"percentage"`
	Performance string        `json:"performance"`
	Outcomes    []outcomeView `json:"outcomes"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	_, results, res := s.grade(func(qs *surface.Surface) { qs.ApplyForm(url.Values(req.Answers)) })
	s.record(r.Context(), store.SourceAPI, res)

	out := scoreResponse{
		Score:       res.Score,
		Total:       res.Total,
		Summary:     results.Text(),
		Percentage:  res.Percentage(),
		Performance: res.Performance(),
		Outcomes:    make([]outcomeView, 0, len(res.Outcomes)),
	}
	for _, o := range res.Outcomes {
		out.Outcomes = append(out.Outcomes, outcomeView{
			Group:    quiz.GroupID(o.Index),
			Answered: o.Answered,
			Correct:  o.Correct,
			Response: o.Response,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
