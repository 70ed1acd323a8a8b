package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/mithrel/showcase/internal/db"
	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/pkg/api"
)

// Server serves the site live from the catalog.
type Server struct {
	store    db.Store
	renderer *document.Renderer
	title    string
	log      *log.Logger
}

func NewServer(store db.Store, renderer *document.Renderer, title string, logger *log.Logger) *Server {
	if renderer == nil {
		renderer = &document.Renderer{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, renderer: renderer, title: title, log: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /project/{slug}", s.handleProject)
	mux.HandleFunc("GET /project/{slug}/{$}", s.handleProject)
	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("GET /api/projects/{slug}", s.handleGetProject)
	mux.HandleFunc("GET /api/projects/{slug}/documents/{field}", s.handleDocument)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.writePage(w, http.StatusNotFound, NotFoundPage(s.title))
	})
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context(), api.ListQuery{Category: r.URL.Query().Get("category")})
	if err != nil {
		s.fail(w, "index", err)
		return
	}
	s.writePage(w, http.StatusOK, IndexPage(s.title, projects))
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProject(r.Context(), r.PathValue("slug"))
	if errors.Is(err, db.ErrNotFound) {
		s.writePage(w, http.StatusNotFound, NotFoundPage(s.title))
		return
	}
	if err != nil {
		s.fail(w, "project", err)
		return
	}
	s.writePage(w, http.StatusOK, ProjectPage(s.title, p, format.RenderDocuments(s.renderer, p)))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context(), api.ListQuery{Category: r.URL.Query().Get("category")})
	if err != nil {
		s.fail(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, func(b *bytes.Buffer) error { return format.WriteJSONProjects(b, projects, false) })
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.project(w, r)
	if !ok {
		return
	}
	docs := format.RenderDocuments(s.renderer, p)
	writeJSON(w, http.StatusOK, func(b *bytes.Buffer) error { return format.WriteJSONProject(b, p, docs, false) })
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := s.project(w, r)
	if !ok {
		return
	}
	raw, known := p.Document(api.DocumentField(r.PathValue("field")))
	if !known {
		writeError(w, http.StatusNotFound, "unknown document field")
		return
	}
	el := s.renderer.Render(raw)
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		var buf bytes.Buffer
		if err := format.WriteHTML(&buf, el); err != nil {
			s.fail(w, "document", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
		return
	}
	writeJSON(w, http.StatusOK, func(b *bytes.Buffer) error { return format.WriteJSONElement(b, el, false) })
}

func (s *Server) project(w http.ResponseWriter, r *http.Request) (api.Project, bool) {
	p, err := s.store.GetProject(r.Context(), r.PathValue("slug"))
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "project not found")
		return api.Project{}, false
	}
	if err != nil {
		s.fail(w, "project", err)
		return api.Project{}, false
	}
	return p, true
}

func (s *Server) writePage(w http.ResponseWriter, status int, n *html.Node) {
	var buf bytes.Buffer
	if err := Write(&buf, n); err != nil {
		s.fail(w, "render", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.log.Printf("site: %s: %v", what, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, encode func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
