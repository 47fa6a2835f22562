// Package backendtest provides an in-process fake of the analysis backend.
// It implements the HTTP contract the client consumes and is scriptable for
// failure injection, so orchestration behavior can be exercised end to end
// without a real backend.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/plaide-ai/intake/internal/model"
)

const signingSecret = "backendtest-secret"

// Server is a scriptable fake backend.
type Server struct {
	// URL is the base URL clients should point at.
	URL string

	hs *httptest.Server

	mu          sync.Mutex
	cases       map[string]*model.Case
	evidence    map[string][]model.EvidenceItem
	transcripts map[string][]model.ChatMessage

	analysisScripts map[string][]model.AnalysisStatusResponse
	analysisIndex   map[string]int
	startCalls      map[string]int

	uploadCalls int
	failUpload  map[string]int
	failChat    int
}

// New starts the fake backend.
func New() *Server {
	s := &Server{
		cases:           make(map[string]*model.Case),
		evidence:        make(map[string][]model.EvidenceItem),
		transcripts:     make(map[string][]model.ChatMessage),
		analysisScripts: make(map[string][]model.AnalysisStatusResponse),
		analysisIndex:   make(map[string]int),
		startCalls:      make(map[string]int),
		failUpload:      make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(requireToken)

		r.Route("/api/cases", func(r chi.Router) {
			r.Post("/", s.handleCreateCase)
			r.Get("/", s.handleListCases)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCase)
				r.Put("/", s.handleUpdateCase)
				r.Delete("/", s.handleDeleteCase)
				r.Get("/synthesis", s.handleSynthesis)

				r.Post("/evidence", s.handleUpload)
				r.Get("/evidence", s.handleListEvidence)

				r.Post("/analyze", s.handleStartAnalysis)
				r.Get("/analyze/status", s.handleAnalysisStatus)

				r.Post("/chat", s.handleChat)
				r.Get("/chat/history", s.handleChatHistory)
				r.Delete("/chat/history", s.handleClearChat)

				r.Get("/export/pdf", s.handleExport("application/pdf", "%PDF-1.7 fake synthesis"))
				r.Get("/export/docx", s.handleExport(
					"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
					"PK fake synthesis"))
			})
		})
		r.Get("/api/evidence/{id}", s.handleGetEvidence)
		r.Delete("/api/evidence/{id}", s.handleDeleteEvidence)
	})

	s.hs = httptest.NewServer(r)
	s.URL = s.hs.URL
	return s
}

// Close shuts the fake backend down.
func (s *Server) Close() {
	s.hs.Close()
}

// IssueToken signs a bearer token the fake backend accepts.
func IssueToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signingSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		_, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(signingSecret), nil
		})
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- scripting -------------------------------------------------------------

// SetAnalysisScript queues the status responses a case's analysis will report,
// in order. The last entry repeats once the script is exhausted.
func (s *Server) SetAnalysisScript(caseID string, script []model.AnalysisStatusResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysisScripts[caseID] = script
	s.analysisIndex[caseID] = 0
}

// FailUpload makes uploads of the named file fail with the given status.
func (s *Server) FailUpload(filename string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUpload[filename] = status
}

// FailNextChat makes the next n chat sends fail with a 500.
func (s *Server) FailNextChat(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failChat = n
}

// UploadCalls reports how many upload requests reached the server.
func (s *Server) UploadCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploadCalls
}

// StartCalls reports how many analysis starts reached the server for a case.
func (s *Server) StartCalls(caseID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startCalls[caseID]
}

// AddCase seeds a case without going through the create endpoint.
func (s *Server) AddCase(c model.Case) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[c.ID] = &c
}

// --- handlers --------------------------------------------------------------

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid credentials payload")
		return
	}
	writeJSON(w, http.StatusOK, model.AuthResponse{
		AccessToken: IssueToken(req.Email),
		TokenType:   "bearer",
		User:        model.User{ID: uuid.NewString(), Email: req.Email, CreatedAt: time.Now()},
	})
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	now := time.Now()
	c := &model.Case{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Title:      req.Title,
		ClientName: req.ClientName,
		CaseType:   req.CaseType,
		Status:     model.CaseStatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	s.cases[c.ID] = c
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := model.ListCasesResponse{Cases: []model.Case{}}
	for _, c := range s.cases {
		resp.Cases = append(resp.Cases, *c)
	}
	resp.Total = len(resp.Cases)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cases[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}
	out := *c
	out.EvidenceCount = len(s.evidence[c.ID])
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cases[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}
	if req.Title != "" {
		c.Title = req.Title
	}
	if req.ClientName != "" {
		c.ClientName = req.ClientName
	}
	if req.CaseType != "" {
		c.CaseType = req.CaseType
	}
	c.UpdatedAt = time.Now()
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCase(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, ok := s.cases[id]; !ok {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}
	delete(s.cases, id)
	delete(s.evidence, id)
	delete(s.transcripts, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSynthesis(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cases[chi.URLParam(r, "id")]
	if !ok || c.Synthesis == nil {
		writeError(w, http.StatusNotFound, "synthesis not available")
		return
	}
	writeJSON(w, http.StatusOK, c.Synthesis)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploadCalls++
	if status, ok := s.failUpload[header.Filename]; ok {
		writeError(w, status, fmt.Sprintf("upload of %s rejected", header.Filename))
		return
	}

	item := model.EvidenceItem{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CaseID:    caseID,
		Filename:  header.Filename,
		MediaKind: model.MediaDocument,
		MimeType:  header.Header.Get("Content-Type"),
		SizeBytes: header.Size,
		CreatedAt: time.Now(),
	}
	s.evidence[caseID] = append(s.evidence[caseID], item)

	writeJSON(w, http.StatusCreated, model.UploadResult{
		EvidenceID: item.ID,
		Status:     "uploaded",
		Filename:   item.Filename,
	})
}

func (s *Server) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.evidence[chi.URLParam(r, "id")]
	if items == nil {
		items = []model.EvidenceItem{}
	}
	writeJSON(w, http.StatusOK, model.ListEvidenceResponse{Evidence: items})
}

func (s *Server) handleGetEvidence(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for _, items := range s.evidence {
		for _, item := range items {
			if item.ID == id {
				writeJSON(w, http.StatusOK, item)
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "evidence not found")
}

func (s *Server) handleDeleteEvidence(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for caseID, items := range s.evidence {
		for i, item := range items {
			if item.ID == id {
				s.evidence[caseID] = append(items[:i], items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "evidence not found")
}

func (s *Server) handleStartAnalysis(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cases[caseID]; !ok {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}
	s.startCalls[caseID]++
	writeJSON(w, http.StatusAccepted, model.StartAnalysisResponse{
		Status:  "started",
		Message: "analysis queued",
	})
}

func (s *Server) handleAnalysisStatus(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	script := s.analysisScripts[caseID]
	if len(script) == 0 {
		writeJSON(w, http.StatusOK, model.AnalysisStatusResponse{
			Status:   model.AnalysisCompleted,
			Progress: 100,
		})
		return
	}

	idx := s.analysisIndex[caseID]
	if idx >= len(script) {
		idx = len(script) - 1
	} else {
		s.analysisIndex[caseID]++
	}
	writeJSON(w, http.StatusOK, script[idx])
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "id")

	var req model.SendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failChat > 0 {
		s.failChat--
		writeError(w, http.StatusInternalServerError, "chat backend unavailable")
		return
	}

	now := time.Now()
	answer := "Réponse: " + req.Message
	sources := []model.SourceRef{{Evidence: "piece-1", Page: "2", Excerpt: "extrait"}}

	s.transcripts[caseID] = append(s.transcripts[caseID],
		model.ChatMessage{ID: uuid.NewString(), Role: model.RoleUser, Content: req.Message, CreatedAt: now},
		model.ChatMessage{ID: uuid.NewString(), Role: model.RoleAssistant, Content: answer, Sources: sources, CreatedAt: now},
	)

	writeJSON(w, http.StatusOK, model.ChatResponse{Response: answer, Sources: sources})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := s.transcripts[chi.URLParam(r, "id")]
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, model.ChatHistoryResponse{Messages: messages})
}

func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.transcripts, chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(contentType, payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		_, ok := s.cases[chi.URLParam(r, "id")]
		s.mu.Unlock()

		if !ok {
			writeError(w, http.StatusNotFound, "case not found")
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(payload))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
