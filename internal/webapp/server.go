// Package webapp serves the VentureCompass HTTP API: idea submission,
// analysis status and results, business plan downloads and the dashboard.
package webapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/1234bibhash/venture-idea-compass/internal/businessplan"
	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
	"github.com/1234bibhash/venture-idea-compass/internal/logging"
	"github.com/1234bibhash/venture-idea-compass/internal/store"
	"github.com/1234bibhash/venture-idea-compass/internal/subscription"
	"github.com/1234bibhash/venture-idea-compass/internal/telemetry"
)

const (
	// UserHeader identifies the visitor. Requests without it are anonymous.
	UserHeader = "X-User-ID"

	historyLimit = 20
	maxBodyBytes = 1 << 20
)

type Options struct {
	Synthesizer   *ideaanalysis.Synthesizer
	Store         store.Backend
	Tracker       *subscription.Tracker
	PDFRenderer   businessplan.PDFRenderer
	Limiter       *rate.Limiter
	Logger        logrus.FieldLogger
	WebDir        string
	AnalysisDelay time.Duration
	Now           func() time.Time
}

type Server struct {
	synth   *ideaanalysis.Synthesizer
	store   store.Backend
	tracker *subscription.Tracker
	subs    *SubmissionStore
	pdf     businessplan.PDFRenderer
	limiter *rate.Limiter
	log     logrus.FieldLogger
	webDir  string
	delay   time.Duration
	now     func() time.Time
	mux     *http.ServeMux

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	jobs   sync.WaitGroup
}

// New wires the routes. Store is required; everything else has a default.
func New(opts Options) *Server {
	s := &Server{
		synth:   opts.Synthesizer,
		store:   opts.Store,
		tracker: opts.Tracker,
		subs:    NewSubmissionStore(),
		pdf:     opts.PDFRenderer,
		limiter: opts.Limiter,
		log:     opts.Logger,
		webDir:  opts.WebDir,
		delay:   opts.AnalysisDelay,
		now:     opts.Now,
	}
	if s.synth == nil {
		s.synth = ideaanalysis.NewSynthesizer()
	}
	if s.tracker == nil {
		s.tracker = subscription.NewTracker(s.store, subscription.DefaultFreeLimit)
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/industries", s.handleIndustries)
	mux.HandleFunc("/validate", s.handleValidate)
	mux.HandleFunc("/status/", s.handleStatus)
	mux.HandleFunc("/results/", s.handleResults)
	mux.HandleFunc("/plan/", s.handlePlan)
	mux.HandleFunc("/ideas/", s.handleIdea)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/premium", s.handlePremium)
	mux.HandleFunc("/", s.handleRoot)
	s.mux = mux
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close cancels pending analyses, waits for their jobs to exit and refuses
// new submissions afterwards.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.jobs.Wait()
	if failed := s.subs.FailPending("analysis cancelled: server shutting down"); len(failed) > 0 {
		s.releaseSlots(context.Background(), failed)
		s.log.WithField("count", len(failed)).Warn("pending analyses cancelled")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(UserHeader))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.webDir == "" {
		writeError(w, errNotFound("no such route"))
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Path == "/" || r.URL.Path == "/index.html" {
		http.ServeFile(w, r, filepath.Join(s.webDir, "index.html"))
		return
	}
	path := filepath.Join(s.webDir, filepath.Clean(r.URL.Path))
	if _, err := fs.Stat(os.DirFS(s.webDir), strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")); err == nil {
		http.ServeFile(w, r, path)
		return
	}
	http.NotFound(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleIndustries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"industries": ideaanalysis.Industries()})
}

// decodeIdea accepts either a JSON body or a url-encoded/multipart form.
func decodeIdea(r *http.Request) (ideaanalysis.IdeaSubmission, error) {
	var idea ideaanalysis.IdeaSubmission
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(&idea); err != nil {
			return idea, errValidation("invalid json: " + err.Error())
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return idea, errValidation("invalid form")
		}
		idea = ideaanalysis.IdeaSubmission{
			Title:        r.FormValue("title"),
			Description:  r.FormValue("description"),
			Industry:     r.FormValue("industry"),
			TargetMarket: r.FormValue("targetMarket"),
			Revenue:      r.FormValue("revenue"),
			UniqueValue:  r.FormValue("uniqueValue"),
		}
	}
	idea.Title = strings.TrimSpace(idea.Title)
	idea.Description = strings.TrimSpace(idea.Description)
	idea.Industry = strings.TrimSpace(idea.Industry)

	var missing []string
	if idea.Title == "" {
		missing = append(missing, "title")
	}
	if idea.Description == "" {
		missing = append(missing, "description")
	}
	if idea.Industry == "" {
		missing = append(missing, "industry")
	}
	if len(missing) > 0 {
		return idea, errValidation(strings.Join(missing, ", ") + " required")
	}
	if !ideaanalysis.IsKnownIndustry(idea.Industry) {
		return idea, errValidation(fmt.Sprintf("unknown industry %q", idea.Industry))
	}
	return idea, nil
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, span := telemetry.Tracer().Start(r.Context(), "webapp.validate")
	defer span.End()

	idea, err := decodeIdea(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user := userID(r)
	// refused hands the rate limiter token back when nothing was queued.
	var refused bool
	span.SetAttributes(attribute.String("idea.industry", idea.Industry), attribute.Bool("user.anonymous", user == ""))

	if s.limiter != nil {
		res := s.limiter.Reserve()
		if !res.OK() {
			writeError(w, errRateLimited(time.Second))
			return
		}
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			writeError(w, errRateLimited(delay))
			return
		}
		defer func() {
			if refused {
				res.Cancel()
			}
		}()
	}

	st, err := s.tracker.Reserve(ctx, user)
	if errors.Is(err, subscription.ErrQuotaExceeded) {
		refused = true
		writeError(w, errQuotaExceeded(st.IdeasLimit))
		return
	}
	if err != nil {
		refused = true
		span.RecordError(err)
		span.SetStatus(codes.Error, "reserve idea")
		s.log.WithError(err).WithField("user", user).Error("reserve idea")
		writeError(w, errInternal("failed to reserve idea"))
		return
	}

	sub, err := s.startAnalysis(user, idea)
	if err != nil {
		refused = true
		s.releaseSlots(ctx, []Submission{{UserID: user}})
		writeError(w, err)
		return
	}
	span.SetAttributes(attribute.String("submission.token", sub.Token))
	s.log.WithFields(logrus.Fields{"token": sub.Token, "user": user, "industry": idea.Industry}).Info("idea submitted")
	writeJSON(w, http.StatusOK, map[string]any{
		"token":  sub.Token,
		"status": sub.Status,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	token := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/status/"), "/")
	if token == "" {
		writeError(w, errValidation("token is required"))
		return
	}
	sub, ok := s.subs.Get(token)
	if !ok {
		writeError(w, errNotFound("submission not found"))
		return
	}
	payload := map[string]any{
		"token":  sub.Token,
		"status": sub.Status,
		"ready":  sub.Ready(),
	}
	if sub.Error != "" {
		payload["error"] = sub.Error
	}
	if sub.IdeaID != "" {
		payload["idea_id"] = sub.IdeaID
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	token := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/results/"), "/")
	if token == "sample" {
		writeJSON(w, http.StatusOK, ideaanalysis.SampleReport())
		return
	}
	report, err := s.readyReport(token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) readyReport(token string) (ideaanalysis.AnalysisReport, error) {
	if token == "" {
		return ideaanalysis.AnalysisReport{}, errValidation("token is required")
	}
	sub, ok := s.subs.Get(token)
	if !ok {
		return ideaanalysis.AnalysisReport{}, errNotFound("submission not found")
	}
	if sub.Status == StatusError {
		return ideaanalysis.AnalysisReport{}, errNotFound("analysis failed: " + sub.Error)
	}
	if !sub.Ready() {
		return ideaanalysis.AnalysisReport{}, errNotFound("report not ready")
	}
	return *sub.Report, nil
}

// handlePlan serves /plan/{token}, /plan/{token}.html and /plan/{token}.pdf.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	token := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/plan/"), "/")
	format := "txt"
	for _, ext := range []string{"html", "pdf", "txt"} {
		if strings.HasSuffix(token, "."+ext) {
			token = strings.TrimSuffix(token, "."+ext)
			format = ext
			break
		}
	}

	var (
		report ideaanalysis.AnalysisReport
		err    error
	)
	if token == "sample" {
		report = ideaanalysis.SampleReport()
	} else if report, err = s.readyReport(token); err != nil {
		writeError(w, err)
		return
	}

	ctx, span := telemetry.Tracer().Start(r.Context(), "businessplan.render")
	defer span.End()
	span.SetAttributes(attribute.String("plan.format", format), attribute.String("report.template", string(report.Template)))

	plan := businessplan.Generate(report, s.now())
	filename := businessplan.Filename(report.Title, format)
	logger := s.log.WithFields(logrus.Fields{"token": token, "format": format})

	switch format {
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, plan)
	case "html":
		doc, err := businessplan.RenderHTML(plan, report.Title)
		if err != nil {
			span.RecordError(err)
			logger.WithError(err).Error("render plan html")
			writeError(w, errInternal("failed to render plan"))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, doc)
	case "pdf":
		if s.pdf == nil {
			writeError(w, errUnavailable("pdf renderer unavailable"))
			return
		}
		doc, err := businessplan.RenderHTML(plan, report.Title)
		if err == nil {
			var pdf []byte
			if pdf, err = s.pdf.Render(ctx, doc); err == nil {
				w.Header().Set("Content-Type", "application/pdf")
				w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(pdf)
				return
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "render pdf")
		logger.WithError(err).Error("render plan pdf")
		writeError(w, errInternal("failed to render pdf"))
	}
}

func (s *Server) handleIdea(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/ideas/"), "/")
	if id == "" {
		writeError(w, errValidation("idea id is required"))
		return
	}
	// Anonymous ideas are archived without an owner and are never readable here.
	user := userID(r)
	rec, err := s.store.GetIdea(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && (user == "" || rec.UserID != user)) {
		writeError(w, errNotFound("idea not found"))
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("idea", id).Error("load idea")
		writeError(w, errInternal("failed to load idea"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type ideaSummary struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Industry  string                  `json:"industry"`
	Template  ideaanalysis.TemplateID `json:"template"`
	Score     int                     `json:"score"`
	CreatedAt time.Time               `json:"created_at"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userID(r)
	st, err := s.tracker.Status(r.Context(), user)
	if err != nil {
		s.log.WithError(err).WithField("user", user).Error("read subscription status")
		writeError(w, errInternal("failed to read subscription status"))
		return
	}
	ideas := []ideaSummary{}
	if user != "" {
		recs, err := s.store.ListIdeas(r.Context(), user, historyLimit)
		if err != nil {
			s.log.WithError(err).WithField("user", user).Error("list ideas")
			writeError(w, errInternal("failed to list ideas"))
			return
		}
		for _, rec := range recs {
			ideas = append(ideas, ideaSummary{
				ID:        rec.ID,
				Title:     rec.Title,
				Industry:  rec.Industry,
				Template:  rec.Template,
				Score:     rec.Score,
				CreatedAt: rec.CreatedAt,
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subscription": st,
		"ideas":        ideas,
	})
}

func (s *Server) handlePremium(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userID(r)
	if user == "" {
		writeError(w, errValidation(UserHeader+" header is required"))
		return
	}
	var req struct {
		Premium *bool `json:"premium"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, errValidation("invalid json: "+err.Error()))
		return
	}
	if req.Premium == nil {
		writeError(w, errValidation("premium is required"))
		return
	}
	if err := s.tracker.SetPremium(r.Context(), user, *req.Premium); err != nil {
		s.log.WithError(err).WithField("user", user).Error("set premium")
		writeError(w, errInternal("failed to update plan"))
		return
	}
	st, err := s.tracker.Status(r.Context(), user)
	if err != nil {
		writeError(w, errInternal("failed to read subscription status"))
		return
	}
	s.log.WithFields(logrus.Fields{"user": user, "premium": *req.Premium}).Info("plan changed")
	writeJSON(w, http.StatusOK, st)
}
