package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appanalysis "github.com/credifyai/credify-api/internal/application/analysis"
	domain "github.com/credifyai/credify-api/internal/domain/analysis"
	"github.com/credifyai/credify-api/internal/infra/news"
	"github.com/credifyai/credify-api/internal/middleware"
)

type Router struct {
	svc    *appanalysis.Service
	feed   *news.Feed
	logger *zap.Logger
}

func NewRouter(svc *appanalysis.Service, feed *news.Feed, logger *zap.Logger) http.Handler {
	r := &Router{svc: svc, feed: feed, logger: logger}
	mux := chi.NewRouter()

	mux.Get("/v1/news", r.wrap(r.handleNews))

	mux.Route("/v1/{user}", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/latest", r.wrap(r.handleLatest))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/history/{id}", r.wrap(r.handleHistoryItem))
		rt.Get("/stats", r.wrap(r.handleStats))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ep errProxy
		switch {
		case errors.As(err, &ep):
			http.Error(w, ep.msg, ep.status)
		case errors.Is(err, domain.ErrEmptyText),
			errors.Is(err, domain.ErrMissingUser),
			errors.Is(err, domain.ErrTextTooLong):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrModelBusy):
			http.Error(w, "the AI service is currently busy, please try again in a few moments", http.StatusServiceUnavailable)
		default:
			r.writeStageError(w, err)
		}
	}
}

// writeStageError keeps "analysis failed" distinguishable from "analysis
// succeeded but save failed" on the wire.
func (r *Router) writeStageError(w http.ResponseWriter, err error) {
	var se *domain.StageError
	if !errors.As(err, &se) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	if se.Stage == domain.StageModel {
		status = http.StatusBadGateway
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": se.Err.Error(),
		"stage": string(se.Stage),
	})
}

// userParam resolves the {user} path segment and, when auth is enabled,
// enforces that it matches the authenticated identity.
func (r *Router) userParam(req *http.Request) (string, error) {
	user := chi.URLParam(req, "user")
	if err := middleware.ValidateUserID(user); err != nil {
		return "", errProxy{status: http.StatusBadRequest, msg: err.Error()}
	}
	if auth := middleware.GetUserFromContext(req.Context()); auth != "" && auth != user {
		return "", errProxy{status: http.StatusForbidden, msg: "user does not match API key"}
	}
	return user, nil
}

// errProxy lets validation and auth checks pick their own HTTP status without
// a new sentinel per case; wrap writes it as-is.
type errProxy struct {
	status int
	msg    string
}

func (e errProxy) Error() string { return e.msg }

// POST /v1/{user}/analyze
// Body: {"text": "<content to analyze>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	user, err := r.userParam(req)
	if err != nil {
		return err
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return errProxy{status: http.StatusBadRequest, msg: "invalid request body"}
	}

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	rec, err := r.svc.Submit(req.Context(), appanalysis.SubmitCommand{
		UserID: user,
		Text:   middleware.SanitizeString(body.Text),
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(rec)
}

// GET /v1/{user}/latest?limit=
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	user, err := r.userParam(req)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.Latest(req.Context(), user, limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Analysis{}
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{user}/history?page=&page_size=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	user, err := r.userParam(req)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))
	size = middleware.ValidatePageSize(size)

	list, err := r.svc.History(req.Context(), user, page, size)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{user}/history/{id}
func (r *Router) handleHistoryItem(w http.ResponseWriter, req *http.Request) error {
	user, err := r.userParam(req)
	if err != nil {
		return err
	}
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return errProxy{status: http.StatusBadRequest, msg: err.Error()}
	}

	rec, err := r.svc.Get(req.Context(), user, domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rec)
}

// GET /v1/{user}/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	user, err := r.userParam(req)
	if err != nil {
		return err
	}

	s, err := r.svc.UserStats(req.Context(), user)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"total_scans":      s.TotalScans,
		"average_score":    s.AverageScore(),
		"suspicious_count": s.SuspiciousCount,
		"verified_sources": s.VerifiedSources,
		"last_updated":     s.LastUpdated,
	})
}

// GET /v1/news
func (r *Router) handleNews(w http.ResponseWriter, req *http.Request) error {
	headlines := []news.Headline{}
	if r.feed != nil {
		headlines = r.feed.Headlines()
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(headlines)
}
