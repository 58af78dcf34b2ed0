package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/application/service"
	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/csvexport"
	"go.uber.org/zap"
)

const (
	msgEmptyURL       = "Please enter a URL."
	msgInvalidURL     = "Invalid URL format"
	msgUnavailable    = "Error: league data is unavailable right now, try again later"
	msgUnprocessable  = "Error: the league data could not be processed"
	defaultHistoryLen = 20
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type LeagueTables interface {
	FetchLeagueTable(ctx context.Context, leagueURL string) (service.LeagueResult, error)
	Export(ctx context.Context, token models.ExportToken) (models.Table, error)
	History(ctx context.Context, limit int) ([]models.FetchRecord, error)
}

type LeagueHandler struct {
	log     *zap.Logger
	service LeagueTables
	timeout time.Duration
}

type pageView struct {
	LeagueURL  string
	XMasHeader string
	Error      string
	LeagueID   string
	Columns    []string
	Rows       [][]string
	ExportURL  string
	FileName   string
	NoData     bool
}

type leagueMatchesResponse struct {
	LeagueID    string         `json:"league_id,omitempty"`
	Matches     []models.Match `json:"matches"`
	ExportToken string         `json:"export_token,omitempty"`
	Error       string         `json:"error,omitempty"`
}

func NewLeagueHandler(log *zap.Logger, service LeagueTables, timeout time.Duration) *LeagueHandler {
	return &LeagueHandler{log: log, service: service, timeout: timeout}
}

// Register mounts the web form, exports and JSON API on r.
func (h *LeagueHandler) Register(r chi.Router) {
	r.Get("/", h.Form)
	r.Post("/", h.Submit)
	r.Get("/exports/{token}", h.Download)
	r.Get("/api/v1/matches", h.GetMatches)
	r.Get("/api/v1/history", h.GetHistory)
	r.Get("/healthz", Health)
}

func (h *LeagueHandler) Form(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, pageView{})
}

func (h *LeagueHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, pageView{Error: msgInvalidURL})
		return
	}

	view := pageView{
		LeagueURL:  strings.TrimSpace(r.PostFormValue("league_url")),
		XMasHeader: r.PostFormValue("x_mas"),
	}
	if view.LeagueURL == "" {
		view.Error = msgEmptyURL
		h.render(w, http.StatusOK, view)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.service.FetchLeagueTable(ctx, view.LeagueURL)
	view.LeagueID = string(result.LeagueID)

	switch {
	case err == nil:
	case errors.Is(err, derr.ErrInvalidInput):
		view.Error = msgInvalidURL
		h.render(w, http.StatusOK, view)
		return
	case errors.Is(err, derr.ErrTransport), errors.Is(err, context.DeadlineExceeded):
		view.Error = msgUnavailable
		view.NoData = true
		h.render(w, http.StatusOK, view)
		return
	default:
		h.log.Error("league table failed", zap.String("league_url", view.LeagueURL), zap.Error(err))
		view.Error = msgUnprocessable
		h.render(w, http.StatusBadGateway, view)
		return
	}

	if result.Table.Empty() {
		view.NoData = true
		h.render(w, http.StatusOK, view)
		return
	}

	view.Columns = models.Columns
	view.Rows = make([][]string, 0, result.Table.Len())
	for _, m := range result.Table.Matches {
		view.Rows = append(view.Rows, csvexport.Record(m))
	}
	if result.ExportToken != "" {
		view.ExportURL = "/exports/" + string(result.ExportToken)
		view.FileName = csvexport.FileName
	}

	h.render(w, http.StatusOK, view)
}

func (h *LeagueHandler) Download(w http.ResponseWriter, r *http.Request) {
	token := models.ExportToken(strings.TrimSpace(chi.URLParam(r, "token")))
	if token == "" {
		http.NotFound(w, r)
		return
	}

	table, err := h.service.Export(r.Context(), token)
	if err != nil {
		if errors.Is(err, derr.ErrExportNotFound) {
			http.Error(w, "export not found or expired", http.StatusNotFound)
			return
		}
		h.log.Error("load export failed", zap.String("export_token", string(token)), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data, err := csvexport.Encode(table)
	if err != nil {
		h.log.Error("encode export failed", zap.String("export_token", string(token)), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", csvexport.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvexport.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *LeagueHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	leagueURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if leagueURL == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.service.FetchLeagueTable(ctx, leagueURL)
	resp := leagueMatchesResponse{
		LeagueID:    string(result.LeagueID),
		Matches:     result.Table.Matches,
		ExportToken: string(result.ExportToken),
	}
	if resp.Matches == nil {
		resp.Matches = []models.Match{}
	}
	if err != nil {
		status, message := mapLeagueError(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("league matches request failed", zap.String("league_url", leagueURL), zap.Error(err))
		}
		resp.Error = message
		writeJSON(w, status, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *LeagueHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, _, errMsg := parsePositiveIntQuery(r, "limit")
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	if limit == 0 {
		limit = defaultHistoryLen
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		h.log.Error("load fetch history failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": records,
	})
}

func Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func mapLeagueError(err error) (int, string) {
	switch {
	case errors.Is(err, derr.ErrInvalidInput):
		return http.StatusBadRequest, "invalid URL format"
	case errors.Is(err, derr.ErrTransport):
		return http.StatusBadGateway, "league data unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline exceeded"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "request canceled"
	default:
		return http.StatusBadGateway, "upstream response could not be processed"
	}
}

func (h *LeagueHandler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

func (h *LeagueHandler) render(w http.ResponseWriter, status int, view pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, view); err != nil {
		h.log.Error("render page failed", zap.Error(err))
	}
}
