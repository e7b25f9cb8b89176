package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"esports-tracker/internal/analytics"
	"esports-tracker/internal/constants"
	"esports-tracker/internal/domain"
	"esports-tracker/internal/service"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	HeaderReportStart  = "X-Report-Start"
	HeaderReportEnd    = "X-Report-End"
	HeaderExcluded     = "X-Excluded-Records"
	HeaderTopPerformer = "X-Top-Performer"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type TrackerServer struct {
	reportSvc *service.ReportService
	playerSvc *service.PlayerService
	health    Pinger
	logger    zerolog.Logger
}

func NewTrackerServer(reportSvc *service.ReportService, playerSvc *service.PlayerService, health Pinger, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{reportSvc: reportSvc, playerSvc: playerSvc, health: health, logger: logger}
}

func (s *TrackerServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/report", s.GetReport)
	mux.HandleFunc("GET /api/report/csv", s.GetReportCSV)
	mux.HandleFunc("GET /api/leaderboard", s.GetLeaderboard)
	mux.HandleFunc("POST /api/players", s.CreatePlayer)
	mux.HandleFunc("GET /api/players/{name}", s.GetProfile)
	mux.HandleFunc("GET /api/players/{name}/history", s.GetHistory)
	mux.HandleFunc("GET /api/players/{name}/graph", s.GetGraph)
	mux.HandleFunc("POST /api/players/{name}/deactivate", s.setActive(false))
	mux.HandleFunc("POST /api/players/{name}/restore", s.setActive(true))
	mux.HandleFunc("POST /api/stats", s.SubmitStats)
	mux.HandleFunc("GET /healthz", s.Health)
}

func (s *TrackerServer) GetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := s.reportSvc.Report(r.Context(), domain.ParseDateRange(q.Get("start"), q.Get("end")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReport(w, r, report, "application/json", analytics.EncodeJSON)
}

func (s *TrackerServer) GetReportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := s.reportSvc.Report(r.Context(), domain.ParseDateRange(q.Get("start"), q.Get("end")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment;filename=report.csv")
	s.writeReport(w, r, report, "text/csv", analytics.EncodeCSV)
}

func (s *TrackerServer) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	report, err := s.reportSvc.Leaderboard(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeReport(w, r, report, "application/json", analytics.EncodeJSON)
}

type historyItem struct {
	Date     string  `json:"date"`
	Kills    int     `json:"kills"`
	Booyah   int     `json:"booyah"`
	Damage   float64 `json:"damage"`
	Survival int     `json:"survival"`
}

func (s *TrackerServer) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.playerSvc.History(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, historyItem{
			Date:     rec.Date.Format(constants.DateLayout),
			Kills:    rec.Kills,
			Booyah:   rec.Booyah,
			Damage:   rec.Damage,
			Survival: rec.Survival,
		})
	}
	s.writeJSON(w, r, http.StatusOK, items)
}

type profileResponse struct {
	Name       string  `json:"name"`
	Active     bool    `json:"active"`
	BestKills  int     `json:"best_kills"`
	BestDamage float64 `json:"best_damage"`
	Matches    int     `json:"matches"`
	Kills      int     `json:"kills"`
	Damage     float64 `json:"damage"`
	AvgKills   float64 `json:"avg_kills"`
	WinRate    float64 `json:"winrate"`
}

func (s *TrackerServer) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.playerSvc.Profile(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, profileResponse{
		Name:       p.Player.Name,
		Active:     p.Player.Active,
		BestKills:  p.Player.BestKills,
		BestDamage: p.Player.BestDamage,
		Matches:    p.Summary.Matches,
		Kills:      p.Summary.Kills,
		Damage:     p.Summary.Damage,
		AvgKills:   p.Summary.AvgKills,
		WinRate:    p.Summary.WinRate,
	})
}

type graphResponse struct {
	Dates []string `json:"dates"`
	Kills []int    `json:"kills"`
}

func (s *TrackerServer) GetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.playerSvc.Graph(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, graphResponse{Dates: g.Dates, Kills: g.Kills})
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

type playerResponse struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (s *TrackerServer) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if !s.decode(w, r, &req) {
		return
	}
	p, err := s.playerSvc.Create(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, playerResponse{Name: p.Name, Active: p.Active})
}

func (s *TrackerServer) setActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if err := s.playerSvc.SetActive(r.Context(), name, active); err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, playerResponse{Name: name, Active: active})
	}
}

type submitStatsRequest struct {
	Player   string  `json:"player"`
	Date     string  `json:"date"`
	Kills    int     `json:"kills"`
	Booyah   int     `json:"booyah"`
	Damage   float64 `json:"damage"`
	Survival int     `json:"survival"`
}

type submitStatsResponse struct {
	ID string `json:"id"`
}

func (s *TrackerServer) SubmitStats(w http.ResponseWriter, r *http.Request) {
	var req submitStatsRequest
	if !s.decode(w, r, &req) {
		return
	}
	rec, err := s.playerSvc.Submit(r.Context(), service.Submission{
		Player:   req.Player,
		Date:     req.Date,
		Kills:    req.Kills,
		Booyah:   req.Booyah,
		Damage:   req.Damage,
		Survival: req.Survival,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, submitStatsResponse{ID: rec.ID})
}

func (s *TrackerServer) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Ping(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// writeReport encodes into a buffer first so a failed encode never reaches
// the client as a truncated body.
func (s *TrackerServer) writeReport(w http.ResponseWriter, r *http.Request, report *domain.RankedReport, contentType string, encode func(io.Writer, []analytics.Row) error) {
	var buf bytes.Buffer
	if err := encode(&buf, analytics.Rows(*report)); err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Cache-Control", "no-store")
	h.Set(HeaderReportStart, report.Range.StartString())
	h.Set(HeaderReportEnd, report.Range.EndString())
	h.Set(HeaderExcluded, strconv.Itoa(report.Excluded))
	if top, ok := report.TopPerformer(); ok {
		h.Set(HeaderTopPerformer, top.Name)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *TrackerServer) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPlayerExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStorageUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = &s.logger
	}
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request rejected")
	}
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (s *TrackerServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to marshal response")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
