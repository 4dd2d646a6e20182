// Package server exposes archived rankings over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/viant/wordrank/archive"
	"github.com/viant/wordrank/rank"
	"github.com/viant/wordrank/schedule"
	"github.com/viant/wordrank/wordlist"
)

// DefaultCacheSize is the number of records kept in memory when
// Options.CacheSize is zero.
const DefaultCacheSize = 64

// DefaultCacheTTL bounds how long a cached record is served when
// Options.CacheTTL is zero. A generator or importer writing to the same
// store from another process becomes visible after at most this long.
const DefaultCacheTTL = 10 * time.Minute

// Options configures a Server.
type Options struct {
	Addr     string
	Store    archive.Store
	Schedule *schedule.Schedule
	// Vocabulary is served by /api/wordlist, lower-cased and sorted.
	Vocabulary []string
	CacheSize  int
	CacheTTL   time.Duration
	Logger     *slog.Logger
	// Now supplies "today"; nil means time.Now.
	Now func() time.Time
}

// Server serves rankings read from an archive store. Found records are
// cached by date for at most the cache TTL; Invalidate drops one earlier.
type Server struct {
	addr     string
	store    archive.Store
	schedule *schedule.Schedule
	words    []string
	cache    *expirable.LRU[string, *archive.Record]
	logger   *slog.Logger
	now      func() time.Time
	mux      *http.ServeMux
}

// New creates a server.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if opts.Schedule == nil {
		return nil, errors.New("server: schedule is required")
	}
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	cache := expirable.NewLRU[string, *archive.Record](size, nil, ttl)
	s := &Server{
		addr:     opts.Addr,
		store:    opts.Store,
		schedule: opts.Schedule,
		words:    wordlist.Normalized(opts.Vocabulary),
		cache:    cache,
		logger:   opts.Logger,
		now:      opts.Now,
		mux:      http.NewServeMux(),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.setupRoutes()
	return s, nil
}

// Invalidate drops the cached record for date, so the next request reads the
// store again.
func (s *Server) Invalidate(date time.Time) {
	s.cache.Remove(schedule.FormatDate(date))
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/ranked", s.handleRanked)
	s.mux.HandleFunc("GET /ranked", s.handleRanked)
	s.mux.HandleFunc("GET /api/wordlist", s.handleWordlist)
	s.mux.HandleFunc("GET /api/daily-index", s.handleDailyIndex)
	s.mux.HandleFunc("GET /archive", s.handleArchiveList)
	s.mux.HandleFunc("GET /archive/{date}", s.handleArchiveDate)
	s.mux.HandleFunc("GET /robots.txt", s.handleRobots)
	s.mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
}

// Handler returns the HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		s.mux.ServeHTTP(rec, r)
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", time.Since(start))
	})
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleRanked(w http.ResponseWriter, r *http.Request) {
	day := schedule.Day(s.now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := schedule.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
			return
		}
		day = d
	}
	rec, ok := s.record(w, r, day, "ranking")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rankingOrEmpty(rec.Ranking))
}

type archiveGame struct {
	GameDate  string       `json:"game_date"`
	Ranking   []rank.Entry `json:"ranking"`
	CreatedAt *string      `json:"created_at"`
}

func (s *Server) handleArchiveDate(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("date")
	day, err := schedule.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
		return
	}
	rec, ok := s.record(w, r, day, "game")
	if !ok {
		return
	}
	game := archiveGame{GameDate: schedule.FormatDate(rec.GameDate), Ranking: rankingOrEmpty(rec.Ranking)}
	if !rec.CreatedAt.IsZero() {
		created := rec.CreatedAt.UTC().Format(time.RFC3339)
		game.CreatedAt = &created
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	dates, err := s.store.Dates(r.Context())
	if err != nil {
		s.logger.Error("archive list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "archive unavailable")
		return
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = schedule.FormatDate(d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDailyIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"game_number": s.schedule.GameNumber(s.now())})
}

func (s *Server) handleWordlist(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.words)
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml", baseURL(r))
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	base := baseURL(r)
	lastMod := schedule.FormatDate(s.now())
	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/</loc><lastmod>%[2]s</lastmod><changefreq>daily</changefreq><priority>1.0</priority></url>
  <url><loc>%[1]s/privacy.html</loc><lastmod>%[2]s</lastmod><changefreq>monthly</changefreq><priority>0.5</priority></url>
</urlset>`, base, lastMod)
}

// record loads the record for day, writing the error response itself when
// it returns false.
func (s *Server) record(w http.ResponseWriter, r *http.Request, day time.Time, what string) (*archive.Record, bool) {
	key := schedule.FormatDate(day)
	if rec, ok := s.cache.Get(key); ok {
		return rec, true
	}
	rec, err := s.store.Get(r.Context(), day)
	if errors.Is(err, archive.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s for %s not found", what, key))
		return nil, false
	}
	if err != nil {
		s.logger.Error("archive read failed", "date", key, "error", err)
		writeError(w, http.StatusInternalServerError, "ranking data unavailable")
		return nil, false
	}
	s.cache.Add(key, rec)
	return rec, true
}

func rankingOrEmpty(ranking []rank.Entry) []rank.Entry {
	if ranking == nil {
		return []rank.Entry{}
	}
	return ranking
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
