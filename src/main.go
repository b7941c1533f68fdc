package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	lru "github.com/hashicorp/golang-lru/v2"

	"crosswarped.com/springs"
	"crosswarped.com/springs/internal/config"
	"crosswarped.com/springs/internal/ctxlog"
)

// MaxRecords bounds how many records a single request may count.
const MaxRecords = 1000

var errBadRequest = errors.New("bad request")

type CountArrangementsRequest struct {
	Records []string `json:"records"`
	Scope   string   `json:"scope"`
	Unfold  int      `json:"unfold"`
}

type RecordResult struct {
	Index        int    `json:"index"`
	Record       string `json:"record"`
	Arrangements int    `json:"arrangements"`
	Unfolded     int    `json:"unfolded"`
}

type CountArrangementsResponse struct {
	Success       bool           `json:"success"`
	Results       []RecordResult `json:"results"`
	Total         int            `json:"total"`
	UnfoldedTotal int            `json:"unfoldedTotal"`
	Error         string         `json:"error,omitempty"`
}

type cachedCounts struct {
	base, unfolded int
}

type server struct {
	source  recordSource
	cache   *lru.Cache[string, cachedCounts]
	workers int
	logger  *slog.Logger
}

func newServer(cfg *config.Config, source recordSource, logger *slog.Logger) (*server, error) {
	cache, err := lru.New[string, cachedCounts](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("lru.New: %w", err)
	}
	return &server{
		source:  source,
		cache:   cache,
		workers: cfg.Workers,
		logger:  logger,
	}, nil
}

func cacheKey(unfold int, rec springs.Record) string {
	return strconv.Itoa(unfold) + "|" + rec.Repr()
}

func (s *server) execute(ctx context.Context, req CountArrangementsRequest) (*CountArrangementsResponse, error) {
	logger := ctxlog.FromContext(ctx)

	if req.Unfold == 0 {
		req.Unfold = springs.DefaultUnfold
	}
	if req.Unfold < 1 || req.Unfold > 10 {
		return nil, fmt.Errorf("%w: unfold must be between 1 and 10", errBadRequest)
	}

	lines := req.Records
	if req.Scope != "" {
		scoped, err := s.source.Records(ctx, req.Scope)
		if err != nil {
			return nil, fmt.Errorf("loading scope %q: %w", req.Scope, err)
		}
		logger.Info("loaded scoped records", "scope", req.Scope, "count", len(scoped))
		lines = append(lines, scoped...)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: records must not be empty", errBadRequest)
	}
	if len(lines) > MaxRecords {
		return nil, fmt.Errorf("%w: at most %d records may be counted at once", errBadRequest, MaxRecords)
	}

	records := make([]springs.Record, len(lines))
	for i, line := range lines {
		rec, err := springs.ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records[i] = rec
	}

	resp := &CountArrangementsResponse{Results: make([]RecordResult, len(records))}

	// Only records missing from the cache go through the solver.
	var missing []springs.Record
	var missingIdx []int
	for i, rec := range records {
		resp.Results[i] = RecordResult{Index: i, Record: rec.Repr()}
		if c, ok := s.cache.Get(cacheKey(req.Unfold, rec)); ok {
			resp.Results[i].Arrangements = c.base
			resp.Results[i].Unfolded = c.unfolded
			continue
		}
		missing = append(missing, rec)
		missingIdx = append(missingIdx, i)
	}
	logger.Debug("checked result cache", "records", len(records), "misses", len(missing))

	if len(missing) > 0 {
		solver := springs.Solver{Unfold: req.Unfold, Workers: s.workers}
		report, err := solver.Solve(ctx, missing)
		if err != nil {
			return nil, err
		}
		for j, i := range missingIdx {
			resp.Results[i].Arrangements = report.Base[j]
			resp.Results[i].Unfolded = report.Unfolded[j]
			s.cache.Add(cacheKey(req.Unfold, missing[j]), cachedCounts{base: report.Base[j], unfolded: report.Unfolded[j]})
		}
	}

	for _, r := range resp.Results {
		resp.Total += r.Arrangements
		resp.UnfoldedTotal += r.Unfolded
	}
	resp.Success = true
	return resp, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(CountArrangementsResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func (s *server) countArrangements(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	ctx := ctxlog.WithLogger(r.Context(), s.logger)

	var req CountArrangementsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("parsing JSON body", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	resp, err := s.execute(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errBadRequest) || errors.Is(err, springs.ErrMalformedRecord) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("counting arrangements", "error", err, "status", status)
		writeError(w, status, err)
		return
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("marshaling response", "error", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}
	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	var source recordSource = noSource{}
	if cfg.BigQuery.Enabled() {
		source = bigQuerySource{cfg: cfg.BigQuery}
	}

	srv, err := newServer(cfg, source, logger)
	if err != nil {
		log.Fatalf("newServer: %v\n", err)
	}

	funcframework.RegisterHTTPFunction("/count-arrangements", srv.countArrangements)

	logger.Info("starting function", "hostname", cfg.Hostname, "port", cfg.Port, "bigquery", cfg.BigQuery.Enabled())
	if err := funcframework.StartHostPort(cfg.Hostname, cfg.Port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
