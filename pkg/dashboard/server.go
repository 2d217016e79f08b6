package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anrid/world-population/pkg/chart"
	"github.com/anrid/world-population/pkg/logger"
	"github.com/anrid/world-population/pkg/table"
)

// Server serves one Context. Handlers only read the context, so requests
// need no coordination.
type Server struct {
	ctx      *Context
	registry *Registry
	addr     string
}

func NewServer(ctx *Context, registry *Registry, addr string) *Server {
	return &Server{ctx: ctx, registry: registry, addr: addr}
}

// Handler returns the routes wrapped in the access log.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/_update", s.handleUpdate)
	mux.HandleFunc("/chart/", s.handleChart)
	mux.HandleFunc("/api/table", s.handleTable)
	mux.HandleFunc("/export.xlsx", s.handleExport)
	return accessLog(mux)
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("Dashboard running at http://%s", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Infof("Shutting down dashboard")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var buf bytes.Buffer
	if err := RenderPage(s.ctx, s.registry, &buf); err != nil {
		logger.Errorf("render page: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type updateRequest struct {
	Binding string            `json:"binding"`
	Inputs  []json.RawMessage `json:"inputs"`
}

type updateResponse struct {
	Binding string                 `json:"binding"`
	Outputs map[string]interface{} `json:"outputs"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req updateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrBadInput, err))
		return
	}

	out, err := s.registry.Dispatch(s.ctx, req.Binding, req.Inputs)
	switch {
	case errors.Is(err, ErrUnknownBinding):
		writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, ErrBadInput):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		logger.Errorf("binding %s: %v", req.Binding, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, updateResponse{Binding: req.Binding, Outputs: out})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/chart/"), ".svg")
	from, to, err := s.yearParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rows := s.ctx.Dataset.FilterYears(from, to)
	var spec chart.Spec
	switch chart.Kind(name) {
	case chart.KindPie:
		spec = chart.Pie(rows)
	case chart.KindBar:
		spec = chart.Bar(rows)
	case chart.KindLine:
		spec = chart.Line(rows)
	default:
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(spec, &buf); err != nil {
		logger.Errorf("render %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	q, err := tableQuery(r, s.ctx.Dataset.Len())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := table.Apply(s.ctx.Dataset.Columns(), s.ctx.Dataset.Rows(), q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.yearParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	columns := s.ctx.Dataset.Columns()
	rows := s.ctx.Dataset.FilterYears(from, to)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, columns, rows); err != nil {
		logger.Errorf("export: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="population_%d_%d.xlsx"`, from, to))
	_, _ = buf.WriteTo(w)
}

// yearParams reads from / to, defaulting to the full range of the data.
func (s *Server) yearParams(r *http.Request) (int, int, error) {
	from, to := s.ctx.MinYear, s.ctx.MaxYear
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: from=%q", ErrBadInput, v)
		}
		from = n
	}
	if v := q.Get("to"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: to=%q", ErrBadInput, v)
		}
		to = n
	}
	return from, to, nil
}

// tableQuery reads page, page_size, sort, desc and filter[Col]. A page size
// the dropdown does not offer falls back to the default.
func tableQuery(r *http.Request, n int) (table.Query, error) {
	values := r.URL.Query()
	q := table.Query{
		PageSize:   table.DefaultPageSize,
		SortBy:     values.Get("sort"),
		Descending: values.Get("desc") == "true",
		Filters:    make(map[string]string),
	}

	intParam := func(name string, dst *int) error {
		v := values.Get(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrBadInput, name, v)
		}
		*dst = n
		return nil
	}
	if err := intParam("page", &q.Page); err != nil {
		return q, err
	}
	if err := intParam("page_size", &q.PageSize); err != nil {
		return q, err
	}
	if !table.ValidPageSize(q.PageSize, n) {
		q.PageSize = table.DefaultPageSize
	}

	for key, v := range values {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") && len(v) > 0 {
			q.Filters[key[len("filter["):len(key)-1]] = v[0]
		}
	}
	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
