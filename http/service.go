package http

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tferdous17/tango/store"
	"github.com/tferdous17/tango/utils"
)

type Service struct {
	addr string
	ln   net.Listener
	mux  *http.ServeMux

	registry *store.Registry
	forest   *store.Forest
}

// NewService returns an unitialized HTTP service
func NewService(addr string, registry *store.Registry, forest *store.Forest) *Service {
	s := &Service{
		addr:     addr,
		registry: registry,
		forest:   forest,
		mux:      http.NewServeMux(),
	}
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/tree/", s.handleTreeRequest)
	s.mux.HandleFunc("/tango/", s.handleTangoRequest)
	return s
}

func (s *Service) Start() error {
	server := http.Server{
		Handler: s,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		err := server.Serve(s.ln)
		if err != nil && !errors.Is(err, net.ErrClosed) {
			utils.LogRED("serve err: %s", err)
		}
	}()

	return nil
}

func (s *Service) Close() error {
	return s.ln.Close()
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Service) Addr() net.Addr {
	return s.ln.Addr()
}

// pathInts parses the integer segments after prefix, e.g. /tree/<id>/<key>.
func pathInts(path, prefix string) ([]int, bool) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(path, prefix), "/"), "/")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, utils.ErrInvalidID), errors.Is(err, utils.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrTreeExists):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (s *Service) handleTreeRequest(w http.ResponseWriter, r *http.Request) {
	args, ok := pathInts(r.URL.Path, "/tree/")
	if !ok || len(args) == 0 || len(args) > 2 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id := args[0]

	if len(args) == 1 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		io.WriteString(w, s.registry.Show(id))
		return
	}
	key := args[1]

	switch r.Method {
	case http.MethodPost:
		s.registry.Insert(id, key)
		w.WriteHeader(http.StatusCreated)

	case http.MethodGet:
		if !s.registry.Contains(id, key) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, strconv.Itoa(key))

	case http.MethodDelete:
		if err := s.registry.Remove(id, key); err != nil {
			w.WriteHeader(statusOf(err))
			return
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Service) handleTangoRequest(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/tango/"), "/"), "/")
	name := parts[0]
	if name == "" || len(parts) > 2 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodPost:
			n, err := strconv.Atoi(r.URL.Query().Get("size"))
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if err := s.forest.Create(name, n); err != nil {
				w.WriteHeader(statusOf(err))
				return
			}
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			out, err := s.forest.Show(name)
			if err != nil {
				w.WriteHeader(statusOf(err))
				return
			}
			io.WriteString(w, out)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	key, err := strconv.Atoi(parts[1])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	res, err := s.forest.Search(name, key)
	if err != nil {
		w.WriteHeader(statusOf(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		utils.LogRED("encode err: %s", err)
	}
}
