package strategy

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// site is a fake website that serves fixed responses and counts hits per path
type site struct {
	*httptest.Server
	mu     sync.Mutex
	hits   map[string]int
	routes map[string]route
}

type route struct {
	status      int
	contentType string
	body        string
}

func newSite(t *testing.T, routes map[string]route) *site {
	t.Helper()
	s := &site{hits: make(map[string]int), routes: routes}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		s.mu.Lock()
		s.hits[key]++
		s.mu.Unlock()

		rt, ok := s.routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if rt.contentType != "" {
			w.Header().Set("Content-Type", rt.contentType)
		}
		status := rt.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(rt.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *site) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}
