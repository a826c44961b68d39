package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics(t *testing.T) {
	m := New(func() int { return 3 })

	h := m.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))
	for _, target := range []string{"/", "/", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	m.ObserveReload(nil)
	m.ObserveReload(errors.New("broken"))
	m.ObserveReload(nil)

	body := scrape(t, m)
	assert.Contains(t, body, `chaininsights_blog_http_requests_total{code="200"} 2`)
	assert.Contains(t, body, `chaininsights_blog_http_requests_total{code="404"} 1`)
	assert.Contains(t, body, `chaininsights_blog_reloads_total{status="success"} 2`)
	assert.Contains(t, body, `chaininsights_blog_reloads_total{status="error"} 1`)
	assert.Contains(t, body, "chaininsights_blog_livereload_clients 3")
}
