package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bittrader/internal/modules/health/service"
)

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMux_Readiness(t *testing.T) {
	state := service.NewState()
	cfg := Config{StaleAfter: map[string]time.Duration{"refresh": time.Hour}}
	mux := NewMux(cfg, state)

	assert.Equal(t, http.StatusOK, get(t, mux, "/livez").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, mux, "/readyz").Code)

	state.SetReady(true)
	assert.Equal(t, http.StatusOK, get(t, mux, "/readyz").Code)
}

func TestMux_StaleTask(t *testing.T) {
	state := service.NewState()
	state.SetReady(true)
	state.TickDone("scan", time.Now().Add(-time.Hour), nil)

	mux := NewMux(Config{StaleAfter: map[string]time.Duration{"scan": time.Minute}}, state)
	rec := get(t, mux, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "scan")
}

func TestMux_Healthz(t *testing.T) {
	state := service.NewState()
	at := time.Unix(1700000000, 0)
	state.TickDone("refresh", at, nil)
	state.TickDone("refresh", at, errors.New("timeout"))

	rec := get(t, NewMux(Config{}, state), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Ready bool                `json:"ready"`
		Tasks map[string]taskView `json:"tasks"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Ready)
	assert.Equal(t, taskView{LastRunUnix: 1700000000, LastError: "timeout", Runs: 2, Failures: 1}, body.Tasks["refresh"])
}

func TestMux_Metrics(t *testing.T) {
	rec := get(t, NewMux(Config{}, service.NewState()), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
