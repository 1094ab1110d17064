package main_test

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mainapp "laptopstore" // Alias the main package for clarity
	"laptopstore/internal/config"
)

const t14Body = `{"name":"T14","description":"business laptop","price":"999","processor":"i7","ram":"16GB","storage":"512GB","display":"14in","os":"Linux","graphics":"integrated"}`

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(backend string) config.Config {
	return config.Config{
		AppPort:         ":0",
		DatabaseDriver:  "sqlite",
		DatabaseURL:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		StorageBackend:  backend,
		CORSAllowOrigin: "http://localhost:5173",
	}
}

func newServer(t *testing.T, cfg config.Config) *mainapp.Server {
	t.Helper()
	srv, err := mainapp.NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func request(t *testing.T, srv *mainapp.Server, method, path, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	resp, err := srv.App.Test(httptest.NewRequest(method, path, reader), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestHealthCheck(t *testing.T) {
	srv := newServer(t, testConfig(config.BackendMemory))

	resp, body := request(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"healthy"`)
	assert.Contains(t, body, `"storage":"memory"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestLaptopLifecycleOnEveryBackend(t *testing.T) {
	for _, backend := range []string{config.BackendGORM, config.BackendSQL, config.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			srv := newServer(t, testConfig(backend))

			resp, body := request(t, srv, http.MethodPost, "/laptops", t14Body)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "Laptop created", body)

			resp, body = request(t, srv, http.MethodGet, "/laptops/1", "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var laptop map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(body), &laptop))
			assert.Equal(t, float64(1), laptop["id"])
			assert.Equal(t, "T14", laptop["name"])

			resp, _ = request(t, srv, http.MethodDelete, "/laptops/1", "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			resp, _ = request(t, srv, http.MethodDelete, "/laptops/1", "")
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestReadCacheWiring(t *testing.T) {
	redisSrv := miniredis.RunT(t)
	cfg := testConfig(config.BackendGORM)
	cfg.RedisAddr = redisSrv.Addr()
	cfg.CacheTTL = time.Minute
	srv := newServer(t, cfg)

	request(t, srv, http.MethodPost, "/laptops", t14Body)
	resp, _ := request(t, srv, http.MethodGet, "/laptops/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, redisSrv.Exists("laptop:1"))

	request(t, srv, http.MethodDelete, "/laptops/1", "")
	assert.False(t, redisSrv.Exists("laptop:1"))
	resp, _ = request(t, srv, http.MethodGet, "/laptops/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewApp_Failures(t *testing.T) {
	cfg := testConfig(config.BackendGORM)
	cfg.RedisAddr = "127.0.0.1:1"
	cfg.CacheTTL = time.Minute
	_, err := mainapp.NewApp(cfg)
	assert.ErrorContains(t, err, "Redis")

	cfg = testConfig("bogus")
	_, err = mainapp.NewApp(cfg)
	assert.Error(t, err)
}
