package http_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/keboola/config-features/internal/pkg/dino"
	"github.com/keboola/config-features/internal/pkg/service/dino/api/config"
	"github.com/keboola/config-features/internal/pkg/service/dino/api/dependencies"
	dinoHttp "github.com/keboola/config-features/internal/pkg/service/dino/api/http"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type response struct {
	statusCode  int
	contentType string
	body        string
	err         error
}

func get(client *http.Client, url string) response {
	resp, err := client.Get(url)
	if err != nil {
		return response{err: err}
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return response{statusCode: resp.StatusCode, contentType: resp.Header.Get("Content-Type"), body: string(body), err: err}
}

func TestAPI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := config.New()
	cfg.API.Listen = "localhost:0"
	d, clock, logger := dependencies.NewMockedAPIScope(t, cfg)

	srv, err := dinoHttp.StartServer(ctx, d)
	require.NoError(t, err)
	baseURL := "http://" + srv.ListenAddress()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

	// roar waits for the delay, then returns the response
	roar := func(param string) response {
		ch := make(chan response, 1)
		go func() {
			ch <- get(client, baseURL+"/dino/says/"+param)
		}()
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(dino.DefaultDelay)
		return <-ch
	}

	// Health check
	resp := get(client, baseURL+"/health-check")
	require.NoError(t, resp.err)
	assert.Equal(t, http.StatusOK, resp.statusCode)
	assert.Equal(t, "OK\n", resp.body)

	// Generated roar
	resp = roar("3")
	require.NoError(t, resp.err)
	assert.Equal(t, http.StatusOK, resp.statusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.contentType)
	assert.Equal(t, "ROOOAR!", resp.body)

	// Cached roar, no delay
	resp = get(client, baseURL+"/dino/says/3")
	require.NoError(t, resp.err)
	assert.Equal(t, "ROOOAR!", resp.body)

	// Leading zeros are ignored
	resp = get(client, baseURL+"/dino/says/003")
	require.NoError(t, resp.err)
	assert.Equal(t, "ROOOAR!", resp.body)

	// Invalid and negative values are coerced to zero
	resp = roar("abc")
	require.NoError(t, resp.err)
	assert.Equal(t, "RAR!", resp.body)
	resp = get(client, baseURL+"/dino/says/-5")
	require.NoError(t, resp.err)
	assert.Equal(t, "RAR!", resp.body)

	// Numeric prefix is used
	resp = get(client, baseURL+"/dino/says/3abc")
	require.NoError(t, resp.err)
	assert.Equal(t, "ROOOAR!", resp.body)

	// Too long roar is rejected
	resp = get(client, baseURL+"/dino/says/1001")
	require.NoError(t, resp.err)
	assert.Equal(t, http.StatusBadRequest, resp.statusCode)
	assert.JSONEq(t, `{"statusCode":400,"error":"dino.roarTooLong","message":"Roar length 1001 is too long, the maximum is 1000."}`, resp.body)
	resp = get(client, baseURL+"/dino/says/99999999999999999999999")
	require.NoError(t, resp.err)
	assert.Equal(t, http.StatusBadRequest, resp.statusCode)

	// Not found
	resp = get(client, baseURL+"/dino/roars")
	require.NoError(t, resp.err)
	assert.Equal(t, http.StatusNotFound, resp.statusCode)
	assert.JSONEq(t, `{"statusCode":404,"error":"dino.routeNotFound","message":"Endpoint \"/dino/roars\" not found."}`, resp.body)

	// Metrics
	resp = get(client, baseURL+"/metrics")
	require.NoError(t, resp.err)
	assert.Equal(t, http.StatusOK, resp.statusCode)
	metrics := strings.ReplaceAll(resp.body, ".", "_")
	assert.Contains(t, metrics, "dino_roar_cache_hit")
	assert.Contains(t, metrics, "dino_roar_cache_miss")
	assert.Contains(t, metrics, "http_server_duration")
	assert.Contains(t, metrics, `"/dino/says/:roar"`)
	assert.NotContains(t, metrics, `"/metrics"`)

	// Health check and metrics are not logged
	logger.AssertJSONMessages(t, `
{"level":"info","message":"created \"memory\" key-value store","component":"kvstore"}
{"level":"info","message":"started HTTP server on \"%s\"","component":"http-server"}
{"level":"info","message":"req /dino/says/3 status=200","component":"http"}
{"level":"info","message":"req /dino/says/3 status=200","component":"http"}
{"level":"info","message":"req /dino/says/003 status=200","component":"http"}
{"level":"info","message":"req /dino/says/abc status=200","component":"http"}
{"level":"info","message":"req /dino/says/-5 status=200","component":"http"}
{"level":"info","message":"req /dino/says/3abc status=200","component":"http"}
{"level":"info","message":"req /dino/says/1001 status=400","component":"http"}
`)
	assert.NotContains(t, logger.AllMessages(), "req /health-check")
	assert.NotContains(t, logger.AllMessages(), "req /metrics")
}
