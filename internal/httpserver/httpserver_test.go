package httpserver

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgJWT "widget-srv/pkg/jwt"
)

func startServing(t *testing.T, srv HTTPServer) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, ln) }()
	return "http://" + ln.Addr().String(), cancel, done
}

func TestServe_StopsOnCancel(t *testing.T) {
	srv, _, _ := newTestServer(t)
	srv.shutdownTimeout = time.Second
	base, cancel, done := startServing(t, srv)

	resp, err := http.Get(base + "/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_ShutdownTimeout(t *testing.T) {
	srv, _, _ := newTestServer(t)
	srv.shutdownTimeout = 50 * time.Millisecond

	entered, release := make(chan struct{}), make(chan struct{})
	defer close(release)
	srv.gin.GET("/slow", func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusOK)
	})
	base, cancel, done := startServing(t, srv)

	go func() {
		if resp, err := http.Get(base + "/slow"); err == nil {
			resp.Body.Close()
		}
	}()
	<-entered

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not give up on the open request")
	}
}

func TestNew_DefaultTimeouts(t *testing.T) {
	srv, _, _ := newTestServer(t)
	jwtManager, err := pkgJWT.New(pkgJWT.Config{SecretKey: "0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	got, err := New(srv.l, Config{
		Logger:      srv.l,
		Mode:        gin.TestMode,
		Port:        8080,
		PostgresDB:  srv.postgresDB,
		RedisClient: srv.redisClient,
		JWTManager:  jwtManager,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultShutdownTimeout, got.shutdownTimeout)
	assert.Equal(t, defaultReadHeaderTimeout, got.readHeaderTimeout)

	got, err = New(srv.l, Config{
		Logger:          srv.l,
		Mode:            gin.TestMode,
		Port:            8080,
		PostgresDB:      srv.postgresDB,
		RedisClient:     srv.redisClient,
		JWTManager:      jwtManager,
		ShutdownTimeout: time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, got.shutdownTimeout)
}
