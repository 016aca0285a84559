package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"BrentLens/pkg/config"
	xhttp "BrentLens/pkg/http"
	applogger "BrentLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
}

func TestAppServesUntilSignal(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.Server.ShutdownTimeout = 2 * time.Second

	srv := xhttp.NewServer(pingHandler{}, applogger.Nop(),
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(0),
		xhttp.WithMetrics(false, 0),
	)
	app := New(cfg, srv, applogger.Nop())

	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- app.run(stop) }()

	var addr string
	deadline := time.Now().Add(2 * time.Second)
	for addr == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		addr = srv.Addr()
	}
	if addr == "" {
		t.Fatalf("server did not start")
	}

	var body string
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/", addr))
		if err == nil {
			b, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			body = string(b)
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if body != "pong" {
		t.Fatalf("unexpected body %q", body)
	}

	stop <- syscall.SIGTERM
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("app did not shut down")
	}
}
