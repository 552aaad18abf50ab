// launching the relay server
package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/animegen/config"
	"github.com/ds124wfegd/animegen/internal/pkg/toonify"
	"github.com/ds124wfegd/animegen/internal/service"
	"github.com/ds124wfegd/animegen/internal/telemetry"
	"github.com/ds124wfegd/animegen/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires the relay: upstream client, service, handlers and routes.
func NewHandler(cfg *config.Config, httpClient *http.Client, reg *prometheus.Registry) (http.Handler, error) {
	metrics := telemetry.NewMetrics()
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}
	metrics.SetPreviewMode(cfg.Upstream.PreviewMode())

	upstream := toonify.NewClient(httpClient, cfg.Upstream.URL, cfg.Upstream.Key())
	generateService := service.NewGenerateService(upstream, metrics)
	generateHandler := transport.NewGenerateHandler(generateService)

	opts := transport.RouterOptions{PreviewMode: cfg.Upstream.PreviewMode()}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = telemetry.Handler(reg)
	}
	return transport.InitRoutes(generateHandler, opts), nil
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.SetOutput(os.Stdout)
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Upstream.PreviewMode() {
		logrus.Warn("DEEPAI_API_KEY not set, relay runs in preview mode")
	}

	handler, err := NewHandler(cfg, nil, prometheus.NewRegistry())
	if err != nil {
		logrus.Fatalf("error occured while wiring relay: %s", err.Error())
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, handler); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithField("addr", cfg.Server.Host+":"+cfg.Server.Port).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
