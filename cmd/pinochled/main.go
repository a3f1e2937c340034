// Command pinochled serves three-player cutthroat pinochle over WebSockets.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NullPatterson/ctpinochle/engine"
	"github.com/NullPatterson/ctpinochle/internal/config"
	"github.com/NullPatterson/ctpinochle/internal/server"
	"github.com/NullPatterson/ctpinochle/internal/store"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("Unknown log level %q, using info.", cfg.LogLevel)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Open store: %v.", err)
	}
	defer st.Close()

	rules := engine.DefaultRules()
	rules.TargetScore = cfg.TargetScore

	srv := server.New(log, st, rules, time.Duration(cfg.TurnTimeoutSec)*time.Second)
	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	go func() {
		log.Infof("Listening on %s.", cfg.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Serve: %v.", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down.")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown: %v.", err)
	}
}
