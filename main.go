package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal.checkout.api.ch.gov.uk/handlers"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.Namespace = "paypal.checkout.api.ch.gov.uk"

	cfg, err := config.Get()
	if err != nil {
		log.Error(fmt.Errorf("error configuring service: %s. Exiting", err))
		os.Exit(1)
	}

	if err = cfg.Validate(); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	router := mux.NewRouter()
	handlers.Register(router, *cfg)

	srv := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting paypal.checkout.api.ch.gov.uk service", log.Data{"bind_addr": cfg.BindAddr, "paypal_env": cfg.PaypalEnv})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error(err)
	}
	log.Trace("Exiting paypal.checkout.api.ch.gov.uk service")
}
