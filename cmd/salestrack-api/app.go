package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/broker/messages"
	"github.com/BearBump/SalesTrack/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type apiOpts struct {
	httpAddr string

	onListen func(httpAddr string)
}

type kafkaConsumer interface {
	Consume(ctx context.Context, handler func(key, value []byte) error) error
}

// consumerSpec is one long-running topic subscription.
type consumerSpec struct {
	name     string
	consumer kafkaConsumer
	handle   func(ctx context.Context, value []byte) error
}

type leadCreator interface {
	CreateLead(ctx context.Context, in models.LeadCreateInput) (*models.Lead, error)
}

type carrierUpdater interface {
	ApplyCarrierUpdate(ctx context.Context, msg messages.CarrierUpdate) error
}

const consumerRestartDelay = time.Second

func runAPI(ctx context.Context, opts apiOpts, handler http.Handler, consumers []consumerSpec, log *zap.Logger) error {
	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}
	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return gctx.Err()
	})

	for _, c := range consumers {
		g.Go(func() error {
			consumeLoop(gctx, c, log)
			return nil
		})
	}

	return g.Wait()
}

// consumeLoop keeps a subscription alive: a failing handler stops Consume
// without committing, so after a pause the message is fetched again.
func consumeLoop(ctx context.Context, c consumerSpec, log *zap.Logger) {
	log = log.With(zap.String("consumer", c.name))
	log.Info("kafka consumer started")
	for {
		err := c.consumer.Consume(ctx, func(_key, value []byte) error {
			return c.handle(ctx, value)
		})
		if ctx.Err() != nil {
			return
		}
		log.Error("kafka consumer stopped, restarting", zap.Error(err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(consumerRestartDelay):
		}
	}
}

// leadIntakeHandler turns intake messages into leads. Malformed or invalid
// messages are logged and skipped, and so are redeliveries of an external_id
// that is already stored. Store failures are returned for redelivery.
func leadIntakeHandler(svc leadCreator, log *zap.Logger) func(ctx context.Context, value []byte) error {
	return func(ctx context.Context, value []byte) error {
		var m messages.LeadIntake
		if err := json.Unmarshal(value, &m); err != nil {
			log.Warn("skip malformed lead intake", zap.Error(err))
			return nil
		}
		in := m.Lead
		if m.ExternalID != "" {
			md := make(map[string]any, len(in.Metadata)+1)
			for k, v := range in.Metadata {
				md[k] = v
			}
			md["external_id"] = m.ExternalID
			in.Metadata = md
		}
		l, err := svc.CreateLead(ctx, in)
		if errors.Is(err, apperr.ErrValidation) {
			log.Warn("skip invalid lead intake", zap.String("external_id", m.ExternalID), zap.Error(err))
			return nil
		}
		if errors.Is(err, apperr.ErrConflict) {
			log.Info("skip duplicate lead intake", zap.String("external_id", m.ExternalID))
			return nil
		}
		if err != nil {
			return err
		}
		log.Info("lead captured", zap.String("lead_id", l.ID), zap.String("external_id", m.ExternalID))
		return nil
	}
}

// carrierUpdateHandler applies worker results; updates for orders that are
// gone or no longer shipped are dropped.
func carrierUpdateHandler(svc carrierUpdater, log *zap.Logger) func(ctx context.Context, value []byte) error {
	return func(ctx context.Context, value []byte) error {
		var m messages.CarrierUpdate
		if err := json.Unmarshal(value, &m); err != nil {
			log.Warn("skip malformed carrier update", zap.Error(err))
			return nil
		}
		err := svc.ApplyCarrierUpdate(ctx, m)
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrValidation) {
			log.Warn("skip carrier update", zap.String("order_id", m.OrderID), zap.Error(err))
			return nil
		}
		return err
	}
}
