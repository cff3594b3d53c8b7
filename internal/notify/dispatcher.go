package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/metrics"
)

// Dispatcher bounds each send by a timeout and swallows failures after
// logging them.
type Dispatcher struct {
	gw      Gateway
	driver  string
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewDispatcher(gw Gateway, driver string, timeout time.Duration, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{gw: gw, driver: driver, timeout: timeout, logger: logger}
}

// Notify sends msg once. It returns after the send completes or the timeout elapses.
func (d *Dispatcher) Notify(ctx context.Context, msg Message) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	start := time.Now()
	if err := d.gw.Send(ctx, msg); err != nil {
		metrics.NotificationsSent.WithLabelValues(d.driver, "failed").Inc()
		d.logger.Warnw("sms dispatch failed",
			"driver", d.driver,
			"mobile_number", msg.MobileNumber,
			"duration_ms", time.Since(start).Milliseconds(),
			"err", err,
		)
		return
	}
	metrics.NotificationsSent.WithLabelValues(d.driver, "sent").Inc()
}

// New builds the gateway selected by cfg.Driver. The returned close func
// releases driver resources and is never nil.
func New(ctx context.Context, cfg Config, logger *zap.SugaredLogger) (Gateway, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Driver {
	case DriverLog:
		return NewLogGateway(logger), noop, nil
	case DriverAMQP:
		g, err := NewBrokerGateway(cfg)
		if err != nil {
			return nil, noop, err
		}
		return g, g.Close, nil
	case DriverSNS:
		g, err := NewSNSGateway(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return g, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown SMS_DRIVER %q", cfg.Driver)
	}
}
