package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/logging"
	"github.com/dmitrijs2005/lovelab/internal/wire"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

// Channel is the NOTIFY channel written by the confessions trigger.
const Channel = "confessions_changed"

// Conn is the subset of *pgx.Conn used for LISTEN.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

// ConnectFunc opens a dedicated connection for LISTEN.
type ConnectFunc func(ctx context.Context, dsn string) (Conn, error)

func PgxConnect(ctx context.Context, dsn string) (Conn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Listener keeps one connection LISTENing on Channel and republishes every
// notification into a Hub. Lost connections are re-established with
// exponential backoff; after a reconnect a synthetic "RESYNC" event is
// published so subscribers refetch whatever they missed.
type Listener struct {
	dsn         string
	hub         *Hub
	connect     ConnectFunc
	log         logging.Logger
	baseBackoff time.Duration
	maxBackoff  time.Duration
	now         func() time.Time
}

// OpResync tells subscribers that notifications may have been lost.
const OpResync = wire.OpResync

func NewListener(dsn string, hub *Hub, connect ConnectFunc, log logging.Logger) *Listener {
	return &Listener{
		dsn:         dsn,
		hub:         hub,
		connect:     connect,
		log:         log.With("module", "notify"),
		baseBackoff: 200 * time.Millisecond,
		maxBackoff:  10 * time.Second,
		now:         time.Now,
	}
}

func (l *Listener) backoff() retry.Backoff {
	b := retry.NewExponential(l.baseBackoff)
	b = retry.WithCappedDuration(l.maxBackoff, b)
	return retry.WithJitterPercent(10, b)
}

// Run blocks until ctx is cancelled. It returns nil on cancellation.
func (l *Listener) Run(ctx context.Context) error {
	first := true
	for {
		conn, err := retry.DoValue(ctx, l.backoff(), func(ctx context.Context) (Conn, error) {
			c, err := l.listen(ctx)
			if err != nil {
				l.log.Warn(ctx, "listen failed, retrying", "error", err)
				return nil, retry.RetryableError(err)
			}
			return c, nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if !first {
			l.hub.Publish(Event{Op: OpResync, At: l.now()})
		}
		first = false
		l.log.Info(ctx, "listening", "channel", Channel)

		err = l.consume(ctx, conn)
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = conn.Close(closeCtx)
		cancel()

		if ctx.Err() != nil {
			return nil
		}
		l.log.Warn(ctx, "notification connection lost", "error", err)
	}
}

func (l *Listener) listen(ctx context.Context) (Conn, error) {
	conn, err := l.connect(ctx, l.dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{Channel}.Sanitize()); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("listen: %w", err)
	}
	return conn, nil
}

func (l *Listener) consume(ctx context.Context, conn Conn) error {
	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		e, err := ParsePayload(n.Payload)
		if err != nil {
			l.log.Warn(ctx, "bad notification payload", "payload", n.Payload, "error", err)
			continue
		}
		e.At = l.now()
		l.hub.Publish(e)
	}
}

var errEmptyOp = errors.New("missing op")

// ParsePayload decodes the trigger's JSON payload, e.g. {"op":"INSERT","id":"..."}.
func ParsePayload(payload string) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Event{}, err
	}
	if e.Op == "" {
		return Event{}, errEmptyOp
	}
	return e, nil
}
