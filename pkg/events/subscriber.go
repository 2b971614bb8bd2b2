package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clapo-social/client-core/pkg/engagement"
	"github.com/clapo-social/client-core/pkg/rdb"
	"github.com/getsentry/sentry-go"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const reconnectDelay = 5 * time.Second

// Subscriber connects to the upstream Clapo push stream and folds remote
// engagement changes into the local registry, then relays them to connected
// sessions over Redis.
type Subscriber struct {
	url      string
	registry *engagement.Registry
	logger   *zap.Logger
}

func NewSubscriber(streamUrl string, registry *engagement.Registry, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		url:      streamUrl,
		registry: registry,
		logger:   logger,
	}
}

// Start consumes the stream until the context is cancelled, reconnecting on
// transient errors.
func (s *Subscriber) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.subscribe(ctx); err != nil {
				s.logger.Error("stream connection error, reconnecting", zap.Error(err))
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(reconnectDelay):
				}
			}
		}
	}
}

func (s *Subscriber) subscribe(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer conn.Close()

	s.logger.Info("connected to upstream stream", zap.String("url", s.url))

	// unblock ReadMessage when the context dies
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read stream: %w", err)
		}

		var event RemoteEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			s.logger.Warn("unparseable stream event", zap.Error(err))
			continue
		}

		s.handle(event)
	}
}

func (s *Subscriber) handle(event RemoteEvent) {
	kind, delta, ok := event.delta()
	if !ok {
		s.logger.Debug("dropping unknown stream op", zap.String("op", event.Op))
		return
	}

	s.registry.ApplyRemoteDelta(event.PostId, kind, delta)

	if err := s.relay(event); err != nil {
		s.logger.Warn("relay failed", zap.String("post", event.PostId), zap.Error(err))
		sentry.CaptureException(err)
	}
}

// relay republishes the event on the post's Redis channel for gateway
// sessions. Best-effort: the local registry is already up to date.
func (s *Subscriber) relay(event RemoteEvent) error {
	opcode, ok := event.opcode()
	if !ok {
		return nil
	}

	marshaledPacket, err := msgpack.Marshal(&event)
	if err != nil {
		return err
	}
	marshaledPacket = append(marshaledPacket, opcode)

	return rdb.Client.Publish(context.TODO(), rdb.PostChannel(event.PostId), marshaledPacket).Err()
}
