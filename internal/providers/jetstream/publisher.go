package jetstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	njs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/logger"
	"github.com/feral-file/ff-timeline/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc            adapter.NatsConn
	js            adapter.JetStream
	subjectPrefix string
	json          adapter.JSON
}

// NewPublisher connects to NATS and makes sure the timeline stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.CreateOrUpdateStream(ctx, njs.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.SubjectPrefix + ".>"},
		// Only the newest bundle of each entity is worth keeping
		MaxMsgsPerSubject: 1,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:            nc,
		js:            js,
		subjectPrefix: cfg.SubjectPrefix,
		json:          jsonAdapter,
	}, nil
}

// PublishTimeline publishes the bundle of one entity to NATS JetStream
func (p *publisher) PublishTimeline(ctx context.Context, msg *domain.TimelineMessage) error {
	data, err := p.json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}

	subject := p.buildSubject(msg)
	logger.DebugCtx(ctx, "Publishing timeline", zap.String("subject", subject))

	_, err = p.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish timeline: %w", err)
	}

	return nil
}

// subjectReplacer strips the characters NATS reserves in subject tokens
var subjectReplacer = strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_")

// buildSubject constructs the NATS subject of an entity
// Format: {prefix}.{entity_type}.{key}, e.g. timelines.resident.8c1f..., timelines.town.Ravenholm
func (p *publisher) buildSubject(msg *domain.TimelineMessage) string {
	return fmt.Sprintf("%s.%s.%s", p.subjectPrefix, msg.EntityType, subjectReplacer.Replace(msg.Key))
}

// Close drains and closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	if err := p.nc.Drain(); err != nil {
		logger.Warn("failed to drain NATS connection", zap.Error(err))
		p.nc.Close()
	}
}
