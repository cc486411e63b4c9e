package service

import (
	"context"
	"time"

	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventSink forwards events outside the process, e.g. to NATS.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IEventService interface {
	// Publish never fails the caller. Delivery problems are logged.
	Publish(ctx context.Context, event events.Event)
}

type eventService struct {
	pubSub  *gochannel.GoChannel
	topic   string
	sink    EventSink
	logger  logger.ILogger
	metrics *metrics.Collector
}

func NewEventService(
	pubSub *gochannel.GoChannel,
	topic string,
	sink EventSink,
	logger logger.ILogger,
	metrics *metrics.Collector,
) IEventService {
	return &eventService{
		pubSub:  pubSub,
		topic:   topic,
		sink:    sink,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *eventService) Publish(ctx context.Context, event events.Event) {
	if s.metrics != nil {
		s.metrics.EventsFired.WithLabelValues(event.EventType()).Inc()
	}

	payload, err := events.Encode(event)
	if err != nil {
		s.logger.Error("EVENTS", "Failed to encode event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	if s.pubSub != nil {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.pubSub.Publish(s.topic, msg); err != nil {
			s.logger.Error("EVENTS", "Failed to publish event in process", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}

	if s.sink == nil {
		return
	}
	go func() {
		sinkCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.sink.Publish(sinkCtx, event); err != nil {
			s.logger.Warn("EVENTS", "Failed to forward event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}()
}
