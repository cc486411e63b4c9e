package service

import (
	"context"
	"time"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/repository/unitofwork"
	"ai-workspace-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService turns workspace scoped events into activity rows.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to decode event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	// Events outside a workspace leave no activity trail.
	if !constant.IsActivityEvent(event.Type) {
		msg.Ack()
		return
	}
	workspaceId, err := uuid.Parse(event.String(constant.EventKeyWorkspaceID))
	if err != nil {
		msg.Ack()
		return
	}
	actorId, err := uuid.Parse(event.String(constant.EventKeyActorID))
	if err != nil {
		msg.Ack()
		return
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	uow, err := cs.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		cs.logger.Warn("CONSUMER", "Database unavailable, dropping activity", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	err = uow.ActivityRepository().Create(ctx, &entity.Activity{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		ActorId:     actorId,
		Type:        event.Type,
		Subject:     event.String(constant.EventKeySubject),
		CreatedAt:   occurredAt,
	})
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to record activity", map[string]interface{}{
			"type":        event.Type,
			"workspaceId": workspaceId.String(),
			"error":       err.Error(),
		})
	}
	msg.Ack()
}
