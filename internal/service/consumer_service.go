package service

import (
	"context"
	"encoding/json"

	"driven-coach-be/internal/pkg/logger"
	"driven-coach-be/internal/repository/memory"
	"driven-coach-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains committed-turn events and invalidates derived
// caches so the next progress read reflects the new ledger facts.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	progressRepo *memory.ProgressRepository
	log          logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	progressRepo *memory.ProgressRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		progressRepo: progressRepo,
		log:          log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event events.TurnCommitted
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error("consumer", "failed to unmarshal turn event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.progressRepo.Invalidate(event.SessionID)

	cs.log.Debug("consumer", "progress cache invalidated", map[string]interface{}{
		"session_id":      event.SessionID,
		"week_number":     event.WeekNumber,
		"question_number": event.QuestionNumber,
	})
	msg.Ack()
}
