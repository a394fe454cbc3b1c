package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/rerum-inbox/internal/domain"
	"github.com/totegamma/rerum-inbox/internal/usecase"
)

// SignalService fans created announcements out over redis pub/sub.
type SignalService struct {
	rdb     *redis.Client
	channel string
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb:     redisClient,
		channel: domain.SignalChannel,
	}
}

func (s *SignalService) Publish(ctx context.Context, announcement domain.Announcement) error {
	jsonstr, err := json.Marshal(announcement)
	if err != nil {
		return err
	}

	return s.rdb.Publish(ctx, s.channel, jsonstr).Err()
}

// Subscribe delivers every published announcement to output until ctx is
// done. output is not closed.
func (s *SignalService) Subscribe(ctx context.Context, output chan<- domain.Announcement) error {
	pubsub := s.rdb.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			announcement, err := domain.ParseAnnouncement([]byte(msg.Payload))
			if err != nil {
				slog.ErrorContext(
					ctx, "failed to decode signal",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- announcement:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

var _ usecase.AnnouncementNotifier = (*SignalService)(nil)
