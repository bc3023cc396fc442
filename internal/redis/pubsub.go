package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TimetablePubSub announces that an event's running order or publish state
// changed so every instance can drop its cached view.
type TimetablePubSub struct {
	rdb     *redis.Client
	channel string
}

func NewTimetablePubSub(rdb *redis.Client) *TimetablePubSub {
	return &TimetablePubSub{
		rdb:     rdb,
		channel: ChannelTimetableChanged(),
	}
}

type timetableChangedMsg struct {
	Type    string    `json:"type"`
	EventID uuid.UUID `json:"event_id"`
	TsUnix  int64     `json:"ts_unix"`
}

func (p *TimetablePubSub) PublishTimetableChanged(ctx context.Context, eventID uuid.UUID) error {
	msg := timetableChangedMsg{
		Type:    "timetable_changed",
		EventID: eventID,
		TsUnix:  time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe calls handler for every change message until ctx is done.
// ready, when not nil, is closed once the subscription is confirmed.
func (p *TimetablePubSub) Subscribe(
	ctx context.Context,
	ready chan<- struct{},
	handler func(ctx context.Context, eventID uuid.UUID),
) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev timetableChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.EventID != uuid.Nil {
				handler(ctx, ev.EventID)
			}
		}
	}
}
