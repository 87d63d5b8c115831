package render

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/shiva/cityroute/internal/model"
)

// Message types on the journey channel.
const (
	TypeStep    = "step"
	TypeLeg     = "leg"
	TypeJourney = "journey"
)

// Message is the JSON envelope published for every event of a journey.
// Exactly one of Snapshot, Leg and Journey is set, matching Type.
type Message struct {
	Type      string             `json:"type"`
	JourneyID string             `json:"journey_id"`
	Leg       int                `json:"leg"`
	Snapshot  *SnapshotView      `json:"snapshot,omitempty"`
	LegResult *model.LegView     `json:"leg_result,omitempty"`
	Journey   *model.JourneyView `json:"journey,omitempty"`
}

// SnapshotView is the wire form of a PathSnapshot.
type SnapshotView struct {
	Step       int              `json:"step"`
	Settled    string           `json:"settled"`
	Relaxed    string           `json:"relaxed"`
	Path       []model.Location `json:"path"`
	DistanceKm *float64         `json:"distance_km"`
}

// Publisher is the subset of *redis.Client used for the feed.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes journey events to "<prefix><journey id>".
// Publishing is fire-and-forget: a slow or missing subscriber never fails
// the route computation.
type RedisPublisher struct {
	client   Publisher
	prefix   string
	currency string
}

// NewRedisPublisher creates a publisher on client.
func NewRedisPublisher(client Publisher, channelPrefix, currency string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: channelPrefix, currency: currency}
}

// Channel returns the channel name for a journey.
func (p *RedisPublisher) Channel(journeyID string) string {
	return p.prefix + journeyID
}

func (p *RedisPublisher) RenderStep(ctx context.Context, journeyID string, legIndex int, snap model.PathSnapshot) {
	p.publish(ctx, Message{
		Type:      TypeStep,
		JourneyID: journeyID,
		Leg:       legIndex,
		Snapshot: &SnapshotView{
			Step:       snap.Step,
			Settled:    snap.Settled,
			Relaxed:    snap.Relaxed,
			Path:       snap.Path,
			DistanceKm: model.Rounded(snap.DistanceKm),
		},
	})
}

func (p *RedisPublisher) RenderLeg(ctx context.Context, journeyID string, legIndex int, leg *model.Leg) {
	view := model.NewLegView(leg)
	p.publish(ctx, Message{Type: TypeLeg, JourneyID: journeyID, Leg: legIndex, LegResult: &view})
}

func (p *RedisPublisher) RenderJourney(ctx context.Context, j *model.Journey) {
	view := model.NewJourneyView(j, p.currency)
	p.publish(ctx, Message{Type: TypeJourney, JourneyID: j.ID, Leg: len(j.Legs) - 1, Journey: &view})
}

func (p *RedisPublisher) publish(ctx context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[render] encode %s message for %s: %v", msg.Type, msg.JourneyID, err)
		return
	}
	if err := p.client.Publish(ctx, p.Channel(msg.JourneyID), payload).Err(); err != nil {
		log.Printf("[render] publish %s message for %s: %v", msg.Type, msg.JourneyID, err)
	}
}
