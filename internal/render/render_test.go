package render

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/cityroute/internal/model"
)

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.messages = append(f.messages, published{channel: channel, payload: message.([]byte)})
	return redis.NewIntResult(1, f.err)
}

func decode(t *testing.T, raw []byte) Message {
	t.Helper()
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestRedisPublisher_Step(t *testing.T) {
	pub := &fakePublisher{}
	r := NewRedisPublisher(pub, "route:journey:", "UAH")

	r.RenderStep(context.Background(), "j1", 0, model.PathSnapshot{
		Step: 3, Settled: "Kyiv", Relaxed: "Lviv",
		Path:       []model.Location{{Lat: 50.45, Lng: 30.52}, {Lat: 49.84, Lng: 24.03}},
		DistanceKm: 468.123,
	})

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "route:journey:j1", pub.messages[0].channel)

	msg := decode(t, pub.messages[0].payload)
	assert.Equal(t, TypeStep, msg.Type)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, 3, msg.Snapshot.Step)
	assert.Len(t, msg.Snapshot.Path, 2)
	require.NotNil(t, msg.Snapshot.DistanceKm)
	assert.Equal(t, 468.12, *msg.Snapshot.DistanceKm)
}

func TestRedisPublisher_UnreachableLegEncodesNull(t *testing.T) {
	pub := &fakePublisher{}
	r := NewRedisPublisher(pub, "p:", "UAH")

	r.RenderLeg(context.Background(), "j2", 1, &model.Leg{
		From:       model.City{Name: "Kyiv"},
		To:         model.City{Name: "Lviv"},
		Path:       []model.Location{},
		DistanceKm: math.Inf(1),
		FuelCost:   math.Inf(1),
	})

	require.Len(t, pub.messages, 1)
	assert.Contains(t, string(pub.messages[0].payload), `"distance_km":null`)

	msg := decode(t, pub.messages[0].payload)
	assert.Equal(t, TypeLeg, msg.Type)
	assert.Equal(t, 1, msg.Leg)
	require.NotNil(t, msg.LegResult)
	assert.False(t, msg.LegResult.Reachable)
	assert.Nil(t, msg.LegResult.DistanceKm)
}

func TestRedisPublisher_Journey(t *testing.T) {
	pub := &fakePublisher{}
	r := NewRedisPublisher(pub, "p:", "UAH")

	j := &model.Journey{
		ID:              "j3",
		Cities:          []model.City{{Name: "A"}, {Name: "B"}},
		Legs:            []model.Leg{{Reachable: true, DistanceKm: 10, Path: []model.Location{{}, {}}}},
		TotalDistanceKm: 10,
		Summary:         "ok",
	}
	r.RenderJourney(context.Background(), j)

	msg := decode(t, pub.messages[0].payload)
	assert.Equal(t, TypeJourney, msg.Type)
	require.NotNil(t, msg.Journey)
	assert.Equal(t, "UAH", msg.Journey.Currency)
	assert.True(t, msg.Journey.Reachable)
}

func TestRedisPublisher_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	r := NewRedisPublisher(pub, "p:", "UAH")

	assert.NotPanics(t, func() {
		r.RenderStep(context.Background(), "j4", 0, model.PathSnapshot{DistanceKm: math.Inf(1)})
	})
	assert.Len(t, pub.messages, 1)
}

type countingRenderer struct{ steps, legs, journeys int }

func (c *countingRenderer) RenderStep(context.Context, string, int, model.PathSnapshot) { c.steps++ }
func (c *countingRenderer) RenderLeg(context.Context, string, int, *model.Leg)          { c.legs++ }
func (c *countingRenderer) RenderJourney(context.Context, *model.Journey)               { c.journeys++ }

func TestMulti(t *testing.T) {
	a, b := &countingRenderer{}, &countingRenderer{}
	m := Multi{a, LogRenderer{Verbose: true}, b}
	ctx := context.Background()

	m.RenderStep(ctx, "j", 0, model.PathSnapshot{})
	m.RenderLeg(ctx, "j", 0, &model.Leg{})
	m.RenderJourney(ctx, &model.Journey{ID: "j"})

	for _, c := range []*countingRenderer{a, b} {
		assert.Equal(t, 1, c.steps)
		assert.Equal(t, 1, c.legs)
		assert.Equal(t, 1, c.journeys)
	}
}
