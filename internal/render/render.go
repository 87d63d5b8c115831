// Package render forwards search output to external map renderers.
//
// The core never draws anything. Renderers receive the ordered coordinate
// sequences and totals and decide what to do with them: RedisPublisher
// streams them over pub/sub for a browser map, LogRenderer writes them to
// the process log.
package render

import (
	"context"
	"log"

	"github.com/shiva/cityroute/internal/model"
)

// LogRenderer logs completed legs and journeys. Steps are logged only when
// Verbose is set.
type LogRenderer struct {
	Verbose bool
}

func (r LogRenderer) RenderStep(_ context.Context, journeyID string, legIndex int, snap model.PathSnapshot) {
	if !r.Verbose {
		return
	}
	log.Printf("[render] %s leg %d step %d: %s → %s, path of %d points",
		journeyID, legIndex+1, snap.Step, snap.Settled, snap.Relaxed, len(snap.Path))
}

func (r LogRenderer) RenderLeg(_ context.Context, journeyID string, legIndex int, leg *model.Leg) {
	log.Printf("[render] %s leg %d: %s → %s via %v", journeyID, legIndex+1, leg.From.Name, leg.To.Name, leg.Cities)
}

func (r LogRenderer) RenderJourney(_ context.Context, j *model.Journey) {
	log.Printf("[render] %s: %s", j.ID, j.Summary)
}

// Renderer matches service.Renderer; redeclared here so Multi does not
// import the service package.
type Renderer interface {
	RenderStep(ctx context.Context, journeyID string, legIndex int, snap model.PathSnapshot)
	RenderLeg(ctx context.Context, journeyID string, legIndex int, leg *model.Leg)
	RenderJourney(ctx context.Context, journey *model.Journey)
}

// Multi fans out to several renderers in order.
type Multi []Renderer

func (m Multi) RenderStep(ctx context.Context, journeyID string, legIndex int, snap model.PathSnapshot) {
	for _, r := range m {
		r.RenderStep(ctx, journeyID, legIndex, snap)
	}
}

func (m Multi) RenderLeg(ctx context.Context, journeyID string, legIndex int, leg *model.Leg) {
	for _, r := range m {
		r.RenderLeg(ctx, journeyID, legIndex, leg)
	}
}

func (m Multi) RenderJourney(ctx context.Context, j *model.Journey) {
	for _, r := range m {
		r.RenderJourney(ctx, j)
	}
}
