package ecs

import (
	"github.com/phanxgames/scrollstage"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// TargetData names the render target an entity stands for.
type TargetData struct {
	ID scrollstage.TargetID
}

// StyleData is the last applied state of a target.
type StyleData struct {
	scrollstage.Style
	Text    string
	Parent  scrollstage.TargetID
	Applied int // frames applied to this entity
}

var (
	// Target identifies mirrored entities.
	Target = donburi.NewComponentType[TargetData]()
	// Style holds the mirrored style of a target.
	Style = donburi.NewComponentType[StyleData]()
)

// EffectEventType is the Donburi event type for effect crossings. Events are
// queued by Apply and delivered by ProcessEvents.
var EffectEventType = events.NewEventType[scrollstage.EffectEvent]()

var mirrored = donburi.NewQuery(filter.Contains(Target, Style))

// Mirror keeps a Donburi entity per tracked target and copies frames into
// them. It implements scrollstage.Targets: a target is live while its entity
// is valid, so removing the entity from the world retires the target.
type Mirror struct {
	world    donburi.World
	entities map[scrollstage.TargetID]donburi.Entity
}

// NewMirror returns a mirror writing into world.
func NewMirror(world donburi.World) *Mirror {
	return &Mirror{world: world, entities: make(map[scrollstage.TargetID]donburi.Entity)}
}

// World returns the mirrored world.
func (m *Mirror) World() donburi.World { return m.world }

// Track creates an entity for every id that does not have a live one.
func (m *Mirror) Track(ids ...scrollstage.TargetID) {
	for _, id := range ids {
		if m.Has(id) {
			continue
		}
		e := m.world.Create(Target, Style)
		entry := m.world.Entry(e)
		Target.SetValue(entry, TargetData{ID: id})
		Style.SetValue(entry, StyleData{Style: scrollstage.DefaultStyle})
		m.entities[id] = e
	}
}

// Untrack removes the entity of id from the world.
func (m *Mirror) Untrack(id scrollstage.TargetID) {
	e, ok := m.entities[id]
	if !ok {
		return
	}
	delete(m.entities, id)
	if m.world.Valid(e) {
		m.world.Remove(e)
	}
}

// Has reports whether id has a live entity.
func (m *Mirror) Has(id scrollstage.TargetID) bool {
	e, ok := m.entities[id]
	return ok && m.world.Valid(e)
}

// Entity returns the entity of id.
func (m *Mirror) Entity(id scrollstage.TargetID) (donburi.Entity, bool) {
	e, ok := m.entities[id]
	if !ok || !m.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}

// Lookup returns the mirrored state of id.
func (m *Mirror) Lookup(id scrollstage.TargetID) (StyleData, bool) {
	e, ok := m.Entity(id)
	if !ok {
		return StyleData{}, false
	}
	return *Style.Get(m.world.Entry(e)), true
}

// Apply writes f into the tracked entities and queues its effect events.
// Patches for untracked targets are ignored.
func (m *Mirror) Apply(f scrollstage.Frame) {
	for _, p := range f.Patches {
		e, ok := m.Entity(p.Target)
		if !ok {
			continue
		}
		sd := Style.Get(m.world.Entry(e))
		sd.Style = p.Style
		sd.Text = p.Text
		sd.Parent = p.Parent
		sd.Applied++
	}
	for _, ev := range f.Events {
		EffectEventType.Publish(m.world, ev)
	}
}

// Count returns the number of mirrored entities in the world.
func (m *Mirror) Count() int {
	return mirrored.Count(m.world)
}

// Each calls fn for every mirrored entity.
func (m *Mirror) Each(fn func(id scrollstage.TargetID, s StyleData)) {
	mirrored.Each(m.world, func(entry *donburi.Entry) {
		fn(Target.Get(entry).ID, *Style.Get(entry))
	})
}
