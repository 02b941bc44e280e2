package scrollstage

import "strconv"

// TargetID is the stable identifier of a render target. Indexed targets embed
// their config index, which is the identity correlating a config entry to a
// visual target.
type TargetID string

// Fixed targets of the hero sequence.
const (
	TargetMask           TargetID = "mask"            // full-screen text mask over the intro video
	TargetHeader         TargetID = "header"          // fixed header bar
	TargetContainer      TargetID = "container"       // main container holding the entry cards
	TargetTitle          TargetID = "title"           // primary title text
	TargetSubtitle       TargetID = "subtitle"        // dedication line under the title
	TargetSecondaryTitle TargetID = "secondary-title" // title revealed with the stacking group
	TargetStackLayer     TargetID = "stack-layer"     // layer holding the stacking cards
	TargetOverlay        TargetID = "overlay"         // full-bleed surface rising during expansion
)

// EntryCard returns the id of entry card i.
func EntryCard(i int) TargetID { return TargetID("entry-" + strconv.Itoa(i)) }

// StackCard returns the id of stacking card i.
func StackCard(i int) TargetID { return TargetID("stack-" + strconv.Itoa(i)) }

// SurroundCard returns the id of surrounding card i.
func SurroundCard(i int) TargetID { return TargetID("surround-" + strconv.Itoa(i)) }

// Targets reports which render targets are live. A nil Targets means every
// target is live.
type Targets interface {
	Has(id TargetID) bool
}

// TargetSet is a map-backed Targets.
type TargetSet map[TargetID]struct{}

// NewTargetSet returns a set containing ids.
func NewTargetSet(ids ...TargetID) TargetSet {
	s := make(TargetSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s TargetSet) Has(id TargetID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id.
func (s TargetSet) Add(id TargetID) { s[id] = struct{}{} }

// Remove deletes id.
func (s TargetSet) Remove(id TargetID) { delete(s, id) }

// AllTargets lists every target id a config of this shape can address, in a
// stable order.
func AllTargets(cfg ResponsiveConfig) []TargetID {
	ids := []TargetID{
		TargetMask, TargetHeader, TargetContainer, TargetTitle, TargetSubtitle,
		TargetSecondaryTitle, TargetStackLayer, TargetOverlay,
	}
	for i := 0; i < cfg.EntryCount; i++ {
		ids = append(ids, EntryCard(i))
	}
	for i := range cfg.StackingCards {
		ids = append(ids, StackCard(i))
	}
	for i := range cfg.SurroundingCards {
		ids = append(ids, SurroundCard(i))
	}
	return ids
}

func hasTarget(t Targets, id TargetID) bool {
	return t == nil || t.Has(id)
}
