package scrollstage

import (
	"log"
	"sort"
)

// Direction is the scrub direction of an effect crossing.
type Direction int8

const (
	Forward Direction = 1
	Reverse Direction = -1
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// EffectEvent reports that an effect instant was crossed between two frames.
type EffectEvent struct {
	Effect    Effect
	At        float64
	Direction Direction
}

// span is one tween placed on the absolute timeline.
type span struct {
	start, dur float64
	tw         Tween
}

type effectAt struct {
	at float64
	e  Effect
}

// Executor maps progress to the state of every live target. The patch set is
// a pure function of progress. Effect events depend on the previously
// applied progress.
//
// An effect at instant T is in force iff t >= T. Moving from t0 to t1 fires
// it Forward once when t0 < T <= t1 and Reverse once when t1 < T <= t0.
type Executor struct {
	tl      *Timeline
	targets Targets

	ids     []TargetID
	tracks  map[TargetID]*[propCount][]span
	effects []effectAt

	last float64
}

// NewExecutor indexes tl for sampling. targets may be nil, meaning every
// target is live. Lookups happen on every Apply, so targets that appear or
// disappear later are picked up.
func NewExecutor(tl *Timeline, targets Targets) *Executor {
	ex := &Executor{
		tl:      tl,
		targets: targets,
		tracks:  make(map[TargetID]*[propCount][]span),
	}
	for id := range tl.Initial {
		ex.ids = append(ex.ids, id)
	}
	sort.Slice(ex.ids, func(i, j int) bool { return ex.ids[i] < ex.ids[j] })

	for pi := range tl.Phases {
		for si := range tl.Phases[pi].Steps {
			s := &tl.Phases[pi].Steps[si]
			if s.Effect != nil {
				ex.effects = append(ex.effects, effectAt{at: s.Start, e: *s.Effect})
				continue
			}
			tr := ex.tracks[s.Target]
			if tr == nil {
				tr = new([propCount][]span)
				ex.tracks[s.Target] = tr
			}
			for _, tw := range s.Tweens {
				tr[tw.Prop] = append(tr[tw.Prop], span{start: s.Start, dur: s.Duration, tw: tw})
			}
		}
	}
	for _, tr := range ex.tracks {
		for p := range tr {
			sort.SliceStable(tr[p], func(i, j int) bool { return tr[p][i].start < tr[p][j].start })
		}
	}
	sort.SliceStable(ex.effects, func(i, j int) bool { return ex.effects[i].at < ex.effects[j].at })
	return ex
}

// Timeline returns the timeline this executor samples.
func (ex *Executor) Timeline() *Timeline { return ex.tl }

// Sample returns the frame at progress without recording it. It never
// reports events.
func (ex *Executor) Sample(progress float64) Frame {
	t := ex.tl.TimeAt(progress)
	f := Frame{Progress: clamp01(progress), Time: t}

	texts, parents := ex.discreteState(t)
	f.Patches = make([]Patch, 0, len(ex.ids))
	for _, id := range ex.ids {
		if !hasTarget(ex.targets, id) {
			continue
		}
		base := ex.tl.Initial[id]
		p := Patch{Target: id, Style: base.Style, Text: texts[id], Parent: parents[id]}
		if tr := ex.tracks[id]; tr != nil {
			for prop := Prop(0); prop < propCount; prop++ {
				if spans := tr[prop]; len(spans) > 0 {
					p.Style.Set(prop, sampleSpans(spans, t))
				}
			}
		}
		f.Patches = append(f.Patches, p)
	}
	return f
}

// Apply returns the frame at progress and the effect crossings since the
// previous Apply or Seek.
func (ex *Executor) Apply(progress float64) Frame {
	f := ex.Sample(progress)
	f.Events = ex.crossings(ex.last, f.Time)
	ex.last = f.Time
	return f
}

// Seek moves the executor to progress without reporting crossings. Used when
// a fresh executor takes over mid-sequence.
func (ex *Executor) Seek(progress float64) {
	ex.last = ex.tl.TimeAt(progress)
}

// sampleSpans evaluates the tween that governs t: the latest one that has
// started. Before the first starts its From holds; after one ends its To
// holds.
func sampleSpans(spans []span, t float64) float64 {
	i := sort.Search(len(spans), func(i int) bool { return spans[i].start > t }) - 1
	if i < 0 {
		return spans[0].tw.From
	}
	s := spans[i]
	if s.dur <= 0 || t >= s.start+s.dur {
		return s.tw.To
	}
	u := (t - s.start) / s.dur
	return lerp(s.tw.From, s.tw.To, s.tw.Curve.At(u))
}

// applicable reports whether e can run against the live targets. A swap with
// either side missing is skipped entirely.
func (ex *Executor) applicable(e Effect) bool {
	switch e.Kind {
	case EffectSwapText:
		return hasTarget(ex.targets, e.Target) && hasTarget(ex.targets, e.Other)
	default:
		return hasTarget(ex.targets, e.Target)
	}
}

// discreteState folds every effect in force at t over the base texts and
// parents.
func (ex *Executor) discreteState(t float64) (texts map[TargetID]string, parents map[TargetID]TargetID) {
	texts = make(map[TargetID]string, len(ex.ids))
	parents = make(map[TargetID]TargetID, len(ex.ids))
	for id, b := range ex.tl.Initial {
		if b.Text != "" {
			texts[id] = b.Text
		}
		if b.Parent != "" {
			parents[id] = b.Parent
		}
	}
	for _, ea := range ex.effects {
		if ea.at > t {
			break
		}
		if !ex.applicable(ea.e) {
			continue
		}
		switch ea.e.Kind {
		case EffectSwapText:
			a, b := ea.e.Target, ea.e.Other
			texts[a], texts[b] = texts[b], texts[a]
		case EffectReparent:
			parents[ea.e.Target] = ea.e.Parent
		}
	}
	return texts, parents
}

func (ex *Executor) crossings(t0, t1 float64) []EffectEvent {
	var events []EffectEvent
	fire := func(ea effectAt, dir Direction) {
		if !ex.applicable(ea.e) {
			if globalDebug {
				log.Printf("scrollstage: skipping %s effect on %q: target missing", ea.e.Kind, ea.e.Target)
			}
			return
		}
		events = append(events, EffectEvent{Effect: ea.e, At: ea.at, Direction: dir})
	}
	switch {
	case t1 > t0:
		for _, ea := range ex.effects {
			if ea.at > t0 && ea.at <= t1 {
				fire(ea, Forward)
			}
		}
	case t1 < t0:
		for i := len(ex.effects) - 1; i >= 0; i-- {
			if ea := ex.effects[i]; ea.at > t1 && ea.at <= t0 {
				fire(ea, Reverse)
			}
		}
	}
	return events
}
