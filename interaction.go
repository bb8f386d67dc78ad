package scatter

import (
	"sort"
	"strconv"
	"time"
)

const (
	// DefaultTapDistance is the maximum travel in pixels for a tap or
	// long-press.
	DefaultTapDistance = 10.0
	// DefaultLongPressTime separates taps from long-presses.
	DefaultLongPressTime = 500 * time.Millisecond
)

// ContactID identifies one contact: MouseID, StylusID or a touch/pointer id
// created with TouchID.
type ContactID string

const (
	MouseID  ContactID = "mouse"
	StylusID ContactID = "stylus"
)

// TouchID returns the ContactID for a numeric touch or pointer identifier.
func TouchID(n int) ContactID {
	return ContactID(strconv.Itoa(n))
}

// PointMap maps contacts to positions in one coordinate space.
type PointMap map[ContactID]Vec2

// IDs returns the contact ids in sorted order.
func (m PointMap) IDs() []ContactID {
	ids := make([]ContactID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Mean returns the centroid of all points. The zero vector is returned for
// an empty map.
func (m PointMap) Mean() Vec2 {
	if len(m) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range m {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(m)))
}

// FarthestPair returns the two points with maximum mutual distance. ok is
// false when the map holds fewer than two points.
func (m PointMap) FarthestPair() (a, b Vec2, ok bool) {
	ids := m.IDs()
	if len(ids) < 2 {
		return Vec2{}, Vec2{}, false
	}
	best := -1.0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			p, q := m[ids[i]], m[ids[j]]
			if d := Dist(p, q); d > best {
				best = d
				a, b = p, q
			}
		}
	}
	return a, b, true
}

// Interaction is the contact history of one tracked scope: either the whole
// input surface or a single target's sub-interaction.
//
// Previous is only advanced by UpdatePrevious so that a consumer can compare
// old and new positions of the same update before committing them. Ended
// holds freshly released contacts until Finish forgets them.
type Interaction struct {
	Current    PointMap
	Previous   PointMap
	Start      PointMap
	Ended      PointMap
	Timestamps map[ContactID]time.Time

	TapDistance   float64
	LongPressTime time.Duration

	clock Clock
}

// NewInteraction creates an empty history using clock for timestamps. A nil
// clock selects SystemClock.
func NewInteraction(clock Clock) *Interaction {
	if clock == nil {
		clock = SystemClock
	}
	return &Interaction{
		Current:       PointMap{},
		Previous:      PointMap{},
		Start:         PointMap{},
		Ended:         PointMap{},
		Timestamps:    map[ContactID]time.Time{},
		TapDistance:   DefaultTapDistance,
		LongPressTime: DefaultLongPressTime,
		clock:         clock,
	}
}

// Update records the current position of id. The first time an id is seen
// its start and previous positions and start timestamp are recorded too, and
// Update reports true.
func (in *Interaction) Update(id ContactID, p Vec2) bool {
	in.Current[id] = p
	if _, seen := in.Start[id]; seen {
		return false
	}
	in.Start[id] = p
	in.Previous[id] = p
	in.Timestamps[id] = in.clock.Now()
	return true
}

// UpdatePrevious commits all current positions as the new baseline.
func (in *Interaction) UpdatePrevious() {
	for id, p := range in.Current {
		in.Previous[id] = p
	}
}

// Stop moves id from the active maps into Ended.
func (in *Interaction) Stop(id ContactID, p Vec2) {
	delete(in.Current, id)
	delete(in.Previous, id)
	in.Ended[id] = p
}

// Finish forgets id entirely. Call it after end-of-gesture callbacks have
// consumed the Ended record.
func (in *Interaction) Finish(id ContactID) {
	delete(in.Current, id)
	delete(in.Previous, id)
	delete(in.Start, id)
	delete(in.Ended, id)
	delete(in.Timestamps, id)
}

// IsFinished reports whether no contact is active.
func (in *Interaction) IsFinished() bool {
	return len(in.Current) == 0
}

// Count returns the number of active contacts.
func (in *Interaction) Count() int {
	return len(in.Current)
}

// Duration returns how long id has been tracked. Unknown ids report zero.
func (in *Interaction) Duration(id ContactID) time.Duration {
	t, ok := in.Timestamps[id]
	if !ok {
		return 0
	}
	return in.clock.Now().Sub(t)
}

// stationary reports whether id ended within TapDistance of its start.
func (in *Interaction) stationary(id ContactID) bool {
	start, ok := in.Start[id]
	if !ok {
		return false
	}
	end, ok := in.Ended[id]
	if !ok {
		return false
	}
	if _, ok := in.Timestamps[id]; !ok {
		return false
	}
	return Dist(start, end) < in.TapDistance
}

// IsTap reports whether the released contact id was a tap: it stayed within
// TapDistance and was held shorter than LongPressTime.
func (in *Interaction) IsTap(id ContactID) bool {
	return in.stationary(id) && in.Duration(id) < in.LongPressTime
}

// IsLongPress reports whether the released contact id stayed within
// TapDistance and was held longer than LongPressTime.
func (in *Interaction) IsLongPress(id ContactID) bool {
	return in.stationary(id) && in.Duration(id) > in.LongPressTime
}
