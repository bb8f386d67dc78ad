package scatter

// State is the mutable transform of a scatter object. X and Y are the
// stage-space position of the object's pivot; Rotation is in radians.
type State struct {
	X, Y     float64
	Scale    float64
	Rotation float64
}

// Position returns the pivot position.
func (st State) Position() Vec2 {
	return Vec2{st.X, st.Y}
}

// TransformType tags a TransformEvent with what produced it.
type TransformType uint8

const (
	TransformStart  TransformType = iota // a gesture began on the object
	TransformUpdate                      // gesture, throw or programmatic change
	TransformZoom                        // scroll-wheel zoom
	TransformEnd                         // all contacts on the object were released
	TransformReset                       // Reset restored the initial state
)

// String returns the transform type name.
func (t TransformType) String() string {
	switch t {
	case TransformStart:
		return "start"
	case TransformUpdate:
		return "update"
	case TransformZoom:
		return "zoom"
	case TransformEnd:
		return "end"
	case TransformReset:
		return "reset"
	default:
		return "unknown"
	}
}

// TransformEvent is emitted for every change applied to a scatter object.
// Translate, Zoom and Rotate describe the step that was applied about About;
// State is the resulting transform. Fast events come from direct
// manipulation and should be shown immediately; the others may be tweened.
type TransformEvent struct {
	Target    *Scatter
	Type      TransformType
	Translate Vec2
	Zoom      float64
	Rotate    float64
	About     Vec2
	Fast      bool
	State     State
}

// TapContext carries tap and long-press data. Point is in stage space.
type TapContext struct {
	Target   *Scatter
	Contact  ContactID
	Point    Vec2
	Event    Event
	EntityID uint32
	UserData any
}

// EventType identifies a kind of interaction event forwarded to an
// EntityStore.
type EventType uint8

const (
	EventTransform EventType = iota // a TransformEvent was emitted
	EventTap                        // a contact was released as a tap
	EventLongPress                  // a contact was released as a long-press
	EventThrowStart                 // an inertial throw began
	EventThrowEnd                   // a gesture or throw came to rest
)

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	TargetID uint32
	// Transform fields (valid for EventTransform)
	Transform TransformType
	Translate Vec2
	Zoom      float64
	Rotate    float64
	About     Vec2
	Fast      bool
	State     State
	// Point is the release point for EventTap and EventLongPress.
	Point Vec2
	// Velocity is the release velocity in pixels per millisecond for
	// EventThrowStart.
	Velocity Vec2
}
