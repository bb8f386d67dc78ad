package scatter

// Delta is the resolved gesture of one update step. About is the zoom and
// rotation anchor, in the same coordinate space as the contacts that
// produced it.
type Delta struct {
	Translate Vec2
	Zoom      float64
	Rotate    float64
	About     Vec2
}

// IsTranslation reports whether the delta carries neither zoom nor rotation.
func (d Delta) IsTranslation() bool {
	return d.Zoom == 1 && d.Rotate == 0
}

// Delta resolves the contacts present in both Current and Previous into a
// single gesture step. It returns nil when no contact has a baseline.
//
// One contact yields a pure translation. Two or more contacts yield a
// similarity transform about the midpoint of the contact pair; with more
// than two contacts the farthest pair is chosen, independently and by rank,
// for the current and previous positions.
func (in *Interaction) Delta() *Delta {
	cur := PointMap{}
	prev := PointMap{}
	for id, p := range in.Current {
		if q, ok := in.Previous[id]; ok {
			cur[id] = p
			prev[id] = q
		}
	}

	switch len(cur) {
	case 0:
		return nil
	case 1:
		for id, c := range cur {
			return &Delta{Translate: c.Sub(prev[id]), Zoom: 1, About: c}
		}
	}

	var c1, c2, p1, p2 Vec2
	if len(cur) == 2 {
		ids := cur.IDs()
		c1, c2 = cur[ids[0]], cur[ids[1]]
		p1, p2 = prev[ids[0]], prev[ids[1]]
	} else {
		c1, c2, _ = cur.FarthestPair()
		p1, p2, _ = prev.FarthestPair()
	}
	return pairDelta(c1, c2, p1, p2)
}

// pairDelta computes the anchor-centered similarity transform that takes the
// previous pair (p1, p2) to the current pair (c1, c2).
func pairDelta(c1, c2, p1, p2 Vec2) *Delta {
	d1 := Dist(c1, c2)
	d2 := Dist(p1, p2)
	zoom := 1.0
	rotate := 0.0
	if d1 != 0 && d2 != 0 {
		zoom = d1 / d2
		rotate = NormalizeAngle(Angle(c2, c1) - Angle(p2, p1))
	}
	about := Mean(c1, c2)
	return &Delta{
		Translate: about.Sub(Mean(p1, p2)),
		Zoom:      zoom,
		Rotate:    rotate,
		About:     about,
	}
}
