package arbor

// LinkUpdate pairs the previous and next geometry of a link present in both
// layout passes. The transition layer interpolates From to To.
type LinkUpdate struct {
	From LinkGeometry
	To   LinkGeometry
}

// LinkDiff partitions two link collections by key. The three sets are
// disjoint: every key of the new pass lands in exactly one of Enter or
// Update, and every dropped key of the previous pass lands in Exit.
type LinkDiff struct {
	Enter  []LinkGeometry // in new but not previous; fade in at final geometry
	Update []LinkUpdate   // in both; geometry interpolates old -> new
	Exit   []LinkGeometry // in previous but not new; fade out, then remove
}

// DiffLinks computes the enter/update/exit partition between the previously
// rendered links and a newly computed set. Enter and Update preserve the
// order of next; Exit preserves the order of prev.
func DiffLinks(prev, next []LinkGeometry) LinkDiff {
	var d LinkDiff

	prevByKey := make(map[LinkKey]LinkGeometry, len(prev))
	for _, l := range prev {
		prevByKey[l.Key()] = l
	}

	nextKeys := make(map[LinkKey]struct{}, len(next))
	for _, l := range next {
		key := l.Key()
		nextKeys[key] = struct{}{}
		if old, ok := prevByKey[key]; ok {
			d.Update = append(d.Update, LinkUpdate{From: old, To: l})
		} else {
			d.Enter = append(d.Enter, l)
		}
	}

	for _, l := range prev {
		if _, ok := nextKeys[l.Key()]; !ok {
			d.Exit = append(d.Exit, l)
		}
	}
	return d
}
