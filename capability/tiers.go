package capability

// Tiers is the classification of a driver into cumulative capability tiers.
// Transactional implies Queryable, which implies Connectable.
type Tiers struct {
	Connectable   bool
	Queryable     bool
	Transactional bool
}

// Classify computes the tiers covered by a declared operation set.
// A tier is only granted when every lower tier is granted too.
func Classify(set Set) Tiers {
	var out Tiers

	out.Connectable = set.HasAll(layers[TierConnectable]...)
	out.Queryable = out.Connectable && set.HasAll(layers[TierQueryable]...)
	out.Transactional = out.Queryable && set.HasAll(layers[TierTransactional]...)

	return out
}

// Supports reports whether the given tier is granted.
// TierNone is always supported.
func (t Tiers) Supports(tier Tier) bool {
	switch tier {
	case TierNone:
		return true
	case TierConnectable:
		return t.Connectable
	case TierQueryable:
		return t.Queryable
	case TierTransactional:
		return t.Transactional
	default:
		return false
	}
}

// Highest returns the highest granted tier.
func (t Tiers) Highest() Tier {
	switch {
	case t.Transactional:
		return TierTransactional
	case t.Queryable:
		return TierQueryable
	case t.Connectable:
		return TierConnectable
	default:
		return TierNone
	}
}

// Cap limits the tiers to at most the given tier.
func (t Tiers) Cap(tier Tier) Tiers {
	return Tiers{
		Connectable:   t.Connectable && tier >= TierConnectable,
		Queryable:     t.Queryable && tier >= TierQueryable,
		Transactional: t.Transactional && tier >= TierTransactional,
	}
}

// String returns the name of the highest granted tier.
func (t Tiers) String() string {
	return t.Highest().String()
}
