package plan

// QtyMap is a part-keyed quantity table where an absent part contributes
// zero, never null. Every join in the engine goes through it, so the
// zero-default policy lives in exactly one place.
type QtyMap map[string]float64

func (m QtyMap) Get(key string) float64 {
	return m[key]
}

func (m QtyMap) Add(key string, qty float64) {
	m[key] += qty
}
