package entitlement

// Unlimited is the sentinel returned by RemainingLessons for premium users.
// It is a distinct value rather than a large count so callers never hit an
// off-by-one boundary against a fake ceiling.
const Unlimited = -1

// DefaultFreeLessonLimit is the number of lessons a free-tier user may hold.
const DefaultFreeLessonLimit = 5

// Params defines the configurable parameters of the entitlement policy.
type Params struct {
	// FreeLessonLimit caps how many lessons a free-tier user may have at once.
	FreeLessonLimit int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		FreeLessonLimit: DefaultFreeLessonLimit,
	}
}
