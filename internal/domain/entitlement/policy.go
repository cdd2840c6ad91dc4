// Package entitlement implements the subscription-tier gating rules for
// lesson creation and flashcard generation. The policy is pure: it derives
// every answer from the premium flag and the current lesson count, never
// errors, and leaves surfacing a denied action as an error to the caller.
package entitlement

// Policy answers tier-gating questions for a user.
type Policy interface {
	// CanCreateLesson reports whether a user may create another lesson.
	CanCreateLesson(premium bool, lessonCount int) bool

	// RemainingLessons returns how many more lessons a user may create.
	// Returns Unlimited for premium users.
	RemainingLessons(premium bool, lessonCount int) int

	// CanGenerateFlashcards reports whether a user may generate flashcards.
	CanGenerateFlashcards(premium bool) bool
}

// defaultPolicy is the standard implementation of the Policy interface.
type defaultPolicy struct {
	params *Params
}

// NewDefaultPolicy creates a new Policy with default parameters.
func NewDefaultPolicy() Policy {
	return &defaultPolicy{
		params: NewDefaultParams(),
	}
}

// NewPolicyWithParams creates a new Policy with custom parameters.
func NewPolicyWithParams(params *Params) Policy {
	return &defaultPolicy{
		params: params,
	}
}

// CanCreateLesson implements the Policy interface.
// Premium users are never capped; free users are capped at FreeLessonLimit.
func (p *defaultPolicy) CanCreateLesson(premium bool, lessonCount int) bool {
	if premium {
		return true
	}
	return lessonCount < p.params.FreeLessonLimit
}

// RemainingLessons implements the Policy interface.
func (p *defaultPolicy) RemainingLessons(premium bool, lessonCount int) int {
	if premium {
		return Unlimited
	}

	remaining := p.params.FreeLessonLimit - lessonCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanGenerateFlashcards implements the Policy interface.
// Flashcard generation is a premium-only feature.
func (p *defaultPolicy) CanGenerateFlashcards(premium bool) bool {
	return premium
}
