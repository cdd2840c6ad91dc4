package entitlement

import "testing"

func TestCanCreateLesson(t *testing.T) {
	t.Parallel()

	policy := NewDefaultPolicy()

	tests := []struct {
		name        string
		premium     bool
		lessonCount int
		want        bool
	}{
		{"free user under limit", false, 0, true},
		{"free user one below limit", false, 4, true},
		{"free user at limit", false, 5, false},
		{"free user over limit", false, 6, false},
		{"premium user at free limit", true, 5, true},
		{"premium user with many lessons", true, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.CanCreateLesson(tt.premium, tt.lessonCount)
			if got != tt.want {
				t.Errorf(
					"CanCreateLesson(%v, %d) = %v, want %v",
					tt.premium, tt.lessonCount, got, tt.want,
				)
			}
		})
	}
}

func TestRemainingLessons(t *testing.T) {
	t.Parallel()

	policy := NewDefaultPolicy()

	tests := []struct {
		name        string
		premium     bool
		lessonCount int
		want        int
	}{
		{"free user with no lessons", false, 0, 5},
		{"free user with some lessons", false, 3, 2},
		{"free user at limit", false, 5, 0},
		{"free user over limit clamps to zero", false, 7, 0},
		{"premium user is unlimited", true, 0, Unlimited},
		{"premium user stays unlimited at scale", true, 1000, Unlimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.RemainingLessons(tt.premium, tt.lessonCount)
			if got != tt.want {
				t.Errorf(
					"RemainingLessons(%v, %d) = %d, want %d",
					tt.premium, tt.lessonCount, got, tt.want,
				)
			}
		})
	}
}

func TestCanGenerateFlashcards(t *testing.T) {
	t.Parallel()

	policy := NewDefaultPolicy()

	if policy.CanGenerateFlashcards(false) {
		t.Error("expected flashcard generation denied for free user")
	}

	if !policy.CanGenerateFlashcards(true) {
		t.Error("expected flashcard generation allowed for premium user")
	}
}

func TestCustomParams(t *testing.T) {
	t.Parallel()

	policy := NewPolicyWithParams(&Params{FreeLessonLimit: 2})

	if !policy.CanCreateLesson(false, 1) {
		t.Error("expected creation allowed below custom limit")
	}

	if policy.CanCreateLesson(false, 2) {
		t.Error("expected creation denied at custom limit")
	}

	if got := policy.RemainingLessons(false, 1); got != 1 {
		t.Errorf("RemainingLessons(false, 1) = %d, want 1", got)
	}
}
