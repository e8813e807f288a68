package spacedrep

import (
	"time"

	"github.com/abhisek/closer/internal/balance"
)

// ReviewState holds the spaced repetition state for one (learner, card) pair.
type ReviewState struct {
	LearnerID      string    `json:"learner_id"`
	CardID         string    `json:"card_id"`
	Stage          Stage     `json:"stage"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextReviewAt   time.Time `json:"next_review_at"`
	MemoryStrength float64   `json:"memory_strength"`
	CorrectCount   int       `json:"correct_count"`
}

func (rs *ReviewState) valid() bool {
	if rs == nil || !rs.Stage.Valid() {
		return false
	}
	if rs.MemoryStrength < 0 || rs.NextReviewAt.Before(rs.LastReviewedAt) {
		return false
	}
	return true
}

// IsDue returns true if the card is due at now. A nil state is always due.
func (rs *ReviewState) IsDue(now time.Time) bool {
	if rs == nil {
		return true
	}
	return !now.Before(rs.NextReviewAt)
}

// OverdueDays returns how many days past due the card is. Returns 0 if not yet due.
func (rs *ReviewState) OverdueDays(now time.Time) float64 {
	if rs == nil || now.Before(rs.NextReviewAt) {
		return 0
	}
	return now.Sub(rs.NextReviewAt).Hours() / 24.0
}

// Retention returns the modeled recall probability at now.
func (rs *ReviewState) Retention(now time.Time) float64 {
	if rs == nil {
		return 0
	}
	elapsed := now.Sub(rs.LastReviewedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return ComputeRetention(float64(elapsed)/float64(balance.Day), rs.MemoryStrength)
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNew       ReviewStatus = "new"
	ReviewNotDue    ReviewStatus = "not_due"
	ReviewDue       ReviewStatus = "due"
	ReviewOverdue   ReviewStatus = "overdue"
	ReviewGraduated ReviewStatus = "graduated"
)

// Status returns the review status for UI display. A card counts as
// overdue once it is past due by more than half its current interval.
func (rs *ReviewState) Status(now time.Time) ReviewStatus {
	if rs == nil {
		return ReviewNew
	}
	if !rs.IsDue(now) {
		if rs.Stage >= MaxStage {
			return ReviewGraduated
		}
		return ReviewNotDue
	}
	grace := rs.NextReviewAt.Sub(rs.LastReviewedAt) / 2
	if now.After(rs.NextReviewAt.Add(grace)) {
		return ReviewOverdue
	}
	return ReviewDue
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (rs *ReviewState) DaysUntilReview(now time.Time) int {
	if rs.IsDue(now) {
		return 0
	}
	return int(rs.NextReviewAt.Sub(now).Hours()/24.0) + 1
}
