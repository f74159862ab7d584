package domain

// Grade is the reviewer's self-assessed difficulty of recalling a card.
type Grade string

// Possible grade values
const (
	GradeEasy   Grade = "Easy"
	GradeMedium Grade = "Medium"
	GradeHard   Grade = "Hard"
)

// Valid reports whether g is one of the known grades.
func (g Grade) Valid() bool {
	switch g {
	case GradeEasy, GradeMedium, GradeHard:
		return true
	default:
		return false
	}
}

// ParseGrade converts a raw string into a Grade.
// Returns ErrInvalidGrade for anything outside Easy, Medium and Hard.
func ParseGrade(s string) (Grade, error) {
	g := Grade(s)
	if !g.Valid() {
		return "", ErrInvalidGrade
	}
	return g, nil
}

// ReviewStatus is the lifecycle tag of a card.
type ReviewStatus string

// Possible review status values, in study priority order.
const (
	ReviewStatusNew      ReviewStatus = "New"
	ReviewStatusLearning ReviewStatus = "Learning"
	ReviewStatusReview   ReviewStatus = "Review"
	ReviewStatusMastered ReviewStatus = "Mastered"
)

// ReviewStatuses lists every status in rank order.
var ReviewStatuses = []ReviewStatus{
	ReviewStatusNew,
	ReviewStatusLearning,
	ReviewStatusReview,
	ReviewStatusMastered,
}

// Valid reports whether s is one of the known statuses.
func (s ReviewStatus) Valid() bool {
	return s.Rank() > 0
}

// Rank returns the study priority of the status: New(1) < Learning(2) <
// Review(3) < Mastered(4). Unknown statuses rank 0.
func (s ReviewStatus) Rank() int {
	switch s {
	case ReviewStatusNew:
		return 1
	case ReviewStatusLearning:
		return 2
	case ReviewStatusReview:
		return 3
	case ReviewStatusMastered:
		return 4
	default:
		return 0
	}
}

// ParseReviewStatus converts a raw string into a ReviewStatus.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	status := ReviewStatus(s)
	if !status.Valid() {
		return "", ErrInvalidReviewStatus
	}
	return status, nil
}
