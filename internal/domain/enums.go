package domain

// ProgressStatus is the scheduling phase of a (user, item) pair.
type ProgressStatus string

const (
	ProgressStatusNew       ProgressStatus = "new"
	ProgressStatusLearning  ProgressStatus = "learning"
	ProgressStatusReviewing ProgressStatus = "reviewing"
)

func (s ProgressStatus) String() string { return string(s) }

func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressStatusNew, ProgressStatusLearning, ProgressStatusReviewing:
		return true
	}
	return false
}

// Quality is the 0..5 rating attached to a single answer.
type Quality int

const (
	QualityBlackout  Quality = 0
	QualityIncorrect Quality = 1
	QualityHard      Quality = 2
	QualityHesitant  Quality = 3
	QualityGood      Quality = 4
	QualityPerfect   Quality = 5
)

// PassThreshold is the single pass/fail boundary: quality >= 2 is a pass.
const PassThreshold Quality = 2

func (q Quality) IsValid() bool { return q >= QualityBlackout && q <= QualityPerfect }

// IsPass reports whether the answer counts toward the correct streak.
func (q Quality) IsPass() bool { return q >= PassThreshold }

// Label maps a quality onto the coarse hard/good/easy scale used for scoring.
// Scheduling never looks at labels, only at IsPass.
func (q Quality) Label() QualityLabel {
	switch {
	case !q.IsPass():
		return QualityLabelAgain
	case q <= QualityHesitant:
		return QualityLabelHard
	case q == QualityGood:
		return QualityLabelGood
	default:
		return QualityLabelEasy
	}
}

// QualityLabel is the coarse outcome label derived from a Quality.
type QualityLabel string

const (
	QualityLabelAgain QualityLabel = "AGAIN"
	QualityLabelHard  QualityLabel = "HARD"
	QualityLabelGood  QualityLabel = "GOOD"
	QualityLabelEasy  QualityLabel = "EASY"
)

func (l QualityLabel) String() string { return string(l) }

// PointsReason explains why points were (or were not) awarded.
type PointsReason string

const (
	PointsReasonFirstCorrect PointsReason = "first_correct_answer"
	PointsReasonCorrect      PointsReason = "correct_answer"
	PointsReasonIncorrect    PointsReason = "incorrect_answer"
)

func (r PointsReason) String() string { return string(r) }

func (r PointsReason) IsValid() bool {
	switch r {
	case PointsReasonFirstCorrect, PointsReasonCorrect, PointsReasonIncorrect:
		return true
	}
	return false
}

// EntityType identifies the kind of entity touched by an audited operation.
type EntityType string

const (
	EntityTypeProgress  EntityType = "PROGRESS"
	EntityTypeReviewLog EntityType = "REVIEW_LOG"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeProgress, EntityTypeReviewLog:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionReset AuditAction = "RESET"
	AuditActionErase AuditAction = "ERASE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionReset, AuditActionErase:
		return true
	}
	return false
}
