// Package enrollment contains the enrollment/progress entities and the
// contracts of the enrollment & progress engine. A TopicCompletion row is
// the many-to-many assignment of a topic to a learner plus its progress
// state; at most one row may exist per (learner, topic) pair.
package enrollment

// TopicCompletion records a learner's enrollment and progress in one topic.
type TopicCompletion struct {
	// LearnerID and TopicID form the composite identity of the row.
	LearnerID int64 `json:"learner_id"`
	TopicID   int64 `json:"topic_id"`

	// SubjectID is denormalized from the topic for query efficiency.
	// It always equals the subject_id of the referenced topic.
	SubjectID int64 `json:"subject_id"`

	// Completed is derived: it equals progress == 100 after every
	// progress-updating operation.
	Completed bool `json:"completed"`

	// Progress is the completion percentage. The engine does not clamp
	// it into [0,100]; callers are expected to send values in range.
	Progress int `json:"progress"`
}

// CompletedFor reports the derived completed flag for a progress value.
func CompletedFor(progress int) bool {
	return progress == 100
}

// Selection identifies one topic a learner picked for assignment.
type Selection struct {
	TopicID   int64 `json:"topicId"`
	SubjectID int64 `json:"subjectId"`
}

// AssignmentResult reports the outcome of a batch assignment. The engine
// does not distinguish already-enrolled from newly inserted selections.
type AssignmentResult struct {
	LearnerID int64 `json:"learner_id"`
	Requested int   `json:"requested"`
}

// CurriculumRow is one flat row of the full-curriculum left join: every
// subject and every topic against this learner's completions. TopicID is
// nil when the subject has no topics at all.
type CurriculumRow struct {
	SubjectID          int64   `json:"subject_id"`
	SubjectTitle       string  `json:"subject_title"`
	SubjectDescription string  `json:"subject_description"`
	TopicID            *int64  `json:"topic_id"`
	TopicTitle         *string `json:"topic_title"`
	TopicDescription   *string `json:"topic_description"`
	VideoURL           *string `json:"video_url"`

	// IsOffering is 1 iff a completion row exists for this learner/topic.
	IsOffering int `json:"is_offering"`
}

// EnrolledRow is one flat row of the enrolled-only inner join: only topics
// the learner has a completion row for.
type EnrolledRow struct {
	SubjectID          int64   `json:"subject_id"`
	SubjectTitle       string  `json:"subject_title"`
	SubjectDescription string  `json:"subject_description"`
	TopicID            int64   `json:"topic_id"`
	TopicTitle         string  `json:"topic_title"`
	TopicDescription   string  `json:"topic_description"`
	VideoURL           *string `json:"video_url"`
	Progress           int     `json:"progress"`
}

// OfferingRow is one flat row of the per-topic offering listing: a learner
// enrolled in the topic, annotated with progress and titles.
type OfferingRow struct {
	LearnerID    int64  `json:"learner_id"`
	LearnerName  string `json:"learner_name"`
	LearnerEmail string `json:"learner_email"`
	Progress     int    `json:"progress"`
	Completed    bool   `json:"completed"`
	SubjectID    int64  `json:"subject_id"`
	SubjectTitle string `json:"subject_title"`
	TopicID      int64  `json:"topic_id"`
	TopicTitle   string `json:"topic_title"`
}
