// Package query contains read operations (CQRS - Queries) and the view
// assembler that folds flat join rows into nested subject trees.
package query

import (
	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
)

// ══════════════════════════════════════════════════════════════════════════════
// PRESENTATION ASSEMBLER
// Both curriculum views arrive from the store as an ordered sequence of flat
// join rows. Assembly is an explicit two-pass reducer: a map from subject id
// to an in-progress builder for deduplication, plus an order slice that
// preserves first-seen subject order. A row whose topic id is null (a
// subject without topics in the left join) contributes the subject only.
// ══════════════════════════════════════════════════════════════════════════════

// TopicEntry is one topic in the full-curriculum view. IsOffering is 1 iff
// a completion row exists for the requesting learner, else 0.
type TopicEntry struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoURL    *string `json:"video_url"`
	IsOffering  int     `json:"isOffering"`
}

// SubjectWithTopics is one subject in the full-curriculum view. Subjects
// without topics appear with an empty (never null) topic list.
type SubjectWithTopics struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Topics      []TopicEntry `json:"topics"`
}

// TopicProgressEntry is one topic in the enrolled-only view, carrying the
// learner's numeric progress instead of the offering flag.
type TopicProgressEntry struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoURL    *string `json:"video_url"`
	Progress    int     `json:"progress"`
}

// SubjectWithProgress is one subject in the enrolled-only view. Subjects
// with zero enrolled topics do not appear at all.
type SubjectWithProgress struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Topics      []TopicProgressEntry `json:"topics"`
}

// AssembleFullCurriculum folds the left-joined rows into the nested
// full-curriculum view.
func AssembleFullCurriculum(rows []enrollment.CurriculumRow) []SubjectWithTopics {
	byID := make(map[int64]*SubjectWithTopics, len(rows))
	order := make([]int64, 0, len(rows))

	for _, row := range rows {
		subject, ok := byID[row.SubjectID]
		if !ok {
			subject = &SubjectWithTopics{
				ID:          row.SubjectID,
				Title:       row.SubjectTitle,
				Description: row.SubjectDescription,
				Topics:      []TopicEntry{},
			}
			byID[row.SubjectID] = subject
			order = append(order, row.SubjectID)
		}

		if row.TopicID == nil {
			continue
		}

		entry := TopicEntry{
			ID:         *row.TopicID,
			IsOffering: row.IsOffering,
			VideoURL:   row.VideoURL,
		}
		if row.TopicTitle != nil {
			entry.Title = *row.TopicTitle
		}
		if row.TopicDescription != nil {
			entry.Description = *row.TopicDescription
		}
		subject.Topics = append(subject.Topics, entry)
	}

	subjects := make([]SubjectWithTopics, 0, len(order))
	for _, id := range order {
		subjects = append(subjects, *byID[id])
	}
	return subjects
}

// AssembleEnrolledCurriculum folds the inner-joined rows into the nested
// enrolled-only view.
func AssembleEnrolledCurriculum(rows []enrollment.EnrolledRow) []SubjectWithProgress {
	byID := make(map[int64]*SubjectWithProgress, len(rows))
	order := make([]int64, 0, len(rows))

	for _, row := range rows {
		subject, ok := byID[row.SubjectID]
		if !ok {
			subject = &SubjectWithProgress{
				ID:          row.SubjectID,
				Title:       row.SubjectTitle,
				Description: row.SubjectDescription,
				Topics:      []TopicProgressEntry{},
			}
			byID[row.SubjectID] = subject
			order = append(order, row.SubjectID)
		}

		subject.Topics = append(subject.Topics, TopicProgressEntry{
			ID:          row.TopicID,
			Title:       row.TopicTitle,
			Description: row.TopicDescription,
			VideoURL:    row.VideoURL,
			Progress:    row.Progress,
		})
	}

	subjects := make([]SubjectWithProgress, 0, len(order))
	for _, id := range order {
		subjects = append(subjects, *byID[id])
	}
	return subjects
}
