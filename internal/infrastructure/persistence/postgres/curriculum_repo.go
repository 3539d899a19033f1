package postgres

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/curriculum"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CURRICULUM REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CurriculumRepository implements curriculum.Repository for PostgreSQL.
type CurriculumRepository struct {
	conn *Connection
}

// NewCurriculumRepository creates a new CurriculumRepository.
func NewCurriculumRepository(conn *Connection) *CurriculumRepository {
	return &CurriculumRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// Subjects
// ─────────────────────────────────────────────────────────────────────────────

// CreateSubject creates a new subject and fills in the generated id.
func (r *CurriculumRepository) CreateSubject(ctx context.Context, s *curriculum.Subject) error {
	query := `
		INSERT INTO subjects (title, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query, s.Title, s.Description).Scan(&s.ID)
	if err != nil {
		return shared.WrapError("curriculum", "CreateSubject", shared.ErrStore, "failed to create subject", err)
	}

	return nil
}

// ListSubjects returns all subjects ordered by id.
func (r *CurriculumRepository) ListSubjects(ctx context.Context) ([]curriculum.Subject, error) {
	query := `
		SELECT id, title, description
		FROM subjects
		ORDER BY id ASC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, shared.WrapError("curriculum", "ListSubjects", shared.ErrStore, "failed to query subjects", err)
	}
	defer rows.Close()

	subjects := []curriculum.Subject{}
	for rows.Next() {
		var s curriculum.Subject
		if err := rows.Scan(&s.ID, &s.Title, &s.Description); err != nil {
			return nil, shared.WrapError("curriculum", "ListSubjects", shared.ErrStore, "failed to scan subject", err)
		}
		subjects = append(subjects, s)
	}

	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("curriculum", "ListSubjects", shared.ErrStore, "rows iteration error", err)
	}

	return subjects, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Topics
// ─────────────────────────────────────────────────────────────────────────────

// CreateTopic creates a new topic and fills in the generated id. A foreign
// key violation on subject_id maps to shared.ErrSubjectNotFound.
func (r *CurriculumRepository) CreateTopic(ctx context.Context, t *curriculum.Topic) error {
	query := `
		INSERT INTO topics (subject_id, title, description, video_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query, t.SubjectID, t.Title, t.Description, t.VideoURL).Scan(&t.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrSubjectNotFound
		}
		return shared.WrapError("curriculum", "CreateTopic", shared.ErrStore, "failed to create topic", err)
	}

	return nil
}

// ListTopicsBySubject returns all topics of a subject ordered by id. A
// subject with no topics yields an empty slice without an existence check.
func (r *CurriculumRepository) ListTopicsBySubject(ctx context.Context, subjectID int64) ([]curriculum.Topic, error) {
	query := `
		SELECT id, subject_id, title, description, video_url
		FROM topics
		WHERE subject_id = $1
		ORDER BY id ASC
	`

	rows, err := r.conn.Query(ctx, query, subjectID)
	if err != nil {
		return nil, shared.WrapError("curriculum", "ListTopicsBySubject", shared.ErrStore, "failed to query topics", err)
	}
	defer rows.Close()

	topics := []curriculum.Topic{}
	for rows.Next() {
		var t curriculum.Topic
		if err := rows.Scan(&t.ID, &t.SubjectID, &t.Title, &t.Description, &t.VideoURL); err != nil {
			return nil, shared.WrapError("curriculum", "ListTopicsBySubject", shared.ErrStore, "failed to scan topic", err)
		}
		topics = append(topics, t)
	}

	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("curriculum", "ListTopicsBySubject", shared.ErrStore, "rows iteration error", err)
	}

	return topics, nil
}

// GetTopicByID returns a topic by id or shared.ErrTopicNotFound.
func (r *CurriculumRepository) GetTopicByID(ctx context.Context, topicID int64) (*curriculum.Topic, error) {
	query := `
		SELECT id, subject_id, title, description, video_url
		FROM topics
		WHERE id = $1
	`

	var t curriculum.Topic
	err := r.conn.QueryRow(ctx, query, topicID).Scan(&t.ID, &t.SubjectID, &t.Title, &t.Description, &t.VideoURL)
	if IsNoRows(err) {
		return nil, shared.ErrTopicNotFound
	}
	if err != nil {
		return nil, shared.WrapError("curriculum", "GetTopicByID", shared.ErrStore, "failed to scan topic", err)
	}

	return &t, nil
}
