package postgres

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT REPOSITORY IMPLEMENTATION
// The store half of the enrollment & progress engine. Idempotency lives in
// the SQL: assignment relies on ON CONFLICT DO NOTHING against the unique
// (learner_id, topic_id) constraint, progress updates on a single UPDATE
// that recomputes the completed flag in place.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollmentRepository implements enrollment.Repository for PostgreSQL.
type EnrollmentRepository struct {
	conn *Connection
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(conn *Connection) *EnrollmentRepository {
	return &EnrollmentRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// Writes
// ─────────────────────────────────────────────────────────────────────────────

// Assign inserts one completion row per selection over a single pooled
// connection. Existing (learner, topic) pairs are skipped by the conflict
// clause and keep their progress. The batch is sequential and deliberately
// not wrapped in a transaction: a failure mid-batch leaves earlier
// selections applied.
func (r *EnrollmentRepository) Assign(ctx context.Context, learnerID int64, selections []enrollment.Selection) error {
	query := `
		INSERT INTO topic_completion (learner_id, topic_id, subject_id, completed, progress)
		VALUES ($1, $2, $3, FALSE, 0)
		ON CONFLICT (learner_id, topic_id) DO NOTHING
	`

	conn, err := r.conn.Pool().Acquire(ctx)
	if err != nil {
		return shared.WrapError("enrollment", "Assign", shared.ErrStore, "failed to acquire connection", err)
	}
	defer conn.Release()

	for _, sel := range selections {
		if _, err := conn.Exec(ctx, query, learnerID, sel.TopicID, sel.SubjectID); err != nil {
			return shared.WrapError("enrollment", "Assign", shared.ErrStore, "failed to insert completion row", err)
		}
	}

	return nil
}

// UpdateProgress sets progress and the recomputed completed flag of the
// unique (learner, topic) row in one atomic statement and returns the
// updated row. No row means the learner is not enrolled; nothing is
// created in that case.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, learnerID, topicID int64, progress int) (*enrollment.TopicCompletion, error) {
	query := `
		UPDATE topic_completion
		SET progress = $3, completed = ($3 = 100)
		WHERE learner_id = $1 AND topic_id = $2
		RETURNING learner_id, topic_id, subject_id, completed, progress
	`

	var tc enrollment.TopicCompletion
	err := r.conn.QueryRow(ctx, query, learnerID, topicID, progress).Scan(
		&tc.LearnerID,
		&tc.TopicID,
		&tc.SubjectID,
		&tc.Completed,
		&tc.Progress,
	)
	if IsNoRows(err) {
		return nil, shared.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, shared.WrapError("enrollment", "UpdateProgress", shared.ErrStore, "failed to update progress", err)
	}

	return &tc, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Read views
// ─────────────────────────────────────────────────────────────────────────────

// FullCurriculumRows returns every subject and topic left-joined against
// this learner's completion rows. Topics of subjects with no topics come
// back as NULLs; is_offering is 1 iff a completion row matched.
func (r *EnrollmentRepository) FullCurriculumRows(ctx context.Context, learnerID int64) ([]enrollment.CurriculumRow, error) {
	query := `
		SELECT s.id AS subject_id,
		       s.title AS subject_title,
		       s.description AS subject_description,
		       t.id AS topic_id,
		       t.title AS topic_title,
		       t.description AS topic_description,
		       t.video_url,
		       CASE WHEN tc.learner_id IS NOT NULL THEN 1 ELSE 0 END AS is_offering
		FROM subjects s
		LEFT JOIN topics t ON t.subject_id = s.id
		LEFT JOIN topic_completion tc
		       ON tc.topic_id = t.id AND tc.learner_id = $1
		ORDER BY s.id ASC, t.id ASC
	`

	rows, err := r.conn.Query(ctx, query, learnerID)
	if err != nil {
		return nil, shared.WrapError("enrollment", "FullCurriculumRows", shared.ErrStore, "failed to query curriculum rows", err)
	}
	defer rows.Close()

	result := []enrollment.CurriculumRow{}
	for rows.Next() {
		var row enrollment.CurriculumRow
		err := rows.Scan(
			&row.SubjectID,
			&row.SubjectTitle,
			&row.SubjectDescription,
			&row.TopicID,
			&row.TopicTitle,
			&row.TopicDescription,
			&row.VideoURL,
			&row.IsOffering,
		)
		if err != nil {
			return nil, shared.WrapError("enrollment", "FullCurriculumRows", shared.ErrStore, "failed to scan curriculum row", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("enrollment", "FullCurriculumRows", shared.ErrStore, "rows iteration error", err)
	}

	return result, nil
}

// EnrolledRows returns only the topics the learner holds a completion row
// for, inner-joined so un-enrolled subjects are absent entirely.
func (r *EnrollmentRepository) EnrolledRows(ctx context.Context, learnerID int64) ([]enrollment.EnrolledRow, error) {
	query := `
		SELECT s.id AS subject_id,
		       s.title AS subject_title,
		       s.description AS subject_description,
		       t.id AS topic_id,
		       t.title AS topic_title,
		       t.description AS topic_description,
		       t.video_url,
		       tc.progress
		FROM topic_completion tc
		INNER JOIN topics t ON t.id = tc.topic_id
		INNER JOIN subjects s ON s.id = t.subject_id
		WHERE tc.learner_id = $1
		ORDER BY s.id ASC, t.id ASC
	`

	rows, err := r.conn.Query(ctx, query, learnerID)
	if err != nil {
		return nil, shared.WrapError("enrollment", "EnrolledRows", shared.ErrStore, "failed to query enrolled rows", err)
	}
	defer rows.Close()

	result := []enrollment.EnrolledRow{}
	for rows.Next() {
		var row enrollment.EnrolledRow
		err := rows.Scan(
			&row.SubjectID,
			&row.SubjectTitle,
			&row.SubjectDescription,
			&row.TopicID,
			&row.TopicTitle,
			&row.TopicDescription,
			&row.VideoURL,
			&row.Progress,
		)
		if err != nil {
			return nil, shared.WrapError("enrollment", "EnrolledRows", shared.ErrStore, "failed to scan enrolled row", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("enrollment", "EnrolledRows", shared.ErrStore, "rows iteration error", err)
	}

	return result, nil
}

// OfferingRows returns every learner enrolled in a topic ordered by
// progress descending; learner id ascending keeps the ordering stable
// between learners with equal progress.
func (r *EnrollmentRepository) OfferingRows(ctx context.Context, topicID int64) ([]enrollment.OfferingRow, error) {
	query := `
		SELECT l.id AS learner_id,
		       l.name AS learner_name,
		       l.email AS learner_email,
		       tc.progress,
		       tc.completed,
		       s.id AS subject_id,
		       s.title AS subject_title,
		       t.id AS topic_id,
		       t.title AS topic_title
		FROM topic_completion tc
		INNER JOIN learners l ON l.id = tc.learner_id
		INNER JOIN topics t ON t.id = tc.topic_id
		INNER JOIN subjects s ON s.id = t.subject_id
		WHERE tc.topic_id = $1
		ORDER BY tc.progress DESC, l.id ASC
	`

	rows, err := r.conn.Query(ctx, query, topicID)
	if err != nil {
		return nil, shared.WrapError("enrollment", "OfferingRows", shared.ErrStore, "failed to query offering rows", err)
	}
	defer rows.Close()

	result := []enrollment.OfferingRow{}
	for rows.Next() {
		var row enrollment.OfferingRow
		err := rows.Scan(
			&row.LearnerID,
			&row.LearnerName,
			&row.LearnerEmail,
			&row.Progress,
			&row.Completed,
			&row.SubjectID,
			&row.SubjectTitle,
			&row.TopicID,
			&row.TopicTitle,
		)
		if err != nil {
			return nil, shared.WrapError("enrollment", "OfferingRows", shared.ErrStore, "failed to scan offering row", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("enrollment", "OfferingRows", shared.ErrStore, "rows iteration error", err)
	}

	return result, nil
}
