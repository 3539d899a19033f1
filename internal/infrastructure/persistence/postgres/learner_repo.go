package postgres

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/learner"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEARNER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// LearnerRepository implements learner.Repository for PostgreSQL.
type LearnerRepository struct {
	conn *Connection
}

// NewLearnerRepository creates a new LearnerRepository.
func NewLearnerRepository(conn *Connection) *LearnerRepository {
	return &LearnerRepository{conn: conn}
}

// Create creates a new learner and fills in the generated id. Email
// uniqueness is not enforced at the schema level.
func (r *LearnerRepository) Create(ctx context.Context, l *learner.Learner) error {
	query := `
		INSERT INTO learners (name, email)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query, l.Name, l.Email).Scan(&l.ID)
	if err != nil {
		return shared.WrapError("learner", "Create", shared.ErrStore, "failed to create learner", err)
	}

	return nil
}

// List returns all learners ordered by id.
func (r *LearnerRepository) List(ctx context.Context) ([]learner.Learner, error) {
	query := `
		SELECT id, name, email
		FROM learners
		ORDER BY id ASC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, shared.WrapError("learner", "List", shared.ErrStore, "failed to query learners", err)
	}
	defer rows.Close()

	learners := []learner.Learner{}
	for rows.Next() {
		var l learner.Learner
		if err := rows.Scan(&l.ID, &l.Name, &l.Email); err != nil {
			return nil, shared.WrapError("learner", "List", shared.ErrStore, "failed to scan learner", err)
		}
		learners = append(learners, l)
	}

	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("learner", "List", shared.ErrStore, "rows iteration error", err)
	}

	return learners, nil
}
