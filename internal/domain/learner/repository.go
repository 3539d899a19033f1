package learner

import "context"

// Repository defines the persistence contract for learners.
type Repository interface {
	// Create persists a new learner and fills in the generated ID.
	Create(ctx context.Context, l *Learner) error

	// List returns all learners ordered ascending by id.
	List(ctx context.Context) ([]Learner, error)
}
