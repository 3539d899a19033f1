package command

import (
	"context"
	"io"
	"time"

	"github.com/etap-learning/etap-backend/internal/domain/curriculum"
	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/learner"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
)

// In-memory fakes for the domain contracts. Enough behavior to observe
// what the handlers persist and when they refuse to touch the store.

type fakeCurriculumRepo struct {
	subjects    []curriculum.Subject
	topics      []curriculum.Topic
	createCalls int
	nextID      int64
	err         error
}

func (f *fakeCurriculumRepo) CreateSubject(_ context.Context, s *curriculum.Subject) error {
	f.createCalls++
	if f.err != nil {
		return f.err
	}
	f.nextID++
	s.ID = f.nextID
	f.subjects = append(f.subjects, *s)
	return nil
}

func (f *fakeCurriculumRepo) ListSubjects(_ context.Context) ([]curriculum.Subject, error) {
	return f.subjects, f.err
}

func (f *fakeCurriculumRepo) CreateTopic(_ context.Context, t *curriculum.Topic) error {
	f.createCalls++
	if f.err != nil {
		return f.err
	}
	f.nextID++
	t.ID = f.nextID
	f.topics = append(f.topics, *t)
	return nil
}

func (f *fakeCurriculumRepo) ListTopicsBySubject(_ context.Context, subjectID int64) ([]curriculum.Topic, error) {
	var topics []curriculum.Topic
	for _, t := range f.topics {
		if t.SubjectID == subjectID {
			topics = append(topics, t)
		}
	}
	return topics, f.err
}

func (f *fakeCurriculumRepo) GetTopicByID(_ context.Context, topicID int64) (*curriculum.Topic, error) {
	for i := range f.topics {
		if f.topics[i].ID == topicID {
			return &f.topics[i], nil
		}
	}
	return nil, shared.ErrTopicNotFound
}

type fakeLearnerRepo struct {
	learners    []learner.Learner
	createCalls int
	err         error
}

func (f *fakeLearnerRepo) Create(_ context.Context, l *learner.Learner) error {
	f.createCalls++
	if f.err != nil {
		return f.err
	}
	l.ID = int64(len(f.learners) + 1)
	f.learners = append(f.learners, *l)
	return nil
}

func (f *fakeLearnerRepo) List(_ context.Context) ([]learner.Learner, error) {
	return f.learners, f.err
}

type completionKey struct {
	learnerID int64
	topicID   int64
}

type fakeEnrollmentRepo struct {
	completions map[completionKey]*enrollment.TopicCompletion
	assignCalls int
	err         error
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{completions: make(map[completionKey]*enrollment.TopicCompletion)}
}

func (f *fakeEnrollmentRepo) Assign(_ context.Context, learnerID int64, selections []enrollment.Selection) error {
	f.assignCalls++
	if f.err != nil {
		return f.err
	}
	for _, sel := range selections {
		key := completionKey{learnerID, sel.TopicID}
		if _, exists := f.completions[key]; exists {
			continue
		}
		f.completions[key] = &enrollment.TopicCompletion{
			LearnerID: learnerID,
			TopicID:   sel.TopicID,
			SubjectID: sel.SubjectID,
		}
	}
	return nil
}

func (f *fakeEnrollmentRepo) UpdateProgress(_ context.Context, learnerID, topicID int64, progress int) (*enrollment.TopicCompletion, error) {
	if f.err != nil {
		return nil, f.err
	}
	tc, ok := f.completions[completionKey{learnerID, topicID}]
	if !ok {
		return nil, shared.ErrEnrollmentNotFound
	}
	tc.Progress = progress
	tc.Completed = enrollment.CompletedFor(progress)
	return tc, nil
}

func (f *fakeEnrollmentRepo) FullCurriculumRows(_ context.Context, _ int64) ([]enrollment.CurriculumRow, error) {
	return nil, f.err
}

func (f *fakeEnrollmentRepo) EnrolledRows(_ context.Context, _ int64) ([]enrollment.EnrolledRow, error) {
	return nil, f.err
}

func (f *fakeEnrollmentRepo) OfferingRows(_ context.Context, _ int64) ([]enrollment.OfferingRow, error) {
	return nil, f.err
}

type fakeViewCache struct {
	invalidatedLearners []int64
	invalidatedTopics   []int64
	invalidatedAll      int
	err                 error
}

func (f *fakeViewCache) GetCurriculumRows(_ context.Context, _ int64) ([]enrollment.CurriculumRow, error) {
	return nil, f.err
}

func (f *fakeViewCache) SetCurriculumRows(_ context.Context, _ int64, _ []enrollment.CurriculumRow, _ time.Duration) error {
	return f.err
}

func (f *fakeViewCache) GetOfferingRows(_ context.Context, _ int64) ([]enrollment.OfferingRow, error) {
	return nil, f.err
}

func (f *fakeViewCache) SetOfferingRows(_ context.Context, _ int64, _ []enrollment.OfferingRow, _ time.Duration) error {
	return f.err
}

func (f *fakeViewCache) InvalidateLearner(_ context.Context, learnerID int64) error {
	f.invalidatedLearners = append(f.invalidatedLearners, learnerID)
	return f.err
}

func (f *fakeViewCache) InvalidateTopic(_ context.Context, topicID int64) error {
	f.invalidatedTopics = append(f.invalidatedTopics, topicID)
	return f.err
}

func (f *fakeViewCache) InvalidateAllCurricula(_ context.Context) error {
	f.invalidatedAll++
	return f.err
}

type fakeUploader struct {
	url   string
	calls int
	err   error
}

func (f *fakeUploader) UploadVideo(_ context.Context, video io.Reader) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.ReadAll(video)
	return f.url, nil
}
