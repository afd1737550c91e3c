// Package store owns the three dashboard collections and their
// commit-on-write persistence.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/repository"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

// Store is the record store for questions, registered parents and feedback
// submissions. All mutations go through its methods; each one synchronously
// rewrites the affected collection snapshot. Reads return copies so callers
// never share backing arrays with the store.
type Store struct {
	mu          sync.RWMutex
	questions   []models.Question
	parents     []models.RegisteredParent
	submissions []models.FeedbackSubmission

	snapshots repository.SnapshotRepository
	logger    *zap.Logger
	ready     bool
}

// New constructs a store backed by the given snapshot repository.
func New(snapshots repository.SnapshotRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{snapshots: snapshots, logger: logger}
}

// Init loads each collection from its persisted snapshot, falling back to
// seed defaults when seeding is enabled and no snapshot exists.
func (s *Store) Init(ctx context.Context, seed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := loadCollection(ctx, s.snapshots, repository.KeyQuestions, &s.questions); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.snapshots, repository.KeyParents, &s.parents); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.snapshots, repository.KeySubmissions, &s.submissions); err != nil {
		return err
	}

	if seed {
		if s.questions == nil {
			s.questions = seedQuestions()
		}
		if s.parents == nil {
			s.parents = seedParents()
		}
	}
	if s.submissions == nil {
		s.submissions = []models.FeedbackSubmission{}
	}
	s.ready = true
	return nil
}

// Ready reports whether Init completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func loadCollection[T any](ctx context.Context, snapshots repository.SnapshotRepository, key string, dest *[]T) error {
	payload, ok, err := snapshots.Load(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return json.Unmarshal(payload, dest)
}

// AddQuestion creates a new active question and appends it to the list.
func (s *Store) AddQuestion(ctx context.Context, textAm, textEn string) models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := models.Question{
		ID:     uuid.NewString(),
		TextAm: textAm,
		TextEn: textEn,
		Active: true,
	}
	s.questions = append(s.questions, question)
	s.persist(ctx, repository.KeyQuestions, s.questions)
	return question
}

// ToggleQuestion flips the active flag of the question with the given id.
// An absent id is a no-op; the boolean reports whether a question matched.
func (s *Store) ToggleQuestion(ctx context.Context, id string) (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i].Active = !s.questions[i].Active
			s.persist(ctx, repository.KeyQuestions, s.questions)
			return s.questions[i], true
		}
	}
	return models.Question{}, false
}

// RegisterParent inserts the candidate at the head of the collection.
// Registration fails with a duplicate-key error when the student id is
// already present; the collection is left untouched.
func (s *Store) RegisterParent(ctx context.Context, parent models.RegisteredParent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.parents {
		if existing.StudentID == parent.StudentID {
			return appErrors.Clone(appErrors.ErrDuplicateKey, "this student id is already registered")
		}
	}

	s.parents = append([]models.RegisteredParent{parent}, s.parents...)
	s.persist(ctx, repository.KeyParents, s.parents)
	return nil
}

// DeleteParent hard-deletes the parent with the given student id. Deleting
// an absent id is a no-op, not an error.
func (s *Store) DeleteParent(ctx context.Context, studentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.parents[:0]
	removed := false
	for _, parent := range s.parents {
		if parent.StudentID == studentID {
			removed = true
			continue
		}
		kept = append(kept, parent)
	}
	s.parents = kept
	if removed {
		s.persist(ctx, repository.KeyParents, s.parents)
	}
}

// RecordSubmission prepends the immutable submission record
// (most-recent-first ordering).
func (s *Store) RecordSubmission(ctx context.Context, sub models.FeedbackSubmission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions = append([]models.FeedbackSubmission{sub}, s.submissions...)
	s.persist(ctx, repository.KeySubmissions, s.submissions)
}

// Questions returns a copy of all questions in insertion order.
func (s *Store) Questions() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Question(nil), s.questions...)
}

// ActiveQuestions returns the questions currently presented on the feedback
// form.
func (s *Store) ActiveQuestions() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	active := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if q.Active {
			active = append(active, q)
		}
	}
	return active
}

// FindQuestion resolves a question by id.
func (s *Store) FindQuestion(id string) (models.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// Parents returns a copy of the registered parents, most recent first.
func (s *Store) Parents() []models.RegisteredParent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.RegisteredParent(nil), s.parents...)
}

// FindParent resolves a registered parent by student id.
func (s *Store) FindParent(studentID string) (models.RegisteredParent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, parent := range s.parents {
		if parent.StudentID == studentID {
			return parent, true
		}
	}
	return models.RegisteredParent{}, false
}

// FindParentByCredentials performs the strict student id + phone match used
// by the parent login gate.
func (s *Store) FindParentByCredentials(studentID, phone string) (models.RegisteredParent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, parent := range s.parents {
		if parent.StudentID == studentID && parent.ParentPhone == phone {
			return parent, true
		}
	}
	return models.RegisteredParent{}, false
}

// Submissions returns a copy of all submissions, most recent first.
func (s *Store) Submissions() []models.FeedbackSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FeedbackSubmission(nil), s.submissions...)
}

// SubmissionsByParent returns this parent's submissions, most recent first.
func (s *Store) SubmissionsByParent(parentID string) []models.FeedbackSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]models.FeedbackSubmission, 0)
	for _, sub := range s.submissions {
		if sub.ParentID == parentID {
			matched = append(matched, sub)
		}
	}
	return matched
}

// persist serializes the collection under its key. Persistence is
// fire-and-forget: the in-memory state stays authoritative and failures are
// only logged (accepted data-loss model of the snapshot persistence).
func (s *Store) persist(ctx context.Context, key string, collection interface{}) {
	payload, err := json.Marshal(collection)
	if err != nil {
		s.logger.Warn("marshal collection snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	start := time.Now()
	if err := s.snapshots.Save(ctx, key, payload); err != nil {
		s.logger.Warn("write collection snapshot",
			zap.String("key", key),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
	}
}
