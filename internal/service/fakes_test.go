package service

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	r.users[u.ID] = &cp
	return u.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.NotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) AddStudentIDToTrainer(_ context.Context, trainerID, studentID primitive.ObjectID) error {
	t, ok := r.users[trainerID]
	if !ok {
		return repository.ErrNotFound
	}
	t.StudentIDs = append(t.StudentIDs, studentID)
	return nil
}

func (r *fakeUserRepo) GetStudentsByTrainerID(_ context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	t, ok := r.users[trainerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	var out []domain.User
	for _, id := range t.StudentIDs {
		out = append(out, *r.users[id])
	}
	return out, nil
}

func (r *fakeUserRepo) SetTrainerForStudent(_ context.Context, studentID, trainerID primitive.ObjectID) error {
	s, ok := r.users[studentID]
	if !ok {
		return repository.ErrNotFound
	}
	s.TrainerID = &trainerID
	return nil
}

type fakeExerciseRepo struct {
	items map[primitive.ObjectID]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{items: map[primitive.ObjectID]*domain.Exercise{}}
}

func (r *fakeExerciseRepo) Create(_ context.Context, e *domain.Exercise) (primitive.ObjectID, error) {
	for _, existing := range r.items {
		if existing.TrainerID == e.TrainerID && existing.Name == e.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	e.ID = primitive.NewObjectID()
	cp := *e
	r.items[e.ID] = &cp
	return e.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, repository.NotFound("exercise", id)
	}
	cp := *e
	cp.HasMedia = cp.MediaKey != ""
	return &cp, nil
}

func (r *fakeExerciseRepo) GetByTrainerID(_ context.Context, trainerID primitive.ObjectID) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	for _, e := range r.items {
		if e.TrainerID == trainerID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) SetMediaKey(_ context.Context, id primitive.ObjectID, key string) error {
	e, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.MediaKey = key
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id, trainerID primitive.ObjectID) error {
	e, ok := r.items[id]
	if !ok || e.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeRoutineRepo struct {
	items map[primitive.ObjectID]*domain.TrainingRoutine
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{items: map[primitive.ObjectID]*domain.TrainingRoutine{}}
}

func (r *fakeRoutineRepo) Create(_ context.Context, rt *domain.TrainingRoutine) (primitive.ObjectID, error) {
	rt.ID = primitive.NewObjectID()
	cp := *rt
	r.items[rt.ID] = &cp
	return rt.ID, nil
}

func (r *fakeRoutineRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingRoutine, error) {
	rt, ok := r.items[id]
	if !ok {
		return nil, repository.NotFound("routine", id)
	}
	cp := *rt
	return &cp, nil
}

func (r *fakeRoutineRepo) filter(keep func(*domain.TrainingRoutine) bool) []domain.TrainingRoutine {
	out := []domain.TrainingRoutine{}
	for _, rt := range r.items {
		if keep(rt) {
			out = append(out, *rt)
		}
	}
	return out
}

func (r *fakeRoutineRepo) GetByTrainerID(_ context.Context, id primitive.ObjectID) ([]domain.TrainingRoutine, error) {
	return r.filter(func(rt *domain.TrainingRoutine) bool { return rt.TrainerID == id }), nil
}

func (r *fakeRoutineRepo) GetByStudentID(_ context.Context, id primitive.ObjectID) ([]domain.TrainingRoutine, error) {
	return r.filter(func(rt *domain.TrainingRoutine) bool { return rt.StudentID == id }), nil
}

func (r *fakeRoutineRepo) GetEndingBetween(_ context.Context, from, to time.Time) ([]domain.TrainingRoutine, error) {
	return r.filter(func(rt *domain.TrainingRoutine) bool {
		return !rt.EndDate.Before(from) && rt.EndDate.Before(to)
	}), nil
}

func (r *fakeRoutineRepo) Delete(_ context.Context, id, trainerID primitive.ObjectID) error {
	rt, ok := r.items[id]
	if !ok || rt.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeTrainingRepo struct {
	items map[primitive.ObjectID]*domain.Training
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{items: map[primitive.ObjectID]*domain.Training{}}
}

func (r *fakeTrainingRepo) Create(_ context.Context, t *domain.Training) (primitive.ObjectID, error) {
	t.ID = primitive.NewObjectID()
	cp := *t
	r.items[t.ID] = &cp
	return t.ID, nil
}

func (r *fakeTrainingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Training, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, repository.NotFound("training", id)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTrainingRepo) GetLibraryByTrainerID(_ context.Context, trainerID primitive.ObjectID) ([]domain.Training, error) {
	out := []domain.Training{}
	for _, t := range r.items {
		if t.TrainerID == trainerID && t.IsLibrary {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTrainingRepo) Delete(_ context.Context, id, trainerID primitive.ObjectID) error {
	t, ok := r.items[id]
	if !ok || t.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeLinkRepo struct {
	items map[primitive.ObjectID]*domain.RoutineTraining
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{items: map[primitive.ObjectID]*domain.RoutineTraining{}}
}

func (r *fakeLinkRepo) Create(_ context.Context, l *domain.RoutineTraining) (primitive.ObjectID, error) {
	for _, existing := range r.items {
		if existing.RoutineID == l.RoutineID && existing.TrainingID == l.TrainingID {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	l.ID = primitive.NewObjectID()
	cp := *l
	r.items[l.ID] = &cp
	return l.ID, nil
}

func (r *fakeLinkRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.RoutineTraining, error) {
	l, ok := r.items[id]
	if !ok {
		return nil, repository.NotFound("routine training", id)
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLinkRepo) GetByRoutineID(_ context.Context, routineID primitive.ObjectID) ([]domain.RoutineTraining, error) {
	out := []domain.RoutineTraining{}
	for _, l := range r.items {
		if l.RoutineID == routineID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeLinkRepo) CountByTrainingID(_ context.Context, trainingID primitive.ObjectID) (int64, error) {
	var n int64
	for _, l := range r.items {
		if l.TrainingID == trainingID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLinkRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeLinkRepo) DeleteByRoutineID(_ context.Context, routineID primitive.ObjectID) (int64, error) {
	var n int64
	for id, l := range r.items {
		if l.RoutineID == routineID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

type fakeExerciseTrainingRepo struct {
	items []domain.ExerciseTraining
}

func (r *fakeExerciseTrainingRepo) Create(_ context.Context, et *domain.ExerciseTraining) (primitive.ObjectID, error) {
	et.ID = primitive.NewObjectID()
	r.items = append(r.items, *et)
	return et.ID, nil
}

func (r *fakeExerciseTrainingRepo) GetByTrainingID(_ context.Context, trainingID primitive.ObjectID) ([]domain.ExerciseTraining, error) {
	out := []domain.ExerciseTraining{}
	for _, et := range r.items {
		if et.TrainingID == trainingID {
			out = append(out, et)
		}
	}
	return out, nil
}

func (r *fakeExerciseTrainingRepo) DeleteByTrainingID(_ context.Context, trainingID primitive.ObjectID) (int64, error) {
	kept := r.items[:0]
	var n int64
	for _, et := range r.items {
		if et.TrainingID == trainingID {
			n++
			continue
		}
		kept = append(kept, et)
	}
	r.items = kept
	return n, nil
}

type sentNotification struct {
	UserID primitive.ObjectID
	domain.Notification
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (p *fakePublisher) Publish(_ context.Context, userID primitive.ObjectID, n domain.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, sentNotification{UserID: userID, Notification: n})
	return nil
}
