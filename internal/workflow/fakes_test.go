package workflow

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recorder collects ordered events from the API, UI and Prefs fakes.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.events...)
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, e := range r.list() {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// fakeAPI behaves like a tiny server: links created through it show up in
// the next ListRoutineTrainings.
type fakeAPI struct {
	rec *recorder

	mu       sync.Mutex
	routine  *domain.TrainingRoutine
	links    []domain.RoutineTraining
	library  []domain.Training
	defaults map[primitive.ObjectID][]domain.ExerciseTraining
	resolved []domain.ResolvedExercise

	getRoutineErr     error
	listLinksErr      error
	libraryErr        error
	defaultsErr       error
	createTrainingErr error
	createLinkErr     error
	deleteLinkErr     error
	deleteRoutineErr  error
	deleteTrainingErr error

	getRoutineGate chan struct{}
	createLinkGate chan struct{}

	createdTrainings []domain.NewTraining
	createdLinks     []domain.NewRoutineTraining
	deletedTrainings []primitive.ObjectID
}

func newFakeAPI(rec *recorder, routine *domain.TrainingRoutine) *fakeAPI {
	return &fakeAPI{rec: rec, routine: routine, defaults: map[primitive.ObjectID][]domain.ExerciseTraining{}}
}

func (f *fakeAPI) GetRoutine(_ context.Context, id primitive.ObjectID) (*domain.TrainingRoutine, error) {
	f.rec.add("api:get-routine")
	f.mu.Lock()
	gate := f.getRoutineGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getRoutineErr != nil {
		return nil, f.getRoutineErr
	}
	r := *f.routine
	return &r, nil
}

func (f *fakeAPI) DeleteRoutine(_ context.Context, id primitive.ObjectID) error {
	f.rec.add("api:delete-routine")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteRoutineErr
}

func (f *fakeAPI) ListRoutineTrainings(_ context.Context, routineID primitive.ObjectID) ([]domain.RoutineTraining, error) {
	f.rec.add("api:list-links")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listLinksErr != nil {
		return nil, f.listLinksErr
	}
	return append([]domain.RoutineTraining{}, f.links...), nil
}

func (f *fakeAPI) CreateRoutineTraining(_ context.Context, in domain.NewRoutineTraining) (*domain.RoutineTraining, error) {
	f.rec.add("api:create-link")
	f.mu.Lock()
	gate := f.createLinkGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdLinks = append(f.createdLinks, in)
	if f.createLinkErr != nil {
		return nil, f.createLinkErr
	}
	link := domain.RoutineTraining{
		ID:               primitive.NewObjectID(),
		RoutineID:        in.RoutineID,
		TrainingID:       in.TrainingID,
		Order:            in.Order,
		IsActive:         in.IsActive,
		ExerciseSettings: in.ExerciseSettings,
	}
	f.links = append(f.links, link)
	return &link, nil
}

func (f *fakeAPI) DeleteRoutineTraining(_ context.Context, id primitive.ObjectID) error {
	f.rec.add("api:delete-link")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteLinkErr != nil {
		return f.deleteLinkErr
	}
	for i, l := range f.links {
		if l.ID == id {
			f.links = append(f.links[:i], f.links[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) ResolvedExercises(_ context.Context, linkID primitive.ObjectID) ([]domain.ResolvedExercise, error) {
	f.rec.add("api:resolved")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved, nil
}

func (f *fakeAPI) LibraryTrainings(_ context.Context, trainerID primitive.ObjectID) ([]domain.Training, error) {
	f.rec.add("api:library")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.libraryErr != nil {
		return nil, f.libraryErr
	}
	return append([]domain.Training{}, f.library...), nil
}

func (f *fakeAPI) CreateTraining(_ context.Context, in domain.NewTraining) (*domain.Training, error) {
	f.rec.add("api:create-training")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdTrainings = append(f.createdTrainings, in)
	if f.createTrainingErr != nil {
		return nil, f.createTrainingErr
	}
	t := domain.Training{ID: primitive.NewObjectID(), Name: in.Name, Notes: in.Notes, DayOfWeek: in.DayOfWeek, TrainerID: in.TrainerID, IsLibrary: in.IsLibrary}
	f.library = append(f.library, t)
	return &t, nil
}

func (f *fakeAPI) DeleteTraining(_ context.Context, id primitive.ObjectID) error {
	f.rec.add("api:delete-training")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedTrainings = append(f.deletedTrainings, id)
	if f.deleteTrainingErr != nil {
		return f.deleteTrainingErr
	}
	for i, t := range f.library {
		if t.ID == id {
			f.library = append(f.library[:i], f.library[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) ExerciseDefaults(_ context.Context, trainingID primitive.ObjectID) ([]domain.ExerciseTraining, error) {
	f.rec.add("api:defaults")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.defaultsErr != nil {
		return nil, f.defaultsErr
	}
	return f.defaults[trainingID], nil
}

type fakeUI struct {
	rec     *recorder
	confirm bool

	mu     sync.Mutex
	alerts []string
}

func (u *fakeUI) Alert(title, message string) {
	u.rec.add("ui:alert")
	u.mu.Lock()
	defer u.mu.Unlock()
	u.alerts = append(u.alerts, title+": "+message)
}

func (u *fakeUI) Confirm(title, message string) bool {
	u.rec.add("ui:confirm")
	return u.confirm
}

func (u *fakeUI) NavigateBack() {
	u.rec.add("ui:navigate-back")
}

func (u *fakeUI) lastAlert() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.alerts) == 0 {
		return ""
	}
	return u.alerts[len(u.alerts)-1]
}

type fakePrefs struct {
	rec *recorder
}

func (p *fakePrefs) SetActiveTab(_ context.Context, tab string) error {
	p.rec.add("prefs:tab=%s", tab)
	return nil
}
