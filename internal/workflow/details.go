package workflow

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// Stage is the modal step the screen is in.
type Stage int

const (
	StageIdle Stage = iota
	StagePicker
	StageConfigure
	StageCreate
)

func (s Stage) String() string {
	switch s {
	case StagePicker:
		return "picker"
	case StageConfigure:
		return "configure"
	case StageCreate:
		return "create"
	}
	return "idle"
}

// PickerOption is one library training offered for linking.
type PickerOption struct {
	Training domain.Training
	Disabled bool
}

// State is a snapshot of the screen.
type State struct {
	Loading  bool
	NotFound bool
	LoadErr  error

	Routine *domain.TrainingRoutine
	Links   []domain.RoutineTraining
	Library []domain.Training

	Stage    Stage
	Selected *domain.Training
	Rows     []ConfigRow
	Draft    Draft
	Busy     bool
}

// RoutineDetails is the controller of one routine screen. Responses that
// complete after Unmount are dropped.
type RoutineDetails struct {
	env       Env
	routineID primitive.ObjectID

	mu         sync.Mutex
	gen        uint64
	linksSeq   uint64
	librarySeq uint64
	st         State
}

func NewRoutineDetails(env Env, routineID primitive.ObjectID) *RoutineDetails {
	return &RoutineDetails{
		env:       env,
		routineID: routineID,
		st: State{
			Links:   []domain.RoutineTraining{},
			Library: []domain.Training{},
		},
	}
}

// Snapshot returns a copy of the current state.
func (d *RoutineDetails) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.st
	st.Links = append([]domain.RoutineTraining{}, d.st.Links...)
	st.Library = append([]domain.Training{}, d.st.Library...)
	if d.st.Rows != nil {
		st.Rows = append([]ConfigRow{}, d.st.Rows...)
	}
	return st
}

// Unmount invalidates every in-flight request.
func (d *RoutineDetails) Unmount() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
}

func (d *RoutineDetails) generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// apply runs fn under the lock if gen is still current.
func (d *RoutineDetails) apply(gen uint64, fn func(st *State)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return false
	}
	fn(&d.st)
	return true
}

// acquire marks a mutation in flight and returns the generation it runs under.
func (d *RoutineDetails) acquire() (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.st.Busy {
		return 0, ErrBusy
	}
	d.st.Busy = true
	return d.gen, nil
}

// release clears the busy flag and applies fn if gen is still current.
func (d *RoutineDetails) release(gen uint64, fn func(st *State)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.Busy = false
	if gen != d.gen {
		return false
	}
	if fn != nil {
		fn(&d.st)
	}
	return true
}

// === Loading ===

// Load fetches the routine, then its links and the trainer's library in parallel.
func (d *RoutineDetails) Load(ctx context.Context) error {
	d.mu.Lock()
	gen := d.gen
	d.st.Loading = true
	d.st.NotFound = false
	d.st.LoadErr = nil
	d.mu.Unlock()

	routine, err := d.env.API.GetRoutine(ctx, d.routineID)
	if err != nil {
		notFound := errors.Is(err, domain.ErrNotFound)
		d.apply(gen, func(st *State) {
			st.Loading = false
			st.NotFound = notFound
			st.LoadErr = err
			st.Routine = nil
		})
		if notFound {
			return ErrRoutineNotFound
		}
		log.Printf("ERROR: Failed to load routine %s: %v", d.routineID.Hex(), err)
		return err
	}
	if !d.apply(gen, func(st *State) { st.Routine = routine }) {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.RefreshLinks(gctx)
		return nil
	})
	if d.hasLibrary() {
		g.Go(func() error {
			d.RefreshLibrary(gctx)
			return nil
		})
	}
	_ = g.Wait()

	d.apply(gen, func(st *State) { st.Loading = false })
	return nil
}

// hasLibrary reports whether the identity owns a training library. Students
// never do.
func (d *RoutineDetails) hasLibrary() bool {
	return d.env.UserID != primitive.NilObjectID && d.env.UserType != domain.RoleStudent
}

// RefreshLinks reloads the routine's links. Failures leave an empty list.
func (d *RoutineDetails) RefreshLinks(ctx context.Context) {
	d.mu.Lock()
	gen := d.gen
	d.linksSeq++
	seq := d.linksSeq
	d.mu.Unlock()

	links, err := d.env.API.ListRoutineTrainings(ctx, d.routineID)
	if err != nil {
		log.Printf("WARN: Failed to load trainings of routine %s: %v", d.routineID.Hex(), err)
		links = nil
	}
	if links == nil {
		links = []domain.RoutineTraining{}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen == d.gen && seq == d.linksSeq {
		d.st.Links = links
	}
}

// RefreshLibrary reloads the trainer's library. Failures leave an empty list.
func (d *RoutineDetails) RefreshLibrary(ctx context.Context) {
	d.mu.Lock()
	gen := d.gen
	d.librarySeq++
	seq := d.librarySeq
	d.mu.Unlock()

	library, err := d.env.API.LibraryTrainings(ctx, d.env.UserID)
	if err != nil {
		log.Printf("WARN: Failed to load training library of %s: %v", d.env.UserID.Hex(), err)
		library = nil
	}
	if library == nil {
		library = []domain.Training{}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen == d.gen && seq == d.librarySeq {
		d.st.Library = library
	}
}

// BackToHome is the recovery action of the not-found state.
func (d *RoutineDetails) BackToHome() {
	d.env.UI.NavigateBack()
}

// === Attach existing training ===

// OpenPicker shows the library picker.
func (d *RoutineDetails) OpenPicker() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.Stage = StagePicker
}

// OpenCreate shows the new-training form.
func (d *RoutineDetails) OpenCreate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.Stage = StageCreate
}

// Cancel closes any modal step and drops its transient state.
func (d *RoutineDetails) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clearTransient(&d.st)
}

func clearTransient(st *State) {
	st.Stage = StageIdle
	st.Selected = nil
	st.Rows = nil
	st.Draft = Draft{}
}

// PickerOptions lists the library with already-linked trainings disabled.
func (d *RoutineDetails) PickerOptions() []PickerOption {
	d.mu.Lock()
	defer d.mu.Unlock()
	options := make([]PickerOption, 0, len(d.st.Library))
	for _, t := range d.st.Library {
		options = append(options, PickerOption{Training: t, Disabled: linked(d.st.Links, t.ID)})
	}
	return options
}

func linked(links []domain.RoutineTraining, trainingID primitive.ObjectID) bool {
	for _, l := range links {
		if l.TrainingID == trainingID {
			return true
		}
	}
	return false
}

// SelectTraining moves a library training into the configuration step.
// Selecting an already linked training changes nothing.
func (d *RoutineDetails) SelectTraining(ctx context.Context, trainingID primitive.ObjectID) error {
	d.mu.Lock()
	if linked(d.st.Links, trainingID) {
		d.mu.Unlock()
		return ErrAlreadyLinked
	}
	var training *domain.Training
	for i := range d.st.Library {
		if d.st.Library[i].ID == trainingID {
			t := d.st.Library[i]
			training = &t
			break
		}
	}
	d.mu.Unlock()
	if training == nil {
		return ErrUnknownTraining
	}

	gen, err := d.acquire()
	if err != nil {
		return err
	}

	defaults, err := d.env.API.ExerciseDefaults(ctx, trainingID)
	if err != nil {
		if d.release(gen, nil) {
			d.env.UI.Alert("Erro", userMessage(err, "Não foi possível carregar os exercícios do treino."))
		}
		return err
	}

	d.release(gen, func(st *State) {
		st.Stage = StageConfigure
		st.Selected = training
		st.Rows = newConfigRows(defaults)
	})
	return nil
}

// === Configure exercise settings ===

// SetRepType edits the rep type of row i. An empty type clears the override.
func (d *RoutineDetails) SetRepType(i int, t domain.RepType) error {
	if t != "" && !t.IsValid() {
		return ErrInvalidRepType
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.st.Rows) {
		return ErrRowOutOfRange
	}
	d.st.Rows[i].RepType = t
	return nil
}

// SetLoadInput edits the load text of row i.
func (d *RoutineDetails) SetLoadInput(i int, input string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.st.Rows) {
		return ErrRowOutOfRange
	}
	d.st.Rows[i].LoadInput = input
	return nil
}

// LinkTrainingWithLoads creates the link for the selected training with the
// configured overrides. On failure the rows stay for a retry.
func (d *RoutineDetails) LinkTrainingWithLoads(ctx context.Context) error {
	gen, err := d.acquire()
	if err != nil {
		return err
	}

	d.mu.Lock()
	selected := d.st.Selected
	rows := append([]ConfigRow{}, d.st.Rows...)
	order := len(d.st.Links) + 1
	d.mu.Unlock()
	if selected == nil {
		d.release(gen, nil)
		return ErrNothingSelected
	}

	_, err = d.env.API.CreateRoutineTraining(ctx, domain.NewRoutineTraining{
		RoutineID:        d.routineID,
		TrainingID:       selected.ID,
		Order:            order,
		IsActive:         true,
		ExerciseSettings: BuildExerciseSettings(rows),
	})
	if err != nil {
		if d.release(gen, nil) {
			d.env.UI.Alert("Erro", userMessage(err, "Não foi possível vincular o treino à rotina."))
		}
		return err
	}

	if !d.release(gen, clearTransient) {
		return nil
	}
	d.env.UI.Alert("Sucesso", "Treino vinculado à rotina.")
	d.RefreshLinks(ctx)
	return nil
}

// === Create new training and link ===

// SetDraft replaces the new-training form.
func (d *RoutineDetails) SetDraft(draft Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.Draft = draft
}

// CreateAndLinkTraining validates the draft, creates a library training and
// links it with no overrides. If the link fails the new training is deleted
// again and the draft is kept.
func (d *RoutineDetails) CreateAndLinkTraining(ctx context.Context) error {
	d.mu.Lock()
	routine := d.st.Routine
	draft := d.st.Draft
	d.mu.Unlock()
	if routine == nil {
		return ErrNotLoaded
	}

	dayOfWeek, err := draft.dayOfWeek(routine.RoutineType)
	if err != nil {
		d.env.UI.Alert("Atenção", validationMessage(err))
		return err
	}

	gen, err := d.acquire()
	if err != nil {
		return err
	}

	training, err := d.env.API.CreateTraining(ctx, domain.NewTraining{
		Name:      strings.TrimSpace(draft.Name),
		Notes:     strings.TrimSpace(draft.Notes),
		DayOfWeek: dayOfWeek,
		TrainerID: d.env.UserID,
		IsLibrary: true,
	})
	if err != nil {
		if d.release(gen, nil) {
			d.env.UI.Alert("Erro", userMessage(err, "Não foi possível criar o treino."))
		}
		return err
	}

	d.mu.Lock()
	order := len(d.st.Links) + 1
	d.mu.Unlock()

	_, err = d.env.API.CreateRoutineTraining(ctx, domain.NewRoutineTraining{
		RoutineID:  d.routineID,
		TrainingID: training.ID,
		Order:      order,
		IsActive:   true,
	})
	if err != nil {
		if delErr := d.env.API.DeleteTraining(context.WithoutCancel(ctx), training.ID); delErr != nil {
			log.Printf("ERROR: Training %s was created but not linked and could not be removed: %v", training.ID.Hex(), delErr)
		}
		if d.release(gen, nil) {
			d.env.UI.Alert("Erro", userMessage(err, "Não foi possível vincular o novo treino à rotina."))
		}
		return err
	}

	if !d.release(gen, clearTransient) {
		return nil
	}
	d.env.UI.Alert("Sucesso", "Treino criado e vinculado à rotina.")
	d.RefreshLinks(ctx)
	d.RefreshLibrary(ctx)
	return nil
}

// === Detach and delete ===

// RemoveTraining unlinks a training after confirmation. The training stays
// in the library.
func (d *RoutineDetails) RemoveTraining(ctx context.Context, linkID primitive.ObjectID) error {
	gen, err := d.acquire()
	if err != nil {
		return err
	}
	if !d.env.UI.Confirm("Remover treino", "Deseja remover este treino da rotina?") {
		d.release(gen, nil)
		return ErrCanceled
	}

	if err := d.env.API.DeleteRoutineTraining(ctx, linkID); err != nil {
		if d.release(gen, nil) {
			d.env.UI.Alert("Erro", userMessage(err, "Não foi possível remover o treino da rotina."))
		}
		return err
	}

	if !d.release(gen, nil) {
		return nil
	}
	d.RefreshLinks(ctx)
	return nil
}

// DeleteRoutine deletes the routine after confirmation, then points the
// previous screen at the trainings tab and navigates back.
func (d *RoutineDetails) DeleteRoutine(ctx context.Context) error {
	gen, err := d.acquire()
	if err != nil {
		return err
	}
	if !d.env.UI.Confirm("Excluir rotina", "Esta ação não pode ser desfeita. Deseja excluir a rotina?") {
		d.release(gen, nil)
		return ErrCanceled
	}

	if err := d.env.API.DeleteRoutine(ctx, d.routineID); err != nil {
		if d.release(gen, nil) {
			d.env.UI.Alert("Erro", userMessage(err, "Não foi possível excluir a rotina."))
		}
		return err
	}

	if !d.release(gen, nil) {
		return nil
	}
	if err := d.env.Prefs.SetActiveTab(ctx, TabTrainings); err != nil {
		log.Printf("WARN: Failed to store active tab: %v", err)
	}
	d.env.UI.NavigateBack()
	return nil
}

// === Resolved exercises ===

// ResolvedExercises returns the effective exercises of a link. An empty
// result is an empty slice.
func (d *RoutineDetails) ResolvedExercises(ctx context.Context, linkID primitive.ObjectID) ([]domain.ResolvedExercise, error) {
	gen := d.generation()
	rows, err := d.env.API.ResolvedExercises(ctx, linkID)
	if err != nil {
		if gen == d.generation() {
			d.env.UI.Alert("Erro", userMessage(err, "Não foi possível carregar os exercícios."))
		}
		return nil, err
	}
	if rows == nil {
		rows = []domain.ResolvedExercise{}
	}
	return rows, nil
}
