package cli

import (
	"alcyxob/fitcoach/internal/apiclient"
	"alcyxob/fitcoach/internal/config"
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/localstore"
	"alcyxob/fitcoach/internal/notify"
	"alcyxob/fitcoach/internal/session"
	"alcyxob/fitcoach/internal/workflow"
	"bufio"
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeAPI struct {
	routine   *domain.TrainingRoutine
	links     []domain.RoutineTraining
	library   []domain.Training
	defaults  []domain.ExerciseTraining
	user      domain.User
	token     string
	created   []domain.NewRoutineTraining
	unlinked  []primitive.ObjectID
	deleted   bool
	exercises []domain.Exercise
}

func (f *fakeAPI) Login(context.Context, string, string) (*apiclient.LoginResponse, error) {
	return &apiclient.LoginResponse{Token: f.token, User: f.user}, nil
}

func (f *fakeAPI) ListRoutines(context.Context) ([]domain.TrainingRoutine, error) {
	if f.routine == nil {
		return nil, nil
	}
	return []domain.TrainingRoutine{*f.routine}, nil
}

func (f *fakeAPI) GetRoutine(_ context.Context, id primitive.ObjectID) (*domain.TrainingRoutine, error) {
	if f.routine == nil || f.routine.ID != id {
		return nil, &apiclient.Error{StatusCode: http.StatusNotFound, Message: "routine not found"}
	}
	return f.routine, nil
}

func (f *fakeAPI) DeleteRoutine(context.Context, primitive.ObjectID) error {
	f.deleted = true
	return nil
}

func (f *fakeAPI) ListRoutineTrainings(context.Context, primitive.ObjectID) ([]domain.RoutineTraining, error) {
	return f.links, nil
}

func (f *fakeAPI) CreateRoutineTraining(_ context.Context, in domain.NewRoutineTraining) (*domain.RoutineTraining, error) {
	f.created = append(f.created, in)
	link := domain.RoutineTraining{ID: primitive.NewObjectID(), RoutineID: in.RoutineID, TrainingID: in.TrainingID, Order: in.Order}
	f.links = append(f.links, link)
	return &link, nil
}

func (f *fakeAPI) DeleteRoutineTraining(_ context.Context, id primitive.ObjectID) error {
	f.unlinked = append(f.unlinked, id)
	return nil
}

func (f *fakeAPI) ResolvedExercises(context.Context, primitive.ObjectID) ([]domain.ResolvedExercise, error) {
	load := 40.0
	return []domain.ResolvedExercise{
		{ExerciseName: "Supino reto", RepType: domain.RepTypeRepsLoad, Load: &load, Sets: 4, Reps: "8-12"},
		{ExerciseName: "Prancha", RepType: domain.RepTypeRepsTime, Sets: 3, Time: "45s"},
	}, nil
}

func (f *fakeAPI) LibraryTrainings(context.Context, primitive.ObjectID) ([]domain.Training, error) {
	return f.library, nil
}

func (f *fakeAPI) CreateTraining(_ context.Context, in domain.NewTraining) (*domain.Training, error) {
	t := domain.Training{ID: primitive.NewObjectID(), Name: in.Name, DayOfWeek: in.DayOfWeek, IsLibrary: in.IsLibrary}
	f.library = append(f.library, t)
	return &t, nil
}

func (f *fakeAPI) DeleteTraining(context.Context, primitive.ObjectID) error { return nil }

func (f *fakeAPI) ExerciseDefaults(context.Context, primitive.ObjectID) ([]domain.ExerciseTraining, error) {
	return f.defaults, nil
}

func (f *fakeAPI) ListExercises(context.Context) ([]domain.Exercise, error) {
	return f.exercises, nil
}

func (f *fakeAPI) CreateExercise(_ context.Context, in domain.NewExercise) (*domain.Exercise, error) {
	ex := domain.Exercise{ID: primitive.NewObjectID(), Name: in.Name}
	f.exercises = append(f.exercises, ex)
	return &ex, nil
}

func (f *fakeAPI) AddExerciseDefault(_ context.Context, trainingID primitive.ObjectID, in domain.NewExerciseTraining) (*domain.ExerciseTraining, error) {
	return &domain.ExerciseTraining{TrainingID: trainingID, ExerciseID: in.ExerciseID}, nil
}

type harness struct {
	app   *App
	api   *fakeAPI
	out   *bytes.Buffer
	store localstore.Store
}

func newHarness(input string) *harness {
	h := &harness{api: &fakeAPI{}, out: &bytes.Buffer{}, store: localstore.NewMemoryStore()}
	h.app = &App{
		cfg:   config.ClientConfig{NotificationLogSize: 10},
		out:   h.out,
		in:    bufio.NewReader(strings.NewReader(input)),
		store: h.store,
		api:   h.api,
	}
	return h
}

func (h *harness) run(args ...string) error {
	cmd := NewRootCmd(h.app)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func (h *harness) signIn(t *testing.T, role domain.Role) domain.Session {
	t.Helper()
	sess := domain.Session{UserID: primitive.NewObjectID(), Name: "Carla", UserType: role, Token: "t", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, session.NewStore(h.store).Save(context.Background(), sess))
	return sess
}

func (h *harness) withRoutine(rt domain.RoutineType) *domain.TrainingRoutine {
	h.api.routine = &domain.TrainingRoutine{ID: primitive.NewObjectID(), Goal: "Hipertrofia", StudentName: "Rui", RoutineType: rt}
	return h.api.routine
}

func TestParseSetFlag(t *testing.T) {
	id := primitive.NewObjectID()
	tests := []struct {
		in      string
		want    setFlag
		wantErr bool
	}{
		{in: id.Hex() + "=reps-load:22,5", want: setFlag{ExerciseID: id, RepType: domain.RepTypeRepsLoad, Load: "22,5"}},
		{in: id.Hex() + "=reps-time", want: setFlag{ExerciseID: id, RepType: domain.RepTypeRepsTime}},
		{in: id.Hex() + "=:30", want: setFlag{ExerciseID: id, Load: "30"}},
		{in: id.Hex(), wantErr: true},
		{in: "abc=reps-load", wantErr: true},
		{in: id.Hex() + "=burpees", wantErr: true},
		{in: id.Hex() + "=reps-load:heavy", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSetFlag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLoad(t *testing.T) {
	v := 32.5
	w := 40.0
	assert.Equal(t, "-", formatLoad(nil))
	assert.Equal(t, "32.5 kg", formatLoad(&v))
	assert.Equal(t, "40 kg", formatLoad(&w))
}

func TestLogin_SavesSession(t *testing.T) {
	h := newHarness("")
	h.api.user = domain.User{ID: primitive.NewObjectID(), Name: "Carla", Role: domain.RoleTrainer}
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}).SignedString([]byte("k"))
	require.NoError(t, err)
	h.api.token = token

	require.NoError(t, h.run("login", "-e", "carla@example.com", "-p", "secret"))
	assert.Contains(t, h.out.String(), "Signed in as Carla (trainer)")

	sess, err := session.NewStore(h.store).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, h.api.user.ID, sess.UserID)
	assert.True(t, sess.ExpiresAt.Equal(exp))

	require.NoError(t, h.run("logout"))
	_, err = session.NewStore(h.store).Load(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestWhoami(t *testing.T) {
	h := newHarness("")
	require.NoError(t, h.run("whoami"))
	assert.Contains(t, h.out.String(), "Not signed in")

	h.signIn(t, domain.RoleTrainer)
	h.out.Reset()
	require.NoError(t, h.run("whoami"))
	assert.Contains(t, h.out.String(), "Carla")
}

func TestRoutines_RequiresSession(t *testing.T) {
	h := newHarness("")
	err := h.run("routines")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coach login")
}

func TestRoutineShow(t *testing.T) {
	h := newHarness("")
	h.signIn(t, domain.RoleTrainer)
	rt := h.withRoutine(domain.RoutineTypeWeekday)
	linked := domain.Training{ID: primitive.NewObjectID(), Name: "Superiores A"}
	free := domain.Training{ID: primitive.NewObjectID(), Name: "Inferiores"}
	h.api.library = []domain.Training{linked, free}
	h.api.links = []domain.RoutineTraining{{ID: primitive.NewObjectID(), TrainingID: linked.ID, TrainingName: linked.Name, DayOfWeek: "Segunda", Order: 1}}

	require.NoError(t, h.run("routine", "show", rt.ID.Hex()))
	out := h.out.String()
	assert.Contains(t, out, "HIPERTROFIA")
	assert.Contains(t, out, "1. Superiores A [Segunda]")
	assert.Contains(t, out, free.ID.Hex()+"  Inferiores")
	assert.Contains(t, out, "Superiores A (linked)")

	err := h.run("routine", "show", primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRoutineLink_AppliesOverrides(t *testing.T) {
	h := newHarness("")
	h.signIn(t, domain.RoleTrainer)
	rt := h.withRoutine(domain.RoutineTypeWeekday)
	training := domain.Training{ID: primitive.NewObjectID(), Name: "Superiores A"}
	h.api.library = []domain.Training{training}
	bench, plank := primitive.NewObjectID(), primitive.NewObjectID()
	h.api.defaults = []domain.ExerciseTraining{
		{ExerciseID: bench, RepType: domain.RepTypeRepsLoad, Sets: 4},
		{ExerciseID: plank, RepType: domain.RepTypeRepsTime, Sets: 3},
	}

	require.NoError(t, h.run("routine", "link", rt.ID.Hex(), training.ID.Hex(),
		"--set", bench.Hex()+"=reps-load-time:22,5",
		"--set", plank.Hex()+"=reps-time:10"))

	require.Len(t, h.api.created, 1)
	in := h.api.created[0]
	assert.Equal(t, 1, in.Order)
	assert.True(t, in.IsActive)
	require.Len(t, in.ExerciseSettings, 2)
	assert.Equal(t, domain.RepTypeRepsLoadTime, in.ExerciseSettings[0].RepType)
	require.NotNil(t, in.ExerciseSettings[0].Load)
	assert.Equal(t, 22.5, *in.ExerciseSettings[0].Load)
	assert.Nil(t, in.ExerciseSettings[1].Load, "reps-time never carries a load")
	assert.Contains(t, h.out.String(), "Treino vinculado à rotina.")
}

func TestRoutineLink_UnknownExercise(t *testing.T) {
	h := newHarness("")
	h.signIn(t, domain.RoleTrainer)
	rt := h.withRoutine(domain.RoutineTypeWeekday)
	training := domain.Training{ID: primitive.NewObjectID(), Name: "A"}
	h.api.library = []domain.Training{training}

	err := h.run("routine", "link", rt.ID.Hex(), training.ID.Hex(), "--set", primitive.NewObjectID().Hex()+"=reps-load:10")
	require.Error(t, err)
	assert.Empty(t, h.api.created)
}

func TestRoutineNewTraining_Numeric(t *testing.T) {
	h := newHarness("")
	h.signIn(t, domain.RoleTrainer)
	rt := h.withRoutine(domain.RoutineTypeNumeric)

	err := h.run("routine", "new-training", rt.ID.Hex(), "--name", "Full body")
	assert.ErrorIs(t, err, workflow.ErrSequenceRequired)
	assert.Contains(t, h.out.String(), "Informe o número do treino.")

	require.NoError(t, h.run("routine", "new-training", rt.ID.Hex(), "--name", "Full body", "--number", "3"))
	require.Len(t, h.api.library, 1)
	assert.Equal(t, "Treino 3", h.api.library[0].DayOfWeek)
	require.Len(t, h.api.created, 1)
	assert.Empty(t, h.api.created[0].ExerciseSettings)
}

func TestRoutineUnlink_Declined(t *testing.T) {
	h := newHarness("n\n")
	h.signIn(t, domain.RoleTrainer)
	rt := h.withRoutine(domain.RoutineTypeWeekday)
	link := primitive.NewObjectID()

	err := h.run("routine", "unlink", rt.ID.Hex(), link.Hex())
	assert.ErrorIs(t, err, workflow.ErrCanceled)
	assert.Empty(t, h.api.unlinked)

	require.NoError(t, h.run("routine", "unlink", rt.ID.Hex(), link.Hex(), "--yes"))
	assert.Equal(t, []primitive.ObjectID{link}, h.api.unlinked)
}

func TestRoutineDelete_SetsActiveTab(t *testing.T) {
	h := newHarness("s\n")
	h.signIn(t, domain.RoleTrainer)
	rt := h.withRoutine(domain.RoutineTypeWeekday)

	require.NoError(t, h.run("routine", "delete", rt.ID.Hex()))
	assert.True(t, h.api.deleted)
	tab, err := session.NewStore(h.store).ActiveTab(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workflow.TabTrainings, tab)
	assert.Contains(t, h.out.String(), "Voltando")
}

func TestRoutineExercises(t *testing.T) {
	h := newHarness("")
	h.signIn(t, domain.RoleStudent)

	require.NoError(t, h.run("routine", "exercises", primitive.NewObjectID().Hex()))
	out := h.out.String()
	assert.Contains(t, out, "1. Supino reto")
	assert.Contains(t, out, "40 kg")
	assert.NotContains(t, out[strings.Index(out, "2. Prancha"):], "Load")
}

func TestLibraryImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[training]]
name = "Superiores A"

  [[training.exercise]]
  name = "Supino reto"
  rep_type = "reps-load"
  sets = 4
`), 0o600))

	h := newHarness("")
	require.NoError(t, h.run("library", "import", path, "--dry-run"))
	assert.Contains(t, h.out.String(), "1 trainings are valid")

	h.signIn(t, domain.RoleStudent)
	err := h.run("library", "import", path)
	require.Error(t, err)

	h.signIn(t, domain.RoleTrainer)
	h.out.Reset()
	require.NoError(t, h.run("library", "import", path))
	assert.Contains(t, h.out.String(), "+ exercise Supino reto")
	assert.Contains(t, h.out.String(), "Imported 1 trainings")
}

func TestNotificationsLog(t *testing.T) {
	h := newHarness("")
	entries := notify.NewLog(h.store, 10)
	_, err := entries.Append(context.Background(), domain.Notification{ID: "1", Title: "Treino vinculado", Body: "Superiores A"})
	require.NoError(t, err)

	require.NoError(t, h.run("notifications", "log"))
	assert.Contains(t, h.out.String(), "Treino vinculado")

	require.NoError(t, h.run("notifications", "log", "--clear"))
	h.out.Reset()
	require.NoError(t, h.run("notifications", "log"))
	assert.Contains(t, h.out.String(), "No notifications")
}
