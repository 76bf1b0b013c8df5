package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/service"
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(userID primitive.ObjectID, role domain.Role, ttl time.Duration) string {
	claims := &service.Claims{
		UserID: userID.Hex(),
		Role:   role,
		Name:   "Test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		panic(err)
	}
	return token
}

type fakeAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (f *fakeAuthService) Register(_ context.Context, name, email, _ string, role domain.Role) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: primitive.NewObjectID(), Name: name, Email: email, Role: role}, nil
}

func (f *fakeAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return f.token, f.user, f.err
}

func (f *fakeAuthService) GetUser(context.Context, string) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeAuthService) GetJWTSecret() string { return testSecret }

type fakeRoutineService struct {
	routines map[primitive.ObjectID]domain.TrainingRoutine
	links    []domain.RoutineTraining
	created  *domain.NewRoutineTraining
	err      error
	lastRole domain.Role
}

func (f *fakeRoutineService) CreateRoutine(_ context.Context, trainerID primitive.ObjectID, in domain.NewRoutine) (*domain.TrainingRoutine, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TrainingRoutine{ID: primitive.NewObjectID(), TrainerID: trainerID, StudentID: in.StudentID, Goal: in.Goal}, nil
}

func (f *fakeRoutineService) GetRoutine(_ context.Context, _ primitive.ObjectID, id primitive.ObjectID) (*domain.TrainingRoutine, error) {
	if f.err != nil {
		return nil, f.err
	}
	rt, ok := f.routines[id]
	if !ok {
		return nil, service.ErrRoutineNotFound
	}
	return &rt, nil
}

func (f *fakeRoutineService) ListRoutines(_ context.Context, _ primitive.ObjectID, role domain.Role) ([]domain.TrainingRoutine, error) {
	f.lastRole = role
	return nil, f.err
}

func (f *fakeRoutineService) DeleteRoutine(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return f.err
}

func (f *fakeRoutineService) ListRoutineTrainings(context.Context, primitive.ObjectID, primitive.ObjectID) ([]domain.RoutineTraining, error) {
	return f.links, f.err
}

func (f *fakeRoutineService) CreateRoutineTraining(_ context.Context, _ primitive.ObjectID, in domain.NewRoutineTraining) (*domain.RoutineTraining, error) {
	f.created = &in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RoutineTraining{ID: primitive.NewObjectID(), RoutineID: in.RoutineID, TrainingID: in.TrainingID, Order: in.Order}, nil
}

func (f *fakeRoutineService) DeleteRoutineTraining(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return f.err
}

func (f *fakeRoutineService) ResolveExercises(context.Context, primitive.ObjectID, primitive.ObjectID) ([]domain.ResolvedExercise, error) {
	return nil, f.err
}

type fakeTrainingService struct {
	library []domain.Training
	err     error
}

func (f *fakeTrainingService) CreateTraining(_ context.Context, trainerID primitive.ObjectID, in domain.NewTraining) (*domain.Training, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Training{ID: primitive.NewObjectID(), Name: in.Name, TrainerID: trainerID, IsLibrary: in.IsLibrary}, nil
}

func (f *fakeTrainingService) GetTraining(context.Context, primitive.ObjectID) (*domain.Training, error) {
	return nil, service.ErrTrainingNotFound
}

func (f *fakeTrainingService) GetLibrary(context.Context, primitive.ObjectID) ([]domain.Training, error) {
	return f.library, f.err
}

func (f *fakeTrainingService) DeleteTraining(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return f.err
}

func (f *fakeTrainingService) GetExerciseDefaults(context.Context, primitive.ObjectID) ([]domain.ExerciseTraining, error) {
	return nil, f.err
}

func (f *fakeTrainingService) AddExerciseDefault(context.Context, primitive.ObjectID, primitive.ObjectID, domain.NewExerciseTraining) (*domain.ExerciseTraining, error) {
	return nil, f.err
}

type fakeExerciseService struct {
	err error
}

func (f *fakeExerciseService) CreateExercise(_ context.Context, trainerID primitive.ObjectID, in domain.NewExercise) (*domain.Exercise, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Exercise{ID: primitive.NewObjectID(), TrainerID: trainerID, Name: in.Name}, nil
}

func (f *fakeExerciseService) GetExerciseByID(context.Context, primitive.ObjectID) (*domain.Exercise, error) {
	return nil, f.err
}

func (f *fakeExerciseService) GetExercisesByTrainer(context.Context, primitive.ObjectID) ([]domain.Exercise, error) {
	return nil, f.err
}

func (f *fakeExerciseService) DeleteExercise(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return f.err
}

func (f *fakeExerciseService) RequestMediaUpload(_ context.Context, trainerID, exerciseID primitive.ObjectID, _ string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "https://s3.local/upload", "exercises/" + trainerID.Hex() + "/" + exerciseID.Hex() + "/x", nil
}

func (f *fakeExerciseService) GetMediaURL(context.Context, primitive.ObjectID) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://s3.local/get", nil
}

type fakeTrainerService struct {
	err error
}

func (f *fakeTrainerService) AddStudentByEmail(_ context.Context, trainerID primitive.ObjectID, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: primitive.NewObjectID(), Email: email, Role: domain.RoleStudent, TrainerID: &trainerID}, nil
}

func (f *fakeTrainerService) GetStudents(context.Context, primitive.ObjectID) ([]domain.User, error) {
	return nil, f.err
}
