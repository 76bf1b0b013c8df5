package apiclient

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginResponse is returned by Login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// MediaUpload is the presigned PUT for an exercise video.
type MediaUpload struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

// --- Auth ---

func (c *Client) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	in := map[string]string{"name": name, "email": email, "password": password, "role": string(role)}
	var user domain.User
	if err := c.send(ctx, http.MethodPost, "/auth/register", in, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	in := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.send(ctx, http.MethodPost, "/auth/login", in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Students ---

func (c *Client) AddStudent(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/trainer/students", map[string]string{"email": email}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListStudents(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, http.MethodGet, "/trainer/students", nil, &users)
	return users, err
}

// --- Routines ---

func (c *Client) ListRoutines(ctx context.Context) ([]domain.TrainingRoutine, error) {
	var routines []domain.TrainingRoutine
	err := c.do(ctx, http.MethodGet, "/routines", nil, &routines)
	return routines, err
}

func (c *Client) CreateRoutine(ctx context.Context, in domain.NewRoutine) (*domain.TrainingRoutine, error) {
	var routine domain.TrainingRoutine
	if err := c.do(ctx, http.MethodPost, "/routines", in, &routine); err != nil {
		return nil, err
	}
	return &routine, nil
}

func (c *Client) GetRoutine(ctx context.Context, id primitive.ObjectID) (*domain.TrainingRoutine, error) {
	var routine domain.TrainingRoutine
	if err := c.do(ctx, http.MethodGet, "/routines/"+id.Hex(), nil, &routine); err != nil {
		return nil, err
	}
	return &routine, nil
}

func (c *Client) DeleteRoutine(ctx context.Context, id primitive.ObjectID) error {
	return c.do(ctx, http.MethodDelete, "/routines/"+id.Hex(), nil, nil)
}

// --- Routine trainings ---

func (c *Client) ListRoutineTrainings(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineTraining, error) {
	var links []domain.RoutineTraining
	err := c.do(ctx, http.MethodGet, "/routines/"+routineID.Hex()+"/trainings", nil, &links)
	return links, err
}

func (c *Client) CreateRoutineTraining(ctx context.Context, in domain.NewRoutineTraining) (*domain.RoutineTraining, error) {
	var link domain.RoutineTraining
	if err := c.do(ctx, http.MethodPost, "/routine-trainings", in, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) DeleteRoutineTraining(ctx context.Context, id primitive.ObjectID) error {
	return c.do(ctx, http.MethodDelete, "/routine-trainings/"+id.Hex(), nil, nil)
}

func (c *Client) ResolvedExercises(ctx context.Context, linkID primitive.ObjectID) ([]domain.ResolvedExercise, error) {
	var rows []domain.ResolvedExercise
	err := c.do(ctx, http.MethodGet, "/routine-trainings/"+linkID.Hex()+"/exercises", nil, &rows)
	return rows, err
}

// --- Trainings ---

func (c *Client) LibraryTrainings(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Training, error) {
	var trainings []domain.Training
	err := c.do(ctx, http.MethodGet, "/trainers/"+trainerID.Hex()+"/trainings", nil, &trainings)
	return trainings, err
}

func (c *Client) CreateTraining(ctx context.Context, in domain.NewTraining) (*domain.Training, error) {
	var training domain.Training
	if err := c.do(ctx, http.MethodPost, "/trainings", in, &training); err != nil {
		return nil, err
	}
	return &training, nil
}

func (c *Client) DeleteTraining(ctx context.Context, id primitive.ObjectID) error {
	return c.do(ctx, http.MethodDelete, "/trainings/"+id.Hex(), nil, nil)
}

func (c *Client) ExerciseDefaults(ctx context.Context, trainingID primitive.ObjectID) ([]domain.ExerciseTraining, error) {
	var rows []domain.ExerciseTraining
	err := c.do(ctx, http.MethodGet, "/trainings/"+trainingID.Hex()+"/exercises", nil, &rows)
	return rows, err
}

func (c *Client) AddExerciseDefault(ctx context.Context, trainingID primitive.ObjectID, in domain.NewExerciseTraining) (*domain.ExerciseTraining, error) {
	var et domain.ExerciseTraining
	if err := c.do(ctx, http.MethodPost, "/trainings/"+trainingID.Hex()+"/exercises", in, &et); err != nil {
		return nil, err
	}
	return &et, nil
}

// --- Exercise catalog ---

func (c *Client) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := c.do(ctx, http.MethodGet, "/exercises", nil, &exercises)
	return exercises, err
}

func (c *Client) CreateExercise(ctx context.Context, in domain.NewExercise) (*domain.Exercise, error) {
	var exercise domain.Exercise
	if err := c.do(ctx, http.MethodPost, "/exercises", in, &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (c *Client) DeleteExercise(ctx context.Context, id primitive.ObjectID) error {
	return c.do(ctx, http.MethodDelete, "/exercises/"+id.Hex(), nil, nil)
}

func (c *Client) RequestExerciseUpload(ctx context.Context, id primitive.ObjectID, contentType string) (*MediaUpload, error) {
	var out MediaUpload
	if err := c.do(ctx, http.MethodPost, "/exercises/"+id.Hex()+"/media", map[string]string{"content_type": contentType}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExerciseMediaURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/exercises/"+id.Hex()+"/media", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
