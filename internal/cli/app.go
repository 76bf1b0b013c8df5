// Package cli is the trainer's terminal client.
package cli

import (
	"alcyxob/fitcoach/internal/apiclient"
	"alcyxob/fitcoach/internal/catalog"
	"alcyxob/fitcoach/internal/config"
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/localstore"
	"alcyxob/fitcoach/internal/session"
	"alcyxob/fitcoach/internal/workflow"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// API is every server call the CLI makes.
type API interface {
	workflow.API
	catalog.API
	Login(ctx context.Context, email, password string) (*apiclient.LoginResponse, error)
	ListRoutines(ctx context.Context) ([]domain.TrainingRoutine, error)
}

// App holds what the commands share. Store and API are opened lazily so
// commands like --help never touch the disk.
type App struct {
	cfg config.ClientConfig
	out io.Writer
	in  *bufio.Reader

	store    localstore.Store
	sessions *session.Store
	api      API
}

func NewApp(cfg config.ClientConfig) *App {
	return &App{cfg: cfg, out: os.Stdout, in: bufio.NewReader(os.Stdin)}
}

func (a *App) open() error {
	if a.store == nil {
		store, err := localstore.OpenSQLite(a.cfg.StorePath)
		if err != nil {
			return fmt.Errorf("failed to open local store: %w", err)
		}
		a.store = store
	}
	if a.sessions == nil {
		a.sessions = session.NewStore(a.store)
	}
	if a.api == nil {
		a.api = apiclient.New(a.cfg.APIURL, a.sessions, a.cfg.Timeout)
	}
	return nil
}

// Close releases the local store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// currentSession returns a usable session or an error telling the user how to get one.
func (a *App) currentSession(ctx context.Context) (domain.Session, error) {
	sess, err := a.sessions.Load(ctx)
	switch {
	case errors.Is(err, session.ErrNoSession):
		return sess, errors.New("not signed in, run `coach login` first")
	case errors.Is(err, session.ErrSessionExpired):
		return sess, errors.New("session expired, run `coach login` again")
	}
	return sess, err
}

func (a *App) env(sess domain.Session, ui workflow.UI) workflow.Env {
	return workflow.Env{
		UserID:   sess.UserID,
		UserType: sess.UserType,
		API:      a.api,
		UI:       ui,
		Prefs:    a.sessions,
	}
}

// loadDetails opens the routine screen controller for id.
func (a *App) loadDetails(ctx context.Context, id primitive.ObjectID, assumeYes bool) (*workflow.RoutineDetails, *terminalUI, error) {
	sess, err := a.currentSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	ui := newTerminalUI(a.out, a.in, assumeYes)
	d := workflow.NewRoutineDetails(a.env(sess, ui), id)
	if err := d.Load(ctx); err != nil {
		if errors.Is(err, workflow.ErrRoutineNotFound) {
			return nil, nil, fmt.Errorf("routine %s not found", id.Hex())
		}
		return nil, nil, fmt.Errorf("failed to load routine: %w", err)
	}
	return d, ui, nil
}

func parseID(kind, s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}
