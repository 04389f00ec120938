package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/eventhub/internal/client/api"
	"github.com/dmitrijs2005/eventhub/internal/client/config"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/client/session"
)

// App wires the interactive CLI: the API client, the persisted session, and
// the stdin reader the command prompts share.
type App struct {
	config   *config.Config
	client   *api.Client
	sessions *session.Store
	reader   *bufio.Reader
	user     *models.User
}

// NewApp builds the CLI and restores the previous session, if one was saved,
// so the user stays logged in across runs.
func NewApp(c *config.Config) (*App, error) {
	a := &App{
		config:   c,
		client:   api.NewClient(c.ServerURL, c.RequestTimeout),
		sessions: session.NewStore(c.SessionFile),
		reader:   bufio.NewReader(os.Stdin),
	}

	sess, err := a.sessions.Load()
	if err != nil {
		return nil, err
	}
	if sess != nil {
		a.client.SetToken(sess.Token)
		a.user = &sess.User
	}

	return a, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return "not logged in"
	}
	return a.user.Email
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}
