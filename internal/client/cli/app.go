package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/board"
	"github.com/dmitrijs2005/lovelab/internal/client/camera"
	"github.com/dmitrijs2005/lovelab/internal/client/client"
	"github.com/dmitrijs2005/lovelab/internal/client/config"
	"github.com/dmitrijs2005/lovelab/internal/client/practice"
	"github.com/dmitrijs2005/lovelab/internal/client/services"
	"github.com/dmitrijs2005/lovelab/internal/client/share"
	"github.com/dmitrijs2005/lovelab/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	log     logging.Logger
	api     client.Client
	db      *sql.DB
	profile services.Profile
	devices *services.DeviceService
	board   *board.Board
	session *practice.Session
	sharer  *share.Service
	in      *lineReader
	out     io.Writer
	now     func() time.Time

	modeMu sync.Mutex
	mode   Mode

	nickname  string
	lastShare string
	wallIDs   []string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	db, err := client.InitDatabase(ctx, c.DataPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	repos := client.NewRepositories(db)

	api, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	devices := services.NewDeviceService(api, repos.Prefs)
	api.OnTokenRenewed(func(token string) {
		if err := devices.Remember(context.Background(), token); err != nil {
			log.Warn(context.Background(), "failed to store device token", "error", err)
		}
	})

	profile := services.NewProfile(repos.Prefs)

	gate := practice.NewSoftGate(profile)
	if c.PracticeGate == config.GateHard {
		gate = practice.NewHardGate(profile, api)
	}

	a := &App{
		config:  c,
		log:     log,
		api:     api,
		db:      db,
		profile: profile,
		devices: devices,
		board:   board.New(board.NewRemoteStore(api, log), repos.Confessions, board.HeartMode(c.HeartMode), c.RequestTimeout, log),
		session: practice.NewSession(camera.NewFileDevice(c.VideoDevice), practice.NewGenerator(nil), gate, log),
		in:      newLineReader(os.Stdin),
		out:     os.Stdout,
		now:     time.Now,
		mode:    ModeOffline,
	}

	var confirm share.Confirm
	if interactive() {
		confirm = func(text string) bool {
			return GetYesNo(context.Background(), a.in, "Publish a share card?", a.out)
		}
	}
	a.sharer = share.NewService(api, confirm, c.RequestTimeout, log)

	return a, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) getStatus() string {
	s := string(a.getMode())
	if a.nickname != "" {
		s = a.nickname + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	printlnFn("💘 Welcome to LoveLab (type 'help' for commands)")

	if err := a.ensureNickname(ctx); err != nil {
		if isEOF(err) {
			return nil
		}
		return err
	}
	printlnFn(fmt.Sprintf("Hey %s! 💕", a.nickname))

	if a.devices != nil {
		if _, err := a.devices.EnsureToken(ctx); err != nil {
			a.log.Warn(ctx, "device registration deferred", "error", err)
		}
	}

	if a.api != nil {
		go a.StartOnlineStatusWatcher(ctx, a.api, a.config.OnlineCheckInterval)
	}

	printlnFn("Loading confessions…")
	res, err := a.board.Activate(ctx)
	if err != nil {
		a.log.Warn(ctx, "live updates unavailable", "error", err)
	}
	a.reportFetch(res)
	go a.watchWall(ctx)

	runREPL(ctx, a, a.getStatus, a.in)
	return nil
}

// Close releases the camera, the board subscription and the connections.
func (a *App) Close() {
	if a.session != nil {
		a.session.Close()
	}
	if a.board != nil {
		a.board.Close()
	}
	if a.api != nil {
		_ = a.api.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, p pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := p.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// watchWall announces new confessions as they arrive.
func (a *App) watchWall(ctx context.Context) {
	last := len(a.board.Snapshot())
	for {
		select {
		case _, ok := <-a.board.Updates():
			if !ok {
				return
			}
			n := len(a.board.Snapshot())
			if n > last {
				printlnFn(fmt.Sprintf("💌 %d new on the wall (type 'wall')", n-last))
			}
			last = n
		case <-ctx.Done():
			return
		}
	}
}
