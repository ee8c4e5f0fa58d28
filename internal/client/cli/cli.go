package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/sitekeeper/internal/client/api"
	"github.com/iudanet/sitekeeper/internal/client/auth"
	"github.com/iudanet/sitekeeper/internal/client/iocli"
	"github.com/iudanet/sitekeeper/internal/client/storage"
	"github.com/iudanet/sitekeeper/internal/client/sync"
	"github.com/iudanet/sitekeeper/internal/state"
)

// Cli связывает команды терминального клиента с сервисами
type Cli struct {
	io          iocli.IO
	apiClient   *api.Client
	authService *auth.Service
	syncService sync.Service
	snapshots   storage.SnapshotStorage
}

func New(
	io iocli.IO,
	apiClient *api.Client,
	authService *auth.Service,
	syncService sync.Service,
	snapshots storage.SnapshotStorage,
) *Cli {
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		authService: authService,
		syncService: syncService,
		snapshots:   snapshots,
	}
}

// Run выполняет команду и возвращает ошибку для main
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "sync":
		return c.runSync(ctx)
	case "watch":
		return c.runWatch(ctx)
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// loadReplica восстанавливает реплику из локального snapshot.
// Отсутствие snapshot — не ошибка: это свежая установка клиента.
func (c *Cli) loadReplica(ctx context.Context) (*state.Replica, error) {
	data, err := c.snapshots.LoadSnapshot(ctx)
	if err != nil {
		if err == storage.ErrSnapshotNotFound {
			return state.New(), nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	snap, err := state.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	replica, err := state.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to restore replica: %w", err)
	}
	return replica, nil
}

// saveReplica персистит текущее состояние реплики
func (c *Cli) saveReplica(ctx context.Context, replica *state.Replica) error {
	data, err := state.Encode(replica.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := c.snapshots.SaveSnapshot(ctx, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// requireAuth проверяет сессию и выставляет access token на API клиенте
func (c *Cli) requireAuth(ctx context.Context) (*storage.AuthData, error) {
	authData, err := c.authService.GetAuth(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			return nil, fmt.Errorf("not authenticated. Please run 'sitekeeper login' first")
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	c.apiClient.SetAccessToken(authData.AccessToken)
	return authData, nil
}

func (c *Cli) PrintUsage() {
	c.io.Println("SiteKeeper Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  sitekeeper [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --server URL   Server URL (default: http://localhost:8080)")
	c.io.Println("  --db PATH      Path to local database (default: sitekeeper-client.db)")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  register                  Register new account")
	c.io.Println("  login                     Login to server")
	c.io.Println("  logout                    Logout and drop local session")
	c.io.Println("  status                    Show session and replica status")
	c.io.Println("  sync                      Synchronize local replica with server")
	c.io.Println("  watch                     Follow server changes until interrupted")
	c.io.Println("  add <kind>                Add content (event, track, image, article)")
	c.io.Println("  list <kind> <site-id>     List site content of a kind")
	c.io.Println("  get <kind> <id>           Show full record details")
	c.io.Println("  delete <kind> <id>        Delete a record")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  sitekeeper register")
	c.io.Println("  sitekeeper add event")
	c.io.Println("  sitekeeper list events 2f6b5c1e-7c39-4bfa-9a57-2f1fbc90a001")
	c.io.Println("  sitekeeper sync")
}
