package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	redisadapter "github.com/target/travelgo/internal/adapters/redis"
	"github.com/target/travelgo/internal/adapters/travelapi"
	"github.com/target/travelgo/internal/bootstrap"
	"github.com/target/travelgo/internal/ports"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "travelgo-admin",
	Short: "Maintenance commands for TravelGo",
	Long: `Inspect and maintain the state TravelGo keeps outside the travel API.

Configuration is read from the same environment variables (and .env file)
as the server. Session and cache commands require the Redis backend.

Examples:
  travelgo-admin sessions list
  travelgo-admin sessions revoke 6f1c...
  travelgo-admin sessions purge --yes
  travelgo-admin cache flush
  travelgo-admin upstream ping`,
	SilenceUsage: true,
}

// sessionAdmin is the subset of a session store the CLI drives.
type sessionAdmin interface {
	ports.SessionLister
	Delete(ctx context.Context, id string) error
}

type cacheFlusher interface {
	Flush(ctx context.Context) (int, error)
}

type upstreamPinger interface {
	Ping(ctx context.Context) error
}

// adminEnv holds the backends a command talks to. Fields are nil when the
// command did not ask for them.
type adminEnv struct {
	Sessions sessionAdmin
	Cache    cacheFlusher
	API      upstreamPinger
	close    func() error
}

func (e *adminEnv) Close() error {
	if e == nil || e.close == nil {
		return nil
	}
	return e.close()
}

type envNeeds struct {
	Redis bool
	API   bool
}

// openEnv is replaced in tests.
var openEnv = openConfiguredEnv

func openConfiguredEnv(ctx context.Context, needs envNeeds) (*adminEnv, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}

	env := &adminEnv{}
	if needs.Redis {
		var client redis.UniversalClient
		client, err = bootstrap.ConnectRedis(ctx, bootstrap.RedisOptions{Config: cfg.Redis, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		env.Sessions = redisadapter.NewSessionStoreWithPrefix(client, bootstrap.SessionKeyPrefix)
		env.Cache = redisadapter.NewCacheRepoWithPrefix(client, bootstrap.CacheKeyPrefix)
		env.close = client.Close
	}
	if needs.API {
		api, apiErr := travelapi.NewClient(travelapi.Options{
			BaseURL: cfg.TravelAPI.BaseURL,
			Timeout: cfg.TravelAPI.Timeout,
			Logger:  logger,
		})
		if apiErr != nil {
			_ = env.Close()
			return nil, fmt.Errorf("travel api client: %w", apiErr)
		}
		env.API = api
	}
	return env, nil
}

// withEnv opens the environment, runs fn and closes it.
func withEnv(cmd *cobra.Command, needs envNeeds, fn func(ctx context.Context, env *adminEnv) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := openEnv(ctx, needs)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, env)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("travelgo-admin version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
