package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/abhisek/quizdesk/internal/config"
	"github.com/abhisek/quizdesk/internal/logger"
	"github.com/abhisek/quizdesk/internal/server"
	"github.com/abhisek/quizdesk/internal/store"
	"github.com/abhisek/quizdesk/internal/taxonomy"
	"github.com/abhisek/quizdesk/internal/wizard"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the authoring flow over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().Bool("debug", false, "Run gin in debug mode")
}

// standards carries the taxonomy and, when it failed to load, why.
type standards struct {
	Tax *taxonomy.Taxonomy
	Err error
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	closer, err := initLogger(cfg, logger.ModeConsole)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			newServeStore,
			func(cfg *config.Config) standards {
				tax, err := loadTaxonomy(cfg)
				return standards{Tax: tax, Err: err}
			},
			newServeGenerator,
			func(cfg *config.Config, st *store.Store) (server.Submitter, error) {
				return newSubmitter(context.Background(), cfg, st)
			},
			newServer,
			server.NewEngine,
		),
		fx.Invoke(registerRoutesAndStartServer),
	)

	if err := app.Start(cmd.Context()); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	sig := <-app.Wait()
	log.Info().Stringer("signal", sig.Signal).Msg("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return app.Stop(stopCtx)
}

func newServeStore(lc fx.Lifecycle, cfg *config.Config) (*store.Store, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return st.Close() },
	})
	return st, nil
}

// newServeGenerator returns nil when no LLM is configured; the server then
// answers generation with an error while the rest keeps working.
func newServeGenerator(cfg *config.Config, st *store.Store) wizard.Generator {
	gen, err := newGenerator(context.Background(), cfg, st)
	if err != nil {
		log.Warn().Err(err).Msg("question generator unavailable")
		return nil
	}
	return gen
}

func newServer(cfg *config.Config, std standards, gen wizard.Generator, sub server.Submitter) *server.Server {
	return server.New(server.Deps{
		Taxonomy:    std.Tax,
		TaxonomyErr: std.Err,
		Generator:   gen,
		Submitter:   sub,
		SessionTTL:  cfg.Server.SessionTTL,
	})
}

// registerRoutesAndStartServer mounts the API and ties the HTTP server and
// the session janitor to the fx lifecycle.
func registerRoutesAndStartServer(lc fx.Lifecycle, engine *gin.Engine, srv *server.Server, cfg *config.Config) {
	srv.Register(engine)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Str("addr", cfg.Server.Addr).
				Dur("session_ttl", cfg.Server.SessionTTL).
				Msg("quizdesk API listening")
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()
			go srv.RunJanitor(janitorCtx, cfg.Server.SessionTTL/4)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("HTTP server shutting down...")
			stopJanitor()
			return httpServer.Shutdown(ctx)
		},
	})
}
