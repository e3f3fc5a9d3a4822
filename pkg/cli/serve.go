package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/sabledocs/pkg/config"
	"github.com/platinummonkey/sabledocs/pkg/httputil"
	"github.com/platinummonkey/sabledocs/pkg/observability"
	"github.com/platinummonkey/sabledocs/pkg/search"
	"github.com/platinummonkey/sabledocs/pkg/storage"
)

// regenerateDelay collapses bursts of file events into one rebuild
const regenerateDelay = 500 * time.Millisecond

func newServeCommand(out io.Writer) *Command {
	cmd := &Command{
		Name:        "serve",
		Description: "Generate documentation and serve it with search and metrics",
		Flags:       newFlagSet("serve"),
		out:         out,
	}

	configPath := cmd.Flags.String("config", config.DefaultFile, "Configuration file")
	addr := cmd.Flags.String("addr", ":8000", "Listen address")
	watch := cmd.Flags.Bool("watch", false, "Regenerate when the descriptor set changes")

	cmd.Run = func(ctx context.Context, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		env, err := newEnvironment(ctx, *configPath)
		if err != nil {
			return err
		}
		defer env.close(context.Background())

		srv, err := newPreviewServer(env)
		if err != nil {
			return err
		}
		if err := srv.regenerate(ctx); err != nil {
			return err
		}

		fmt.Fprintf(cmd.out, "Serving documentation on %s\n", *addr)
		return srv.run(ctx, *addr, *watch)
	}

	return cmd
}

// previewServer serves the generated site and keeps the search index current
type previewServer struct {
	env    *environment
	sink   *storage.FileSystemStorage
	index  atomic.Pointer[search.Index]
	health *observability.HealthChecker
}

func newPreviewServer(env *environment) (*previewServer, error) {
	sink, err := storage.NewFileSystemStorage(env.cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	s := &previewServer{
		env:    env,
		sink:   sink,
		health: observability.NewHealthChecker(Version),
	}
	s.health.Register("site", func(ctx context.Context) error {
		if s.index.Load() == nil {
			return errors.New("documentation not generated yet")
		}
		return nil
	})
	return s, nil
}

// regenerate rebuilds the site and swaps in the new search index
func (s *previewServer) regenerate(ctx context.Context) error {
	result, err := s.env.generate(ctx, s.sink, false)
	if err != nil {
		return err
	}
	s.index.Store(search.NewIndexer(s.env.cfg.IsPackageHidden).Build(ctx, result))
	return nil
}

// routes builds the HTTP handler
func (s *previewServer) routes() http.Handler {
	router := mux.NewRouter()
	router.Use(
		httputil.RecoveryMiddleware(s.env.log),
		httputil.LoggingMiddleware(s.env.log),
		s.env.metrics.HTTPMiddleware,
	)

	search.NewHandlers(s.index.Load).RegisterRoutes(router)
	router.Handle("/metrics", s.env.metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.health.Liveness).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.health.Readiness).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.sink.Root())))

	return router
}

// run serves until ctx is cancelled
func (s *previewServer) run(ctx context.Context, addr string, watch bool) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	shutdown := observability.NewShutdownManager(s.env.log, server, 10*time.Second)
	g.Go(func() error {
		return shutdown.WaitForShutdown(gctx)
	})

	g.Go(func() error {
		defer observability.RecoverPanic(s.env.log, "preview server")
		s.env.log.WithField("addr", addr).Info("Starting preview server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server failed: %w", err)
		}
		return nil
	})

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		shutdown.RegisterShutdownFunc(func(context.Context) error {
			return watcher.Close()
		})

		g.Go(func() error {
			return s.watch(gctx, watcher)
		})
	}

	return g.Wait()
}

// watch regenerates the site when the descriptor set file changes. The
// directory is watched so that files replaced by rename are still seen.
func (s *previewServer) watch(ctx context.Context, watcher *fsnotify.Watcher) error {
	input, err := filepath.Abs(s.env.cfg.InputDescriptorFile)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(input), err)
	}
	s.env.log.WithField("file", input).Info("Watching descriptor set for changes")

	timer := time.NewTimer(regenerateDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != input {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.env.log.WithField("op", event.Op.String()).Debug("Descriptor set changed")
			timer.Reset(regenerateDelay)

		case <-timer.C:
			if err := s.regenerate(ctx); err != nil {
				s.env.log.WithError(err).Error("Regeneration failed, keeping previous site")
				continue
			}
			s.env.log.Info("Documentation regenerated")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.env.log.WithError(err).Warn("Watcher error")
		}
	}
}
