// Command alerter runs one alerting subsystem: system, GitHub, or
// Chainlink-node, selected by its first positional argument, per
// SPEC_FULL.md §6 "CLI/environment". One process is started per subsystem,
// mirroring the original PANIC alerter's one-process-per-alerter-type
// deployment; teacher idiom for flags/viper/zap/signal handling is drawn
// from cmd/tradingbot/main.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/simplyvc/panic-alerter/internal/alerter"
	"github.com/simplyvc/panic-alerter/internal/alerting"
	"github.com/simplyvc/panic-alerter/internal/bus"
	"github.com/simplyvc/panic-alerter/internal/config"
	"github.com/simplyvc/panic-alerter/internal/health"
	"github.com/simplyvc/panic-alerter/internal/kvstore"
)

// Roles recognized on the command line.
const (
	roleSystem    = "system-alerter"
	roleGithub    = "github-alerter"
	roleChainlink = "chainlink-node-alerter"
)

func main() {
	configFile := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	role := flag.Arg(0)
	switch role {
	case roleSystem, roleGithub, roleChainlink:
	default:
		fmt.Fprintf(os.Stderr, "usage: alerter [--config path] %s|%s|%s\n", roleSystem, roleGithub, roleChainlink)
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(role, *configFile, logger); err != nil {
		logger.Error("alerter exited with error", zap.String("role", role), zap.Error(err))
		os.Exit(1)
	}
}

func run(role, configFile string, logger *zap.Logger) error {
	loader := config.NewLoader(configFile)
	snap, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	natsBus, err := bus.Dial(ctx, loader.BusURL(), logger)
	if err != nil {
		return fmt.Errorf("dial bus: %w", err)
	}
	defer natsBus.Close()

	kv := kvstore.NewRedisStore(loader.KVStoreAddr(), os.Getenv("REDIS_PASSWORD"), 0)
	defer kv.Close()

	publisher := bus.NewPublisher(natsBus, logger, 1000, bus.WithSubsystemLabel(role))
	transform := alerter.NewTransformer(kv, loader.Identifier())
	factory := alerting.NewFactory(logger, nil)

	go serveMetrics(logger)
	go flushPublisherPeriodically(ctx, publisher, logger)

	heartbeat := health.NewHeartbeat(natsBus, logger, role, bus.HeartbeatWorker, 30*time.Second, nil)
	go heartbeat.Run(ctx)

	watcher, err := config.NewWatcher(loader, logger)
	if err != nil {
		logger.Warn("config hot-reload unavailable", zap.Error(err))
	} else {
		go watcher.Run(ctx)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	runCtx, runCancel := context.WithCancel(ctx)
	runDone := startSubsystems(runCtx, role, snap, natsBus, factory, transform, publisher, logger)

	for {
		select {
		case <-sigChan:
			logger.Info("shutting down", zap.String("role", role))
			runCancel()
			<-runDone
			return nil

		case newSnap, ok := <-watcherChanged(watcher):
			if !ok {
				continue
			}
			// §5 "Config change": stop the running subsystem tree and its
			// alerting state, then start fresh from the new snapshot.
			logger.Info("config changed, restarting subsystem", zap.String("role", role))
			runCancel()
			<-runDone
			snap = newSnap
			runCtx, runCancel = context.WithCancel(ctx)
			runDone = startSubsystems(runCtx, role, snap, natsBus, factory, transform, publisher, logger)
		}
	}
}

func watcherChanged(w *config.Watcher) <-chan config.Snapshot {
	if w == nil {
		return nil
	}
	return w.Changed
}

// startSubsystems builds a fresh alerting.Store (state never survives a
// config-driven restart, per §5) and launches one Alerter goroutine per
// chain this role cares about. The returned channel closes once every
// chain goroutine has returned.
func startSubsystems(ctx context.Context, role string, snap config.Snapshot, b bus.Bus, factory *alerting.Factory, transform *alerter.Transformer, publisher *bus.Publisher, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	store := alerting.NewStore()

	go func() {
		defer close(done)

		var wg sync.WaitGroup
		for _, chain := range snap.Chains {
			chain := chain

			classify, inputSubject, alertSubject, monitorableIDs := buildClassifier(role, chain, store, factory, transform)
			if classify == nil {
				continue
			}
			for _, id := range monitorableIDs {
				store.CreateState(chain.ParentID, id, chain.Thresholds)
			}

			wg.Add(1)
			go func(chain config.ChainConfig) {
				defer wg.Done()
				a := alerter.NewAlerter(role+":"+chain.ChainName, b, publisher, logger, inputSubject, alertSubject, classify)
				if err := a.Run(ctx); err != nil {
					logger.Error("alerter subsystem stopped", zap.String("chain", chain.ChainName), zap.Error(err))
				}
			}(chain)
		}
		wg.Wait()
	}()

	return done
}

// buildClassifier returns the Classifier, bus subjects, and monitorable ids
// (nodes or repos, depending on role) for one chain, or a nil Classifier if
// this role has nothing to monitor in chain. GitHub and Chainlink share a
// single global input subject across chains (the envelope's parent_id
// distinguishes them), so their classifiers are wrapped with forParent;
// System's transformed-data subject is already parent-scoped.
func buildClassifier(role string, chain config.ChainConfig, store *alerting.Store, factory *alerting.Factory, transform *alerter.Transformer) (classify alerter.Classifier, inputSubject, alertSubject string, monitorableIDs []string) {
	switch role {
	case roleSystem:
		nodeIDs := nodeIDs(chain)
		if len(nodeIDs) == 0 {
			return nil, "", "", nil
		}
		c := alerter.NewSystemClassifier(alerter.SystemClassifier{
			Factory:    factory,
			Store:      store,
			Thresholds: chain.Thresholds,
		})
		return c, bus.SystemTransformedData(chain.ParentID), bus.SystemAlert, nodeIDs

	case roleChainlink:
		nodeIDs := nodeIDs(chain)
		if len(nodeIDs) == 0 {
			return nil, "", "", nil
		}
		c := alerter.NewChainlinkClassifier(alerter.ChainlinkClassifier{
			Factory:    factory,
			Store:      store,
			Transform:  transform,
			Chain:      chain.ChainName,
			Thresholds: chain.Thresholds,
		})
		return forParent(chain.ParentID, c), bus.ChainlinkTransformedData, bus.ChainlinkAlert, nodeIDs

	case roleGithub:
		repoIDs := repoIDs(chain)
		if len(repoIDs) == 0 {
			return nil, "", "", nil
		}
		c := alerter.NewGithubClassifier(alerter.GithubClassifier{
			Factory: factory,
			Store:   store,
		})
		return forParent(chain.ParentID, c), bus.GithubTransformedData, bus.GithubAlert, repoIDs

	default:
		return nil, "", "", nil
	}
}

func nodeIDs(chain config.ChainConfig) []string {
	var ids []string
	for _, n := range chain.Nodes {
		if n.Monitor {
			ids = append(ids, n.NodeID)
		}
	}
	return ids
}

func repoIDs(chain config.ChainConfig) []string {
	var ids []string
	for _, r := range chain.Repos {
		if r.Monitor {
			ids = append(ids, r.RepoID)
		}
	}
	return ids
}

// forParent filters a shared-subject classifier down to the envelopes that
// belong to parentID, leaving every other chain's traffic untouched.
func forParent(parentID string, next alerter.Classifier) alerter.Classifier {
	return func(ctx context.Context, env alerter.Envelope) ([]alerting.Alert, error) {
		var envParent string
		switch {
		case env.Result != nil:
			envParent = env.Result.MetaData.ParentID
		case env.Error != nil:
			envParent = env.Error.MetaData.ParentID
		}
		if envParent != parentID {
			return nil, nil
		}
		return next(ctx, env)
	}
}

func flushPublisherPeriodically(ctx context.Context, publisher *bus.Publisher, logger *zap.Logger) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := publisher.Flush(ctx); err != nil {
				logger.Warn("publisher flush failed", zap.Error(err))
			}
		}
	}
}

func serveMetrics(logger *zap.Logger) {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		addr = ":9090"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}
