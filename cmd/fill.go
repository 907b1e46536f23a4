package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/internal/observability"
	"github.com/autoapply/fillengine/internal/orchestrator"
	"github.com/autoapply/fillengine/pkg/agent"
	"github.com/autoapply/fillengine/pkg/browser"
	"github.com/autoapply/fillengine/pkg/cookbook"
	"github.com/autoapply/fillengine/pkg/executor"
	"github.com/autoapply/fillengine/pkg/interfaces"
	"github.com/autoapply/fillengine/pkg/scanner"
	"github.com/autoapply/fillengine/pkg/telemetry"
	"github.com/autoapply/fillengine/pkg/verify"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	fillURL      string
	userDataFile string
	qaFile       string
	skipCookbook bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the form page at a URL with the candidate's data.",
	RunE:  runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillURL, "url", "u", "", "page URL to fill (required)")
	fillCmd.Flags().StringVarP(&userDataFile, "data", "d", "", "JSON file with user data key/value pairs (required)")
	fillCmd.Flags().StringVarP(&qaFile, "qa", "q", "", "JSON file with question/answer overrides")
	fillCmd.Flags().BoolVar(&skipCookbook, "no-cookbook", false, "skip cookbook replay and always run the full pipeline")
	fillCmd.MarkFlagRequired("url")
	fillCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	logger := observability.GetLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userData, err := loadKV(userDataFile)
	if err != nil {
		return fmt.Errorf("load user data: %w", err)
	}
	var qa map[string]string
	if qaFile != "" {
		if qa, err = loadKV(qaFile); err != nil {
			return fmt.Errorf("load Q&A data: %w", err)
		}
	}

	mgr := browser.NewManager(cfg.Browser, logger)
	defer mgr.Close()
	session, err := mgr.NewSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Navigate(ctx, fillURL); err != nil {
		return fmt.Errorf("navigate to %s: %w", fillURL, err)
	}

	var actor interfaces.Actor = agent.StubActor{}
	if cfg.Agent.Enabled {
		a, err := agent.NewGemini(ctx, cfg.Agent, logger)
		if err != nil {
			return fmt.Errorf("initialize agent: %w", err)
		}
		actor = a
	}

	exec := executor.New(logger, session, actor, executor.Config{SettleDelay: cfg.Executor.SettleDelay})
	verifier := verify.New(logger, session)
	scan := scanner.New(session, logger)
	emitter := telemetry.New(nil, logger)
	defer emitter.Flush()

	var store interfaces.CookbookStore
	var replayer orchestrator.CookbookReplayer
	if !skipCookbook && cfg.Cookbook.Path != "" {
		s, err := cookbook.OpenStore(cfg.Cookbook.Path, logger)
		if err != nil {
			return fmt.Errorf("open cookbook store: %w", err)
		}
		defer s.Close()
		store = s
		replayer = cookbook.New(logger, session, exec, verifier, cookbook.Config{
			MinHealth:              cfg.Cookbook.MinHealth,
			MaxConsecutiveFailures: cfg.Cookbook.MaxConsecutiveFailures,
		})
	}

	orch, err := orchestrator.New(cfg, logger, scan, exec, verifier, replayer, store, emitter, userData, qa)
	if err != nil {
		return err
	}

	if replayer != nil {
		replay, err := orch.ReplayCookbook(ctx)
		if err != nil {
			return err
		}
		if replay != nil && replay.Success {
			logger.Info("cookbook replay satisfied the page",
				zap.Int("succeeded", replay.Succeeded),
				zap.Int("skipped", replay.Skipped))
			return printJSON(cmd, replay)
		}
		if replay != nil {
			logger.Info("cookbook replay insufficient, running full pipeline",
				zap.Bool("aborted", replay.Aborted),
				zap.Int("failed", replay.Failed))
		}
	}

	result, err := orch.FillPage(ctx)
	if result != nil {
		if perr := printJSON(cmd, result); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

func loadKV(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var kv map[string]string
	if err := json.Unmarshal(raw, &kv); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return kv, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
