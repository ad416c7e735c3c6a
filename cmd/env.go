package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/interview-practice/internal/bank"
	"github.com/abhisek/interview-practice/internal/config"
	"github.com/abhisek/interview-practice/internal/logging"
	"github.com/abhisek/interview-practice/internal/oracle"
	"github.com/abhisek/interview-practice/internal/practice"
	"github.com/abhisek/interview-practice/internal/store"
)

// env bundles what every command needs after configuration is loaded.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	bankPath string
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Env, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	bankPath := cfg.Bank
	if bankPath == "" {
		bankPath, err = bank.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve bank path: %w", err)
		}
	}

	return &env{cfg: cfg, log: log, bankPath: bankPath}, nil
}

// loadBank reads the bank file. A missing file is an empty bank.
func (e *env) loadBank() ([]bank.Question, error) {
	qs, err := bank.Load(e.bankPath)
	if errors.Is(err, fs.ErrNotExist) {
		e.log.Debug("bank file not found, starting empty", zap.String("path", e.bankPath))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", e.bankPath, err)
	}
	return qs, nil
}

func (e *env) openStore() (*store.Store, error) {
	dsn, err := store.ResolveDSN(e.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newOracle builds the configured similarity oracle. It returns nil without
// error when no provider is configured.
func (e *env) newOracle(ctx context.Context, rec oracle.CallRecorder) (oracle.Oracle, error) {
	o, err := oracle.New(ctx, e.cfg.OracleConfig(), rec, e.log)
	if errors.Is(err, oracle.ErrNotConfigured) {
		e.log.Debug("no similarity oracle configured; semantic comparison disabled")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("similarity oracle: %w", err)
	}
	return o, nil
}

// session is a Manager wired to the bank, oracle and history store.
type session struct {
	manager *practice.Manager
	method  practice.Method
	opts    []practice.CheckOption
	closeFn func()
}

func (s *session) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// newSession builds a Manager for an interactive command. History is
// best effort: when the store cannot be opened the session still runs.
func (e *env) newSession(cmd *cobra.Command, presenter practice.Presenter) (*session, error) {
	ctx := cmd.Context()

	qs, err := e.loadBank()
	if err != nil {
		return nil, err
	}

	s := &session{}
	var (
		attempts practice.Recorder
		calls    oracle.CallRecorder
	)
	st, err := e.openStore()
	if err != nil {
		e.log.Warn("history disabled", zap.Error(err))
	} else {
		s.closeFn = func() { st.Close() }
		attempts = store.NewRecorder(st.AttemptRepo(), uuid.NewString())
		calls = st.OracleCallRepo()
	}

	// A broken oracle setup only disables semantic comparison.
	o, oracleErr := e.newOracle(ctx, calls)
	if oracleErr != nil {
		e.log.Warn("similarity oracle unavailable", zap.Error(oracleErr))
		fmt.Fprintln(cmd.ErrOrStderr(), "Similarity oracle not configured:", oracleErr)
		fmt.Fprintln(cmd.ErrOrStderr(), "Semantic comparison will be unavailable.")
	}

	opts := practice.Options{
		Bank:      qs,
		Presenter: presenter,
		Recorder:  attempts,
		Logger:    e.log,
	}
	if o != nil {
		opts.Oracle = o
	}
	s.manager = practice.New(opts)

	s.method, err = e.cfg.ResolveMethod(s.manager.SemanticAvailable())
	if err != nil {
		s.Close()
		return nil, err
	}
	if s.method == practice.MethodSemantic && !s.manager.SemanticAvailable() {
		s.Close()
		if oracleErr != nil {
			return nil, fmt.Errorf("%w: %v", practice.ErrOracleUnavailable, oracleErr)
		}
		return nil, fmt.Errorf("%w; set oracle.provider or an API key such as OPENAI_API_KEY", practice.ErrOracleUnavailable)
	}
	s.opts = append(s.opts, practice.WithThreshold(e.cfg.Threshold))
	return s, nil
}
