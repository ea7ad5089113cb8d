package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	localsync "github.com/iggydv12/localsync"
	"github.com/iggydv12/localsync/internal/config"
	"github.com/iggydv12/localsync/model"
	"github.com/iggydv12/localsync/scheduler"
	"github.com/iggydv12/localsync/store"
)

var (
	cfgFile string
	dbPath  string
	key     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "localsync",
		Short: "localsync — synchronize JSON records against a local key-value store",
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the local store (overrides config)")

	createCmd := &cobra.Command{
		Use:   "create <json>",
		Short: "Create a record (a key is generated unless --key is given)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreate,
	}
	createCmd.Flags().StringVarP(&key, "key", "k", "", "Key to store the record under")

	readCmd := &cobra.Command{
		Use:   "read <key>",
		Short: "Read the record stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE:  runRead,
	}

	updateCmd := &cobra.Command{
		Use:   "update <key> <json>",
		Short: "Deep-merge new attributes onto the record stored under a key",
		Args:  cobra.ExactArgs(2),
		RunE:  runUpdate,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete the record stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	rootCmd.AddCommand(createCmd, readCmd, updateCmd, deleteCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env wires together the store, scheduler, and adapter for one invocation.
type env struct {
	st      *store.Pebble
	loop    *scheduler.Loop
	adapter *localsync.Adapter
	cfg     *config.Config
	logger  *zap.Logger
}

func setup() (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("logger init: %w", err)
	}

	path := cfg.Store.Path
	if dbPath != "" {
		path = dbPath
	}
	st := store.NewPebble(path, logger)
	if err := st.Init(); err != nil {
		return nil, err
	}

	loop := scheduler.NewLoop()
	return &env{
		st:      st,
		loop:    loop,
		adapter: localsync.New(loop, logger),
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (e *env) close() {
	e.loop.Close()
	if err := e.st.Close(); err != nil {
		e.logger.Warn("store close failed", zap.Error(err))
	}
	_ = e.logger.Sync()
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// record builds a Record bound to the environment's store and the given key.
func (e *env) record(k string, attrs map[string]any) *model.Record {
	rec := model.NewRecord(attrs)
	rec.SetIDAttribute(e.cfg.Model.IDAttribute)
	rec.Store = e.st
	rec.Key = k
	return rec
}

func runCreate(cmd *cobra.Command, args []string) error {
	attrs, err := parseAttrs(args[0])
	if err != nil {
		return err
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	k := key
	if k == "" {
		k = uuid.NewString()
	}
	return e.sync(localsync.MethodCreate, e.record(k, attrs))
}

func runRead(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	return e.sync(localsync.MethodRead, e.record(args[0], nil))
}

func runUpdate(cmd *cobra.Command, args []string) error {
	attrs, err := parseAttrs(args[1])
	if err != nil {
		return err
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	return e.sync(localsync.MethodUpdate, e.record(args[0], attrs))
}

func runDelete(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	return e.sync(localsync.MethodDelete, e.record(args[0], nil))
}

// sync runs one operation to its terminal state and prints the outcome.
func (e *env) sync(method localsync.Method, rec *model.Record) error {
	res, err := e.adapter.Sync(method, rec, nil)
	if err != nil {
		return err
	}

	v, err := res.Wait()
	if err != nil {
		return fmt.Errorf("%s %v: %w", method, rec.Key, err)
	}
	if v == nil {
		fmt.Printf("%s %v: ok\n", method, rec.Key)
		return nil
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseAttrs(raw string) (map[string]any, error) {
	attrs := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, fmt.Errorf("invalid record JSON: %w", err)
	}
	return attrs, nil
}
