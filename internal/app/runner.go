package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Adda-Baaj/gamejolt-go/internal/config"
	"github.com/Adda-Baaj/gamejolt-go/internal/logger"
	"github.com/Adda-Baaj/gamejolt-go/internal/session"
	"github.com/Adda-Baaj/gamejolt-go/pkg/gamejolt"
	"github.com/Adda-Baaj/gamejolt-go/pkg/httpclient"
	"github.com/Adda-Baaj/gamejolt-go/pkg/publishers"
)

// Exit codes returned by Run.
const (
	ExitOK       = 0
	ExitNotOK    = 1
	ExitUsage    = 2
	ExitInternal = 3
)

// ErrUsage marks errors caused by bad command lines.
var ErrUsage = errors.New("usage")

// Runner executes one game API command per Run: it issues the call, waits
// for the result, prints it, publishes it, and keeps the session store in
// sync.
type Runner struct {
	cfg        *config.Config
	client     *gamejolt.Client
	dispatcher *gamejolt.QueueDispatcher
	store      session.Store
	fanout     *publishers.Fanout
	log        logger.Logger
	out        io.Writer
}

// NewRunner builds a runner from config. Extra client options are applied
// after the config-derived ones.
func NewRunner(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer, opts ...gamejolt.Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	storeOpts := session.Options{
		TTL:             cfg.SessionTTL,
		CleanupInterval: cfg.SessionCleanupInterval,
	}
	store, err := session.NewStore(cfg.SessionStoreType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}
	log.DebugObj("session store initialized", "session_store_config", map[string]any{
		"type":                     cfg.SessionStoreType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.SessionTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.SessionCleanupInterval.Seconds()),
	})

	dispatcher := gamejolt.NewQueueDispatcher(1)
	clientOpts := append([]gamejolt.Option{
		gamejolt.WithAPIRoot(cfg.APIRoot),
		gamejolt.WithHTTPClient(httpclient.NewRestyClientWithOptions(httpclient.Options{
			Timeout:   cfg.RequestTimeout,
			UserAgent: cfg.AppName,
		})),
		gamejolt.WithLogger(log),
		gamejolt.WithDispatcher(dispatcher),
	}, opts...)

	client, err := gamejolt.New(gamejolt.Credentials{GameID: cfg.GameID, PrivateKey: cfg.PrivateKey}, clientOpts...)
	if err != nil {
		dispatcher.Close()
		_ = store.Close()
		return nil, fmt.Errorf("create game client: %w", err)
	}

	return &Runner{
		cfg:        cfg,
		client:     client,
		dispatcher: dispatcher,
		store:      store,
		fanout:     fanout,
		log:        log,
		out:        out,
	}, nil
}

func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(cfg.PublishersFile) == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Close drains pending completions and releases the store and publishers.
func (r *Runner) Close() error {
	if r == nil {
		return nil
	}
	r.dispatcher.Close()
	return errors.Join(r.store.Close(), r.fanout.Close())
}

// Run executes args[0] with the remaining flags and returns the exit code.
func (r *Runner) Run(ctx context.Context, args []string) (int, error) {
	if len(args) == 0 {
		r.usage()
		return ExitUsage, fmt.Errorf("%w: no command given", ErrUsage)
	}
	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		if name == "help" || name == "-h" || name == "--help" {
			r.usage()
			return ExitOK, nil
		}
		r.usage()
		return ExitUsage, fmt.Errorf("%w: unknown command %q", ErrUsage, name)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	issue := cmd.bind(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return ExitUsage, fmt.Errorf("%w: %s: %v", ErrUsage, name, err)
	}

	call, err := issue(ctx, r)
	if err != nil {
		return ExitUsage, fmt.Errorf("%w: %s: %v", ErrUsage, name, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, r.cfg.WaitTimeout)
	defer cancel()
	res, err := call.Wait(waitCtx)
	if err != nil {
		r.log.ErrorObj("call did not complete", "call_timeout", map[string]any{
			"command":  name,
			"endpoint": call.Endpoint().Name,
			"error":    err.Error(),
		})
		return ExitInternal, fmt.Errorf("%s: wait for result: %w", name, err)
	}

	return r.finish(ctx, name, call.Endpoint(), res)
}

// finish persists session changes, prints and publishes the result.
func (r *Runner) finish(ctx context.Context, name string, ep gamejolt.Endpoint, res gamejolt.CallResult) (int, error) {
	if res.OK() {
		r.syncSession(name, res)
	}

	evt := publishers.NewEvent(r.cfg.GameID, name, ep, res)
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(evt); err != nil {
		return ExitInternal, fmt.Errorf("write result: %w", err)
	}

	if r.fanout.Size() > 0 {
		if delivered, err := r.fanout.Publish(ctx, evt); err != nil {
			r.log.WarnObj("result publish failed", "publish_error", map[string]any{
				"delivered": delivered,
				"error":     err.Error(),
			})
		}
	}

	if !res.OK() {
		return ExitNotOK, nil
	}
	return ExitOK, nil
}

func (r *Runner) syncSession(name string, res gamejolt.CallResult) {
	if len(res.Params) == 0 {
		return
	}
	s, ok := res.Params[0].(gamejolt.Session)
	if !ok {
		return
	}

	var err error
	switch name {
	case "session-open", "auth":
		err = r.store.Put(s)
	case "session-close":
		err = r.store.Delete(s.Username)
	default:
		return
	}
	if err != nil {
		r.log.WarnObj("session store update failed", "session_store_error", map[string]any{
			"command":  name,
			"username": s.Username,
			"error":    err.Error(),
		})
	}
}

// resolveSession fills a missing token from the store. Without a username
// the most recent stored session is used.
func (r *Runner) resolveSession(username, token string) (gamejolt.Session, error) {
	username = strings.TrimSpace(username)
	if token != "" {
		if username == "" {
			return gamejolt.Session{}, fmt.Errorf("-token requires -username")
		}
		return gamejolt.Session{Username: username, Token: token}, nil
	}

	var (
		s   gamejolt.Session
		err error
	)
	if username != "" {
		s, err = r.store.Get(username)
	} else {
		s, err = r.store.Last()
	}
	if errors.Is(err, session.ErrNotFound) {
		return gamejolt.Session{}, fmt.Errorf("no stored session; pass -username and -token")
	}
	if err != nil {
		return gamejolt.Session{}, fmt.Errorf("read session store: %w", err)
	}
	return s, nil
}

func (r *Runner) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: gamejolt <command> [flags]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-14s %s\n", name, commands[name].summary)
	}
	_, _ = io.WriteString(r.out, b.String())
}
