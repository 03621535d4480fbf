// Package app wires configuration, logging and metrics around the rolechain library.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bissquit/rolechain/internal/access"
	"github.com/bissquit/rolechain/internal/ancestry"
	"github.com/bissquit/rolechain/internal/config"
	"github.com/bissquit/rolechain/internal/domain"
	"github.com/bissquit/rolechain/internal/pkg/ctxlog"
	"github.com/bissquit/rolechain/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// ErrEmptyChain is returned when a command needs at least one user id.
var ErrEmptyChain = errors.New("chain needs at least one user id")

// App represents the application instance.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	out      io.Writer
	gatherer prometheus.Gatherer
}

// New creates an application writing results to out and logs to logOut.
func New(cfg *config.Config, out, logOut io.Writer) *App {
	return &App{
		config:   cfg,
		logger:   initLogger(cfg.Log, logOut),
		out:      out,
		gatherer: prometheus.DefaultGatherer,
	}
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// ListPermissions prints the catalog, one member per line.
func (a *App) ListPermissions(_ context.Context) error {
	for _, p := range domain.Permissions() {
		if _, err := fmt.Fprintf(a.out, "%s\t%s\n", p, p.DisplayName()); err != nil {
			return fmt.Errorf("write permission: %w", err)
		}
	}
	return nil
}

// Lookup resolves a permission name and prints it.
func (a *App) Lookup(ctx context.Context, name string) (domain.Permission, error) {
	p, err := a.lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if _, err := fmt.Fprintln(a.out, p); err != nil {
		return "", fmt.Errorf("write permission: %w", err)
	}
	return p, nil
}

func (a *App) lookup(ctx context.Context, name string) (domain.Permission, error) {
	p, err := domain.LookupPermission(name)
	if err != nil {
		metrics.PermissionLookups.WithLabelValues(metrics.ResultNotFound).Inc()
		ctxlog.FromContext(ctx).Error("permission lookup failed", "name", name, "error", err)
		return "", err
	}
	metrics.PermissionLookups.WithLabelValues(metrics.ResultFound).Inc()
	ctxlog.FromContext(ctx).Debug("permission resolved", "name", name)
	return p, nil
}

// BuildChain creates the chain ids[0] -> ids[1] -> ... and returns its first user.
// Permission names are resolved through the catalog and granted to the first user.
func (a *App) BuildChain(ctx context.Context, ids []int, permissionNames []string) (*domain.User, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyChain
	}

	perms := make([]domain.Permission, 0, len(permissionNames))
	for _, name := range permissionNames {
		p, err := a.lookup(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("grant permission: %w", err)
		}
		perms = append(perms, p)
	}

	var u *domain.User
	for i := len(ids) - 1; i > 0; i-- {
		u = domain.NewUser(ids[i], domain.WithParent(u))
	}
	u = domain.NewUser(ids[0], domain.WithPermissions(perms...), domain.WithParent(u))

	metrics.ChainLength.Observe(float64(len(ids)))
	ctxlog.FromContext(ctx).Debug("chain built", "length", len(ids), "user", u.String())

	return u, nil
}

// Grandparent prints the grandparent id of u, or "absent".
func (a *App) Grandparent(ctx context.Context, u *domain.User) (int, bool, error) {
	id, ok := ancestry.GrandparentID(u)
	a.recordWalk(ctx, 2, ok)
	return id, ok, a.printOptionalID(id, ok)
}

// Ancestor prints the id depth hops above u, or "absent".
// A negative depth falls back to the configured default.
func (a *App) Ancestor(ctx context.Context, u *domain.User, depth int) (int, bool, error) {
	if depth < 0 {
		depth = a.config.Walker.DefaultDepth
	}
	id, ok := ancestry.AncestorID(u, depth)
	a.recordWalk(ctx, depth, ok)
	return id, ok, a.printOptionalID(id, ok)
}

// Lineage prints u and its ancestors, nearest first, with their admin flag.
func (a *App) Lineage(ctx context.Context, u *domain.User) error {
	chain := ancestry.Lineage(u)
	ctxlog.FromContext(ctx).Debug("lineage resolved", "length", len(chain))

	for _, member := range chain {
		if _, err := fmt.Fprintf(a.out, "%s admin=%t\n", member, access.IsAdmin(member)); err != nil {
			return fmt.Errorf("write lineage: %w", err)
		}
	}
	return nil
}

// PermissionsOf prints the permissions of the user with the given id in u's lineage.
func (a *App) PermissionsOf(ctx context.Context, u *domain.User, id int) ([]domain.Permission, error) {
	dir, err := access.NewDirectory(ancestry.Lineage(u)...)
	if err != nil {
		return nil, fmt.Errorf("index lineage: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("lineage indexed", "users", dir.Len())

	perms, err := dir.PermissionsByUserID(id)
	if err != nil {
		ctxlog.FromContext(ctx).Error("permissions lookup failed", "user_id", id, "error", err)
		return nil, err
	}

	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.String()
	}
	if _, err := fmt.Fprintln(a.out, strings.Join(names, ",")); err != nil {
		return nil, fmt.Errorf("write permissions: %w", err)
	}
	return perms, nil
}

// DumpMetrics writes rolechain metric families in text exposition format.
func (a *App) DumpMetrics(w io.Writer) error {
	families, err := a.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "rolechain_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func (a *App) recordWalk(ctx context.Context, depth int, ok bool) {
	metrics.AncestryWalks.WithLabelValues(metrics.DepthLabel(depth), metrics.Outcome(ok)).Inc()
	ctxlog.FromContext(ctx).Debug("ancestor walk", "depth", depth, "present", ok)
}

func (a *App) printOptionalID(id int, ok bool) error {
	var err error
	if ok {
		_, err = fmt.Fprintln(a.out, id)
	} else {
		_, err = fmt.Fprintln(a.out, "absent")
	}
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func initLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
