package app

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/impact/internal/adapters/watcher" //nolint:depguard // Debouncer is shared with the adapter
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultDebounce = watcher.DefaultDebounceWindow

// WatchRequest is the input of a watch loop.
type WatchRequest struct {
	Config *domain.Config
	Base   string
}

// Watch selects tests every time source files under the roots change.
// Changes accumulate over the whole session, so each emitted result covers
// every path modified since Watch started. It returns when ctx is done.
func (a *App) Watch(ctx context.Context, req WatchRequest, emit func(domain.ImpactResult)) error {
	base, err := resolveBase(req.Base)
	if err != nil {
		return err
	}
	cfg, _, err := a.configure(req.Config, base)
	if err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, cfg.Roots); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	batches := make(chan []string, 1)
	deb := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	go func() {
		for ev := range a.watcher.Events() {
			if relevant(cfg, ev.Path) {
				deb.Add(ev.Path)
			}
		}
	}()

	a.logger.Info("watching " + strings.Join(cfg.Roots, ", "))

	var changed []string
	seen := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-batches:
			for _, p := range paths {
				if _, ok := seen[p]; !ok {
					seen[p] = struct{}{}
					changed = append(changed, p)
				}
			}
			res, err := a.Select(ctx, SelectRequest{Config: req.Config, Changed: changed, Base: base})
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.logger.Error(err)
				continue
			}
			emit(res)
		}
	}
}

// relevant reports whether a watched path can affect the selection.
func relevant(cfg *domain.Config, path string) bool {
	if strings.HasPrefix(path, cfg.CacheFile) {
		return false
	}
	for _, dir := range strings.Split(filepath.ToSlash(path), "/") {
		if dir == domain.ImpactDirName {
			return false
		}
	}
	for _, s := range cfg.Suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
