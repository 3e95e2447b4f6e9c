// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file when it changes on disk.
//
// # Description
//
// Detects external edits to the config file (e.g. an operator tuning
// the corpus rate limit) and invokes the callback with the freshly
// loaded configuration. Reloads that fail to parse or validate are
// logged and dropped; the previous configuration stays in effect.
//
// # Thread Safety
//
// Safe for concurrent use. Start should only be called once.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback func(Config)
}

// NewWatcher creates a watcher for the config file at path.
//
// The callback receives each successfully reloaded configuration.
func NewWatcher(path string, callback func(Config)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, watcher: watcher, callback: callback}, nil
}

// Start begins watching for config changes.
//
// Blocks until the context is cancelled. Should be run in a goroutine:
//
//	w, _ := config.NewWatcher(path, onReload)
//	go w.Start(ctx)
func (w *Watcher) Start(ctx context.Context) {
	if err := w.watcher.Add(w.path); err != nil {
		slog.Warn("failed to watch config file",
			"path", w.path,
			"error", err)
		return
	}
	slog.Debug("started watching config file", "path", w.path)

	// Editors often fire several events per save; debounce them.
	var timer *time.Timer
	reload := func() {
		cfg, err := Load(w.path)
		if err != nil {
			slog.Warn("config reload failed, keeping previous config",
				"path", w.path,
				"error", err)
			return
		}
		slog.Info("config reloaded", "path", w.path)
		if w.callback != nil {
			w.callback(cfg)
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			_ = w.watcher.Close()
			return
		}
	}
}
