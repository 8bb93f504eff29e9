// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchAndReprobe re-runs probeFn whenever any of paths changes on
// disk, until ctx is canceled. Grounded on conduit's file-watcher use
// of fsnotify for hot-reloading a capture/config file.
func watchAndReprobe(ctx context.Context, log *zap.Logger, paths []string, probeFn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.Info("input changed, re-probing", zap.String("path", ev.Name))
				probeFn()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
