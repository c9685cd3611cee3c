package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
)

// settleDelay groups the bursts of events editors produce on save
const settleDelay = 150 * time.Millisecond

// watchFiles calls onChange once the given files stop changing, until ctx is
// done. Parent directories are watched so files replaced by rename are seen.
func watchFiles(ctx context.Context, files []string, onChange func()) error {
	logger := logging.GetLogger("cli.watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to start file watcher")
	}
	defer watcher.Close()

	wanted := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", f)
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, errors.ErrSourceRead, "failed to watch %s", dir)
		}
	}

	timer := time.NewTimer(settleDelay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !wanted[filepath.Clean(ev.Name)] || ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("Rule file changed")
			timer.Reset(settleDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("File watcher error")
		case <-timer.C:
			onChange()
		}
	}
}
