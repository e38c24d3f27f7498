package fieldset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of file events into one reload.
const DefaultDebounce = 100 * time.Millisecond

// Watch loads dir, hands the store to onChange and reloads it whenever a
// field set file in dir is written, created, removed or renamed. Reload
// failures go to onError and the previous store stays current. Watch blocks
// until ctx is done; callbacks run on the calling goroutine.
func Watch(ctx context.Context, dir string, onChange func(*Store), onError func(error)) error {
	if onChange == nil {
		return errors.New("fieldset: watch requires an onChange callback")
	}
	if onError == nil {
		onError = func(error) {}
	}

	store, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return err
	}
	onChange(store)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fieldset: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("fieldset: watch %s: %w", dir, err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsDocumentFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DefaultDebounce)
			} else {
				timer.Reset(DefaultDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			next, err := LoadFS(os.DirFS(dir))
			if err != nil {
				onError(err)
				continue
			}
			onChange(next)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(fmt.Errorf("fieldset: watch %s: %w", dir, err))
		}
	}
}
