package folder

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/refdesk/internal/logger"
)

// DefaultSettle is how long the folder must stay quiet before a change is reported.
const DefaultSettle = 2 * time.Second

// Watch reports changes to PDFs in the library folder. Bursts of events,
// such as a large file being copied in, collapse into one notification sent
// once the folder has been quiet for settle. The channel closes when ctx ends.
func (l *Library) Watch(ctx context.Context, settle time.Duration) (<-chan struct{}, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(l.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", l.dir, err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()

		timer := time.NewTimer(settle)
		timer.Stop()
		pending := false

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !IsPDF(event.Name) || event.Op == fsnotify.Chmod {
					continue
				}
				logger.Debug("library: %s %s", event.Op, event.Name)
				pending = true
				timer.Reset(settle)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("library watcher: %v", err)

			case <-timer.C:
				if !pending {
					continue
				}
				pending = false
				select {
				case changes <- struct{}{}:
				default:
					// A notification is already queued.
				}
			}
		}
	}()

	return changes, nil
}
