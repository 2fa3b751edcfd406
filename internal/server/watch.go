package server

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchedDirs are the source directories whose changes trigger a rebuild.
func (s *Server) watchedDirs() []string {
	return []string{s.cfg.ContentDir, s.cfg.DataDir, s.cfg.StaticDir, s.cfg.LayoutsDir}
}

// newWatcher watches every directory below the site's source directories.
// fsnotify is not recursive, so each subdirectory is added on its own.
func (s *Server) newWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, root := range s.watchedDirs() {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			s.logger.Debug("directory not found, not watching", "dir", root)
			continue
		}
		s.logger.Debug("watching directory tree", "dir", root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				s.logger.Warn("error walking directory", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				if err := watcher.Add(path); err != nil {
					s.logger.Warn("failed to watch directory", "path", path, "error", err)
				}
			}
			return nil
		})
		if err != nil {
			s.logger.Warn("error during initial directory walk", "dir", root, "error", err)
		}
	}
	return watcher, nil
}

// watch rebuilds the site after changes settle for the debounce period. It
// returns when ctx is canceled or the watcher is closed.
func (s *Server) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			// New directories are not covered by the watches of their parent.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				s.logger.Debug("new directory created, adding to watcher", "dir", event.Name)
				if err := watcher.Add(event.Name); err != nil {
					s.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounce, func() {
				s.logger.Info("rebuilding site due to changes")
				if err := s.rebuild(ctx); err != nil {
					s.logger.Error("rebuild failed", "error", err)
					return
				}
				s.logger.Info("site rebuilt")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
