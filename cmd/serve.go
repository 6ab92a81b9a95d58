package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/adnanhd/adnanhd.github.io/internal/site"
)

const debounceDuration = 500 * time.Millisecond

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a local
web server to serve your output directory. It also watches the data, content,
layouts and static directories for changes and rebuilds the site.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		builder, err := site.NewBuilder(appConfig, logger)
		if err != nil {
			return err
		}

		logger.Info("Performing initial build...")
		if _, err := builder.Build(ctx); err != nil {
			return fmt.Errorf("initial build failed, fix the issues and try again: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		for _, root := range watchRoots() {
			watchTree(watcher, root, logger)
		}
		go watchLoop(ctx, watcher, logger, func() {
			logger.Info("Rebuilding site due to changes...")
			if _, err := builder.Build(ctx); err != nil {
				logger.Error("Error during rebuild", "error", err)
				return
			}
			logger.Info("Site rebuilt successfully")
		})

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort),
			Handler:           devHandler(appConfig.OutputDir),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			logger.Info("Serving site", "dir", appConfig.OutputDir, "url", fmt.Sprintf("http://localhost:%d", serverPort))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("failed to start HTTP server: %w", err)
		case <-ctx.Done():
		}

		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// watchRoots lists the directories whose changes trigger a rebuild.
func watchRoots() []string {
	roots := []string{appConfig.ContentDir, appConfig.LayoutsDir, appConfig.StaticDir}
	if !appConfig.RemoteData() {
		roots = append([]string{appConfig.DataDir}, roots...)
	}
	return roots
}

// watchTree adds root and every directory below it to the watcher.
func watchTree(watcher *fsnotify.Watcher, root string, logger *slog.Logger) {
	if root == "" {
		return
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		logger.Debug("Directory not found, not watching", "dir", root)
		return
	}

	logger.Debug("Setting up watch", "dir", root)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error walking directory", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				logger.Warn("Failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("Error during initial directory walk", "dir", root, "error", err)
	}
}

// watchLoop calls rebuild once the watched trees have been quiet for
// debounceDuration after a change. It returns when ctx is done or the
// watcher is closed.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, logger *slog.Logger, rebuild func()) {
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
			logger.Debug("Change detected", "path", event.Name, "op", event.Op.String())

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn("Error adding new directory to watcher", "path", event.Name, "error", err)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, rebuild)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error", "error", err)
		}
	}
}

// devHandler serves dir without caching and refuses directory listings.
func devHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)), "index.html")); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
