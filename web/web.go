// Package web provides an HTTP API for tokenizing AppleScript sources.
//
// The server tokenizes a set of script files on startup and serves their
// token streams as JSON. Ad-hoc sources can be posted for tokenization.
// With watching enabled, changed files are re-tokenized and connected
// clients are notified over Server-Sent Events.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
// Only files loaded at startup (or found later under the same paths) are served.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/osalex/loader"
	"github.com/robinvdvleuten/osalex/telemetry"
)

// Server serves token streams over HTTP.
type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool

	// MaxBodyBytes caps the size of sources posted to /api/tokenize.
	MaxBodyBytes int64

	mu     sync.RWMutex
	result *loader.Result

	// paths are the files and directories passed to New.
	paths []string

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// DefaultMaxBodyBytes is the default cap on posted sources.
const DefaultMaxBodyBytes = 4 << 20

func New(port int, paths ...string) *Server {
	return NewWithVersion(port, "", "", paths...)
}

func NewWithVersion(port int, version, commitSHA string, paths ...string) *Server {
	return &Server{
		Port:         port,
		Host:         "127.0.0.1",
		Version:      version,
		CommitSHA:    commitSHA,
		MaxBodyBytes: DefaultMaxBodyBytes,
		paths:        paths,
		result:       &loader.Result{},
		sseClients:   make(map[chan string]struct{}),
	}
}

func (s *Server) Start(ctx context.Context) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	loadCtx := telemetry.WithTimer(ctx, timer)
	if err := s.reload(loadCtx); err != nil {
		return fmt.Errorf("failed to load scripts: %w", err)
	}

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	setupTimer := timer.Child("web.setup_router")
	mux := s.setupRouter()
	setupTimer.End()

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/tokens", s.handleGetTokens)
	mux.HandleFunc("POST /api/tokenize", s.handleTokenize)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// reload tokenizes every configured path again.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reload(ctx context.Context) error {
	if len(s.paths) == 0 {
		return nil
	}

	result, err := loader.New(loader.WithRecursive()).Load(ctx, s.paths...)
	if err != nil {
		return err // I/O error; lex errors are kept per file
	}

	s.mu.Lock()
	s.result = result
	s.mu.Unlock()

	return nil
}

// watchList returns the loaded files plus every configured directory, so
// that scripts created later are noticed too.
func (s *Server) watchList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]string, 0, len(s.result.Files)+len(s.paths))
	for _, f := range s.result.Files {
		list = append(list, f.Filename)
	}
	for _, p := range s.paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			list = append(list, p)
		}
	}
	return list
}

// startWatcher starts a file watcher for the loaded scripts.
// It re-tokenizes and broadcasts SSE events when files change.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	for _, file := range s.watchList() {
		if err := watcher.Add(file); err != nil {
			log.Printf("Warning: failed to watch %s: %v", file, err)
		}
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove and Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleFileChange re-tokenizes, refreshes the watch list and notifies clients.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	before := make(map[string]bool)
	for _, f := range s.watchList() {
		before[f] = true
	}

	if err := s.reload(ctx); err != nil {
		log.Printf("Failed to reload scripts: %v", err)
		return
	}

	after := make(map[string]bool)
	for _, f := range s.watchList() {
		after[f] = true
	}

	for file := range before {
		if !after[file] {
			_ = watcher.Remove(file)
		}
	}

	// Re-add everything to catch files re-created by atomic saves.
	for file := range after {
		if err := watcher.Add(file); err != nil {
			log.Printf("Warning: failed to watch %s: %v", file, err)
		}
	}

	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}

// clients returns the number of connected SSE clients.
func (s *Server) clients() int {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	return len(s.sseClients)
}
