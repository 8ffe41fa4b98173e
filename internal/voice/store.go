package voice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ktsarnakliyski/JobSpresso/internal/errors"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// Store is a file-backed voice profile store. Each profile lives in its own
// <id>.json file under the store directory; an in-memory index serves reads.
// External edits to the directory are picked up by the file watcher.
type Store struct {
	mu       sync.RWMutex
	dir      string
	profiles map[string]*types.VoiceProfile

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer
	stopChan      chan struct{}
	reloadChan    chan struct{}
	running       bool

	logger *errors.Logger
}

// NewStore creates the store, ensuring the directory exists and loading any
// profiles already present.
func NewStore(dir string, logger *errors.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"Voice profile directory is not configured", nil)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to create voice profile directory", err)
	}

	s := &Store{
		dir:           dir,
		profiles:      make(map[string]*types.VoiceProfile),
		debounceDelay: time.Second,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		logger:        logger,
	}

	if err := s.reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// List returns all profiles sorted by name
func (s *Store) List() []types.VoiceProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]types.VoiceProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

// Get returns the profile with the given id
func (s *Store) Get(id string) (*types.VoiceProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, errors.NewIOError(errors.ErrCodeProfileNotFound,
			fmt.Sprintf("Voice profile not found: %s", id), nil)
	}
	clone := *p
	return &clone, nil
}

// Default returns the profile marked as default, or nil when none is
func (s *Store) Default() *types.VoiceProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.IsDefault {
			clone := *p
			return &clone
		}
	}
	return nil
}

// Create persists a new profile. An empty ID gets a generated UUID.
func (s *Store) Create(profile types.VoiceProfile) (*types.VoiceProfile, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Voice profile name is required", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if _, exists := s.profiles[profile.ID]; exists {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Voice profile already exists: %s", profile.ID), nil)
	}

	if profile.IsDefault {
		if err := s.clearDefaultLocked(profile.ID); err != nil {
			return nil, err
		}
	}

	if err := s.writeProfileLocked(&profile); err != nil {
		return nil, err
	}

	s.profiles[profile.ID] = &profile
	clone := profile
	return &clone, nil
}

// Update replaces an existing profile. The path ID wins over any ID in the body.
func (s *Store) Update(id string, profile types.VoiceProfile) (*types.VoiceProfile, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Voice profile name is required", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return nil, errors.NewIOError(errors.ErrCodeProfileNotFound,
			fmt.Sprintf("Voice profile not found: %s", id), nil)
	}

	profile.ID = id

	if profile.IsDefault {
		if err := s.clearDefaultLocked(id); err != nil {
			return nil, err
		}
	}

	if err := s.writeProfileLocked(&profile); err != nil {
		return nil, err
	}

	s.profiles[id] = &profile
	clone := profile
	return &clone, nil
}

// Delete removes a profile and its backing file
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return errors.NewIOError(errors.ErrCodeProfileNotFound,
			fmt.Sprintf("Voice profile not found: %s", id), nil)
	}

	if err := os.Remove(s.profilePath(id)); err != nil && !os.IsNotExist(err) {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to delete voice profile file", err)
	}

	delete(s.profiles, id)
	return nil
}

// Count returns the number of stored profiles
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

func (s *Store) profilePath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// clearDefaultLocked unsets IsDefault on every other profile, persisting the
// change. Caller must hold the write lock.
func (s *Store) clearDefaultLocked(keepID string) error {
	for id, p := range s.profiles {
		if id == keepID || !p.IsDefault {
			continue
		}
		p.IsDefault = false
		if err := s.writeProfileLocked(p); err != nil {
			return err
		}
	}
	return nil
}

// writeProfileLocked writes a profile file atomically via temp file + rename
func (s *Store) writeProfileLocked(profile *types.VoiceProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode voice profile", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+profile.ID+"-*.tmp")
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to create temporary profile file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to write voice profile file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to close voice profile file", err)
	}

	if err := os.Rename(tmpName, s.profilePath(profile.ID)); err != nil {
		_ = os.Remove(tmpName)
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to persist voice profile file", err)
	}

	return nil
}

// reload rebuilds the in-memory index from the profile directory. Unreadable
// or malformed files are skipped with a warning so one bad file cannot take
// down the store.
func (s *Store) reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to read voice profile directory", err)
	}

	profiles := make(map[string]*types.VoiceProfile)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Skipping unreadable voice profile file", "file", name, "error", err)
			}
			continue
		}

		var profile types.VoiceProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			if s.logger != nil {
				s.logger.Warn("Skipping malformed voice profile file", "file", name, "error", err)
			}
			continue
		}

		if profile.ID == "" {
			profile.ID = strings.TrimSuffix(name, ".json")
		}
		profiles[profile.ID] = &profile
	}

	s.mu.Lock()
	s.profiles = profiles
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Debug("Voice profiles loaded", "dir", s.dir, "count", len(profiles))
	}
	return nil
}

// Watch starts the directory watcher so external profile edits are picked up
// without a restart.
func (s *Store) Watch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("voice profile watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", s.dir, err)
	}

	s.fsWatcher = watcher
	s.running = true
	go s.watchLoop()

	if s.logger != nil {
		s.logger.Info("Voice profile watcher started",
			"dir", s.dir,
			"debounce_delay", s.debounceDelay)
	}
	return nil
}

// Stop stops the directory watcher
func (s *Store) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	close(s.stopChan)

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	if s.fsWatcher != nil {
		if err := s.fsWatcher.Close(); err != nil {
			if s.logger != nil {
				s.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	s.running = false

	if s.logger != nil {
		s.logger.Info("Voice profile watcher stopped")
	}
	return nil
}

// IsWatching returns whether the directory watcher is running
func (s *Store) IsWatching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// watchLoop is the main event loop for directory watching
func (s *Store) watchLoop() {
	for {
		select {
		case event, ok := <-s.fsWatcher.Events:
			if !ok {
				return
			}
			if s.shouldProcessEvent(event) {
				s.scheduleReload()
			}

		case err, ok := <-s.fsWatcher.Errors:
			if !ok {
				return
			}
			if s.logger != nil {
				s.logger.LogError(err, "File watcher error")
			}

		case <-s.reloadChan:
			if s.logger != nil {
				s.logger.Info("Voice profile directory changed, reloading")
			}
			if err := s.reload(); err != nil && s.logger != nil {
				s.logger.LogError(err, "Failed to reload voice profiles")
			}

		case <-s.stopChan:
			return
		}
	}
}

// shouldProcessEvent filters for JSON profile changes, ignoring temp files
func (s *Store) shouldProcessEvent(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, ".json") || strings.HasPrefix(base, ".") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

// scheduleReload schedules a debounced reload
func (s *Store) scheduleReload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	s.debounceTimer = time.AfterFunc(s.debounceDelay, func() {
		select {
		case s.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}
