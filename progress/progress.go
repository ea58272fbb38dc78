// Package progress persists which levels the player has finished.
package progress

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	progressObject   = "progress"
	progressProperty = "levels"
)

// Record is the best result on one level.
type Record struct {
	BestTime float64 `yaml:"best_time"`
	Deaths   int     `yaml:"deaths"`
}

type Progress struct {
	Completed map[string]Record `yaml:"completed"`
	// Deaths counts deaths on levels not yet finished.
	Deaths map[string]int `yaml:"deaths"`
	// Last is the level the player should resume on.
	Last string `yaml:"last"`
}

func newProgress() Progress {
	return Progress{Completed: map[string]Record{}, Deaths: map[string]int{}}
}

// Store keeps Progress in memory and mirrors it to gdata. A nil manager runs
// the store in memory only.
type Store struct {
	manager  *gdata.Manager
	progress Progress
}

// Open creates a gdata-backed store for appName. When the platform storage
// cannot be opened the store falls back to memory only.
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Progress] Warning: storage unavailable: %v (progress will not be saved)", err)
		manager = nil
	}
	s := NewStore(manager)
	if err := s.Load(); err != nil {
		log.Printf("[Progress] Warning: %v (starting fresh)", err)
	}
	return s
}

func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager, progress: newProgress()}
}

// Persistent reports whether Save writes anywhere.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

func (s *Store) Load() error {
	s.progress = newProgress()
	if s.manager == nil || !s.manager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("progress: load: %w", err)
	}
	if err := s.decode(data); err != nil {
		return err
	}
	log.Printf("[Progress] loaded %d completed levels", len(s.progress.Completed))
	return nil
}

func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := s.encode()
	if err != nil {
		return err
	}
	if err := s.manager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("progress: save: %w", err)
	}
	return nil
}

func (s *Store) encode() ([]byte, error) {
	data, err := yaml.Marshal(s.progress)
	if err != nil {
		return nil, fmt.Errorf("progress: marshal: %w", err)
	}
	return data, nil
}

func (s *Store) decode(data []byte) error {
	p := newProgress()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("progress: unmarshal: %w", err)
	}
	if p.Completed == nil {
		p.Completed = map[string]Record{}
	}
	if p.Deaths == nil {
		p.Deaths = map[string]int{}
	}
	s.progress = p
	return nil
}

// Complete records a finished level and the level to resume on. It reports
// whether elapsed beat the previous best.
func (s *Store) Complete(level, next string, elapsed float64) bool {
	rec, seen := s.progress.Completed[level]
	improved := !seen || elapsed < rec.BestTime
	if improved {
		rec.BestTime = elapsed
	}
	rec.Deaths += s.progress.Deaths[level]
	delete(s.progress.Deaths, level)
	s.progress.Completed[level] = rec

	if next != "" {
		s.progress.Last = next
	} else {
		s.progress.Last = level
	}
	return improved
}

func (s *Store) RecordDeath(level string) {
	s.progress.Deaths[level]++
}

func (s *Store) Completed(level string) (Record, bool) {
	rec, ok := s.progress.Completed[level]
	return rec, ok
}

// Resume returns the level to start on, or fallback when nothing was saved.
func (s *Store) Resume(fallback string) string {
	if s.progress.Last == "" {
		return fallback
	}
	return s.progress.Last
}
