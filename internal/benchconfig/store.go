// Package benchconfig resolves versioned benchmark, placement, and
// course-rule configuration. Built-in fallback snapshots ship embedded
// in the binary so scoring keeps working when the primary source is
// unavailable; every snapshot is validated eagerly at load time.
package benchconfig

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/eduxlabs/llnd-engine/internal/domain"
	"github.com/eduxlabs/llnd-engine/internal/ports"
)

//go:embed fallbacks/*.yaml
var fallbackFS embed.FS

// fallbackLevels are the proficiency levels with embedded snapshots.
var fallbackLevels = []string{"3", "4", "5", "6", "8-9"}

var _ ports.ConfigStore = (*Store)(nil)

// decodeStrict rejects unknown fields so a typo in a snapshot fails
// loudly at load time instead of silently zeroing a table.
func decodeStrict(raw []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// Store is the configuration resolver. Registered snapshots (for
// example, rows loaded from a database) take precedence; the embedded
// fallbacks cover levels with no registered snapshot.
//
// Concurrency: Store is safe for concurrent use. Registration takes a
// write lock; resolution takes read locks.
type Store struct {
	mu sync.RWMutex

	registered map[string]domain.BenchmarkConfig
	fallbacks  map[string]domain.BenchmarkConfig
	placement  domain.PlacementConfig
	courses    domain.CourseRuleSet
}

// NewStore loads and validates the embedded fallback snapshots.
// A validation failure in any embedded file is a build defect and fails
// construction.
func NewStore() (*Store, error) {
	s := &Store{
		registered: make(map[string]domain.BenchmarkConfig),
		fallbacks:  make(map[string]domain.BenchmarkConfig, len(fallbackLevels)),
	}

	for _, level := range fallbackLevels {
		raw, err := fallbackFS.ReadFile(fmt.Sprintf("fallbacks/benchmark_%s.yaml", level))
		if err != nil {
			return nil, fmt.Errorf("reading embedded benchmark for level %s: %w", level, err)
		}
		var cfg domain.BenchmarkConfig
		if err := decodeStrict(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded benchmark for level %s: %w", level, err)
		}
		if err := ValidateBenchmark(&cfg); err != nil {
			return nil, err
		}
		s.fallbacks[level] = cfg
	}

	raw, err := fallbackFS.ReadFile("fallbacks/placement.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded placement config: %w", err)
	}
	if err := decodeStrict(raw, &s.placement); err != nil {
		return nil, fmt.Errorf("parsing embedded placement config: %w", err)
	}
	if err := ValidatePlacement(&s.placement); err != nil {
		return nil, err
	}

	raw, err = fallbackFS.ReadFile("fallbacks/courses.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded course rules: %w", err)
	}
	if err := decodeStrict(raw, &s.courses); err != nil {
		return nil, fmt.Errorf("parsing embedded course rules: %w", err)
	}
	if err := ValidateCourseRules(&s.courses); err != nil {
		return nil, err
	}

	return s, nil
}

// RegisterBenchmark installs a benchmark snapshot as the active
// configuration for its level, displacing the fallback. The snapshot is
// validated before it becomes visible.
func (s *Store) RegisterBenchmark(cfg domain.BenchmarkConfig) error {
	if err := ValidateBenchmark(&cfg); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered[cfg.Level] = cfg
	return nil
}

// SetPlacement replaces the active placement configuration after
// validation.
func (s *Store) SetPlacement(cfg domain.PlacementConfig) error {
	if err := ValidatePlacement(&cfg); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placement = cfg
	return nil
}

// SetCourseRules replaces the active course rule set after validation.
func (s *Store) SetCourseRules(rs domain.CourseRuleSet) error {
	if err := ValidateCourseRules(&rs); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = rs
	return nil
}

// ActiveBenchmark resolves the benchmark configuration for a level.
// The boolean reports whether the config came from a registered snapshot
// (true) or an embedded fallback (false). Unknown levels return
// domain.ErrConfigNotFound wrapped with the level key.
func (s *Store) ActiveBenchmark(_ context.Context, level string) (domain.BenchmarkConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cfg, ok := s.registered[level]; ok {
		return cfg, true, nil
	}
	if cfg, ok := s.fallbacks[level]; ok {
		return cfg, false, nil
	}
	return domain.BenchmarkConfig{}, false, ports.NewConfigError("benchmark/"+level, domain.ErrConfigNotFound)
}

// Placement returns the active placement configuration.
func (s *Store) Placement(_ context.Context) (domain.PlacementConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placement, nil
}

// CourseRules returns the active course-suitability rule set.
func (s *Store) CourseRules(_ context.Context) (domain.CourseRuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses, nil
}
