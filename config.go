package piecegraph

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/voidshard/piecegraph/internal/placement"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfiguration wraps every problem with the config or library that
	// stops a run before it starts.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrEmptyLibrary implies no prototypes were given at all
	ErrEmptyLibrary = errors.New("empty prototype library")

	// ErrNoEligiblePrototypes implies nothing in the library could seed a run
	// (every non-terminal prototype is disabled, weightless or has no sockets)
	ErrNoEligiblePrototypes = errors.New("no eligible prototype to seed with")

	// ErrInvalidTarget implies TargetPieces is less than 1
	ErrInvalidTarget = errors.New("target piece count must be at least 1")

	// ErrInvalidSocket implies a prototype socket can't be used (eg. zero facing)
	ErrInvalidSocket = errors.New("invalid socket")
)

// MaxWeight is the largest selection weight a prototype may have. Weights are
// summed when selecting, this keeps the sum well inside an int.
const MaxWeight = 1 << 20

// Thresholds bound how far apart (distance) & how far from anti-parallel
// (angle, degrees) two joined sockets may be.
type Thresholds = placement.Thresholds

var (
	// DefaultThresholds for normal placements
	DefaultThresholds = placement.DefaultThresholds

	// RelaxedThresholds used when forcing completion. These are also the
	// hard limit, nothing worse is ever accepted.
	RelaxedThresholds = placement.RelaxedThresholds
)

// Config holds settings for a generation run. A run never modifies it.
type Config struct {
	// TargetPieces to place (including the seed, not including caps). Required.
	TargetPieces int `yaml:"target_pieces"`

	// Branching grows from every open socket (a work queue), otherwise we
	// grow a single chain.
	Branching bool `yaml:"branching"`

	// BranchProbability is the chance [0,1] of forcing a non-terminal piece
	// onto a socket when depth allows.
	BranchProbability float64 `yaml:"branch_probability"`

	// MaxDepth in links from the seed, 0 or less is "no max"
	MaxDepth int `yaml:"max_depth"`

	// OverlapRadius is the min distance between any two piece positions
	OverlapRadius float64 `yaml:"overlap_radius"`

	// PreventLoops rejects candidates that would join back onto their own component
	PreventLoops bool `yaml:"prevent_loops"`

	// LoopFactor scales OverlapRadius for the loop proximity check (default 1.5)
	LoopFactor float64 `yaml:"loop_factor"`

	// ForceCompletion relaxes checks after ForceAfterRejections rejections in a row
	// so a run can reach TargetPieces. Pieces placed like this are flagged.
	ForceCompletion      bool `yaml:"force_completion"`
	ForceAfterRejections int  `yaml:"force_after_rejections"`

	// EndCapping attaches terminal pieces to every open socket once growth ends
	EndCapping bool `yaml:"end_capping"`

	// MaxAttempts at placing a candidate on one socket before giving up on it
	MaxAttempts int `yaml:"max_attempts"`

	// Seed for rng (random number chosen if not set)
	Seed int64 `yaml:"seed"`

	// Thresholds for joint quality, zero values mean defaults
	Thresholds        Thresholds `yaml:"thresholds"`
	RelaxedThresholds Thresholds `yaml:"relaxed_thresholds"`
}

// DefaultConfig returns reasonable settings for a small branching layout.
func DefaultConfig() *Config {
	return &Config{
		TargetPieces:         20,
		Branching:            true,
		BranchProbability:    0.5,
		MaxDepth:             0,
		OverlapRadius:        1.0,
		PreventLoops:         true,
		LoopFactor:           placement.DefaultLoopFactor,
		ForceCompletion:      false,
		ForceAfterRejections: 3,
		EndCapping:           true,
		MaxAttempts:          5,
		Thresholds:           DefaultThresholds,
		RelaxedThresholds:    RelaxedThresholds,
	}
}

// LoadConfig reads settings from a YAML file. Anything not in the file
// keeps its DefaultConfig value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate returns every problem with the config at once.
func (c *Config) Validate() error {
	var err error

	if c.TargetPieces < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: got %d", ErrInvalidTarget, c.TargetPieces))
	}
	if c.BranchProbability < 0 || c.BranchProbability > 1 || math.IsNaN(c.BranchProbability) {
		err = multierr.Append(err, fmt.Errorf("branch_probability %v outside of [0,1]", c.BranchProbability))
	}
	if c.OverlapRadius < 0 {
		err = multierr.Append(err, fmt.Errorf("overlap_radius %v is negative", c.OverlapRadius))
	}
	if c.LoopFactor < 0 {
		err = multierr.Append(err, fmt.Errorf("loop_factor %v is negative", c.LoopFactor))
	}
	if c.MaxAttempts < 0 {
		err = multierr.Append(err, fmt.Errorf("max_attempts %d is negative", c.MaxAttempts))
	}
	if c.ForceAfterRejections < 0 {
		err = multierr.Append(err, fmt.Errorf("force_after_rejections %d is negative", c.ForceAfterRejections))
	}
	if c.Thresholds.MaxDistance < 0 || c.Thresholds.MaxAngle < 0 {
		err = multierr.Append(err, fmt.Errorf("thresholds must not be negative"))
	}
	if c.RelaxedThresholds.MaxDistance < 0 || c.RelaxedThresholds.MaxAngle < 0 {
		err = multierr.Append(err, fmt.Errorf("relaxed_thresholds must not be negative"))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}

// resolved returns a copy of the config with unset values filled in.
func (c *Config) resolved() Config {
	r := *c
	if r.LoopFactor == 0 {
		r.LoopFactor = placement.DefaultLoopFactor
	}
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.ForceAfterRejections == 0 {
		r.ForceAfterRejections = 3
	}
	if r.Thresholds == (Thresholds{}) {
		r.Thresholds = DefaultThresholds
	}
	if r.RelaxedThresholds == (Thresholds{}) {
		r.RelaxedThresholds = RelaxedThresholds
	}
	return r
}

// LoadLibrary reads an ordered list of prototypes from a YAML file.
// Order matters: the same library order & seed always yield the same graph.
func LoadLibrary(path string) ([]*Prototype, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	var lib []*Prototype
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse library file: %w", err)
	}

	return lib, ValidateLibrary(lib)
}

// ValidateLibrary returns every problem with the given prototypes at once.
// Prototypes without sockets aren't an error, they just never get picked.
func ValidateLibrary(lib []*Prototype) error {
	if len(lib) == 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrEmptyLibrary)
	}

	var err error
	seen := map[string]bool{}
	for i, p := range lib {
		if p == nil {
			err = multierr.Append(err, fmt.Errorf("prototype %d is nil", i))
			continue
		}
		if p.ID == "" {
			err = multierr.Append(err, fmt.Errorf("prototype %d has no id", i))
		} else if seen[p.ID] {
			err = multierr.Append(err, fmt.Errorf("prototype id %q is used more than once", p.ID))
		}
		seen[p.ID] = true

		if p.Weight < 0 {
			err = multierr.Append(err, fmt.Errorf("prototype %q has negative weight %d", p.ID, p.Weight))
		} else if p.Weight > MaxWeight {
			err = multierr.Append(err, fmt.Errorf("prototype %q weight %d is over the max of %d", p.ID, p.Weight, MaxWeight))
		}
		for j, s := range p.Sockets {
			if s == nil {
				err = multierr.Append(err, fmt.Errorf("%w: prototype %q socket %d is nil", ErrInvalidSocket, p.ID, j))
				continue
			}
			if n := s.Direction.Norm(); n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
				err = multierr.Append(err, fmt.Errorf("%w: prototype %q socket %q faces nowhere", ErrInvalidSocket, p.ID, s.Name))
			}
			if n := s.Position.Norm(); math.IsNaN(n) || math.IsInf(n, 0) {
				err = multierr.Append(err, fmt.Errorf("%w: prototype %q socket %q has no usable position", ErrInvalidSocket, p.ID, s.Name))
			}
		}
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}
