package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCapacity is used for array scenarios that omit capacity.
const DefaultCapacity = 10

// Store kinds.
const (
	StoreArray = "array"
	StoreList  = "list"
)

// Operations.
const (
	OpInsert  = "insert"
	OpRemove  = "remove"
	OpList    = "list"
	OpSearch  = "search"
	OpBSearch = "bsearch"
	OpSort    = "sort"
)

// OutcomeOK is reported by every step that succeeds or finds its target.
// Failures report the inventory error code (FULL, NOT_FOUND, ...).
const OutcomeOK = "OK"

// Scenario is a scripted session against one store.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Store selects the representation: "array" (default) or "list".
	Store string `yaml:"store,omitempty"`

	// Capacity bounds an array store. Ignored for lists.
	Capacity int `yaml:"capacity,omitempty"`

	// Steps run in order against a fresh store.
	Steps []Step `yaml:"steps"`
}

// Step is one operation and its optional expectation.
type Step struct {
	Op string `yaml:"op"`

	// Record holds raw input for insert; it goes through inventory.NewRecord.
	Record *RawRecord `yaml:"record,omitempty"`

	// Name is the target of remove and search.
	Name string `yaml:"name,omitempty"`

	// Field and Key drive bsearch. Key is a string for name/category and an
	// integer for priority.
	Field string `yaml:"field,omitempty"`
	Key   any    `yaml:"key,omitempty"`

	// Algorithm selects the sort.
	Algorithm string `yaml:"algorithm,omitempty"`

	// Expect is checked after the step runs. Unset fields are not checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// RawRecord is unvalidated record input.
type RawRecord struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Priority int    `yaml:"priority"`
}

// Expect lists the observable results a step must produce.
type Expect struct {
	Outcome     string   `yaml:"outcome,omitempty"`
	Index       *int     `yaml:"index,omitempty"`
	Comparisons *int     `yaml:"comparisons,omitempty"`
	Length      *int     `yaml:"length,omitempty"`
	Order       string   `yaml:"order,omitempty"`
	Names       []string `yaml:"names,omitempty"`
}

// Load reads, schema-checks and validates a scenario file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields, or fails validation.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := checkSchema(raw); err != nil {
		return nil, fmt.Errorf("schema violation: %w", err)
	}

	if s.Store == "" {
		s.Store = StoreArray
	}
	if s.Capacity == 0 {
		s.Capacity = DefaultCapacity
	}

	if err := validate(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// validate enforces the rules the schema cannot express: which fields each
// operation requires and which operations a list store supports.
func validate(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Store != StoreArray && s.Store != StoreList {
		return fmt.Errorf("store must be %q or %q, got %q", StoreArray, StoreList, s.Store)
	}
	if s.Capacity < 0 {
		return fmt.Errorf("capacity must be positive")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(s.Store, step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(store string, step Step) error {
	switch step.Op {
	case OpInsert:
		if step.Record == nil {
			return fmt.Errorf("record is required for insert")
		}
	case OpRemove, OpSearch:
		if step.Name == "" {
			return fmt.Errorf("name is required for %s", step.Op)
		}
	case OpList:
	case OpBSearch:
		if store == StoreList {
			return fmt.Errorf("bsearch is not supported on list stores")
		}
		if step.Field == "" || step.Key == nil {
			return fmt.Errorf("field and key are required for bsearch")
		}
	case OpSort:
		if store == StoreList {
			return fmt.Errorf("sort is not supported on list stores")
		}
		if step.Algorithm == "" {
			return fmt.Errorf("algorithm is required for sort")
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	if step.Expect != nil && step.Expect.Index != nil && store == StoreList {
		return fmt.Errorf("index cannot be expected on list stores")
	}
	return nil
}
