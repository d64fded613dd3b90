package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocutover/open-api-specs/internal/envconfig"
	"github.com/gocutover/open-api-specs/oaserrors"
	"github.com/gocutover/open-api-specs/versions"
)

// treeInput selects the fragment tree a tool works on. Omitted fields fall
// back to the OASPECS_* environment.
type treeInput struct {
	Root      string `json:"root,omitempty"       jsonschema:"Fragment tree directory (default: OASPECS_ROOT or the working directory)"`
	APIPrefix string `json:"api_prefix,omitempty" jsonschema:"Path prefix carried by every operation (default: /api)"`
	DraftOnly *bool  `json:"draft_only,omitempty" jsonschema:"Restrict test version ranges to the draft (default: OASPECS_DRAFT_ONLY)"`
	Refresh   bool   `json:"refresh,omitempty"    jsonschema:"Discard the cached index and rescan the tree"`
}

// config merges the input over the environment defaults.
func (in treeInput) config() (*envconfig.Config, error) {
	c := *cfg
	if in.Root != "" {
		c.Root = in.Root
	}
	if in.APIPrefix != "" {
		c.APIPrefix = in.APIPrefix
	}
	if in.DraftOnly != nil {
		c.DraftOnly = *in.DraftOnly
	}
	// Tools report validation issues instead of failing on them.
	c.Strict = false

	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "root", Value: c.Root, Cause: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "root", Value: c.Root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &oaserrors.ConfigError{Option: "root", Value: c.Root, Message: "not a directory"}
	}
	c.Root = abs
	return &c, nil
}

// index returns the session's index for the selected tree.
func (in treeInput) index(ctx context.Context) (*versions.Index, error) {
	c, err := in.config()
	if err != nil {
		return nil, err
	}
	idx, err := indexes.get(c)
	if err != nil {
		return nil, err
	}
	if in.Refresh {
		idx.Reset()
	}
	if err := idx.Scan(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

// indexStore keeps one versions.Index per tree for the life of the server,
// so repeated tool calls reuse parsed fragments and compiled documents.
type indexStore struct {
	mu      sync.Mutex
	entries map[string]*versions.Index
}

var indexes = &indexStore{entries: make(map[string]*versions.Index)}

func (s *indexStore) get(c *envconfig.Config) (*versions.Index, error) {
	key := fmt.Sprintf("%s|%s|%t", c.Root, c.APIPrefix, c.DraftOnly)

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.entries[key]; ok {
		return idx, nil
	}
	idx, err := versions.New(c.IndexOptions(logger)...)
	if err != nil {
		return nil, err
	}
	s.entries[key] = idx
	return idx, nil
}

// reset drops every cached index.
func (s *indexStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*versions.Index)
}
