// Package snapshot provides a read-only store of project API responses
// loaded from JSON files.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pview-dev/pview/pkg/proto"
	"github.com/pview-dev/pview/pkg/utils"
)

var (
	// ErrProjectNotFound is returned when a project is not in the store.
	ErrProjectNotFound = errors.New("project not found")

	// ErrCommitNotFound is returned when a commit is not in a snapshot.
	ErrCommitNotFound = errors.New("commit not found")

	// ErrFileNotFound is returned when a tree, blob, or readme is not in a
	// commit.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidProject is returned when a snapshot has an invalid project
	// id.
	ErrInvalidProject = errors.New("invalid project")

	// ErrDuplicateProject is returned when two snapshots share a project id.
	ErrDuplicateProject = errors.New("duplicate project")
)

// HeadCommit is the commit name that resolves to the project head.
const HeadCommit = "head"

// Snapshot is the state of one project.
type Snapshot struct {
	Project proto.Project     `json:"project"`
	Info    proto.Info        `json:"info"`
	Commits map[string]Commit `json:"commits"`
}

// Commit holds the trees and blobs of a project at one commit.
type Commit struct {
	// Trees maps a directory path to its listing. The root is "".
	Trees map[string]proto.Tree `json:"trees"`
	// Blobs maps a file path to its content.
	Blobs map[string]proto.Blob `json:"blobs"`
	// Readme is the path of the readme blob, if any.
	Readme string `json:"readme,omitempty"`
}

// Store is a set of snapshots keyed by project id.
type Store struct {
	mu        sync.RWMutex
	snapshots map[proto.Urn]*Snapshot
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		snapshots: make(map[proto.Urn]*Snapshot),
	}
}

// Load reads every *.json file of dir into a new Store.
func Load(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	s := New()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, e.Name())
		snap, err := readFile(path)
		if err != nil {
			return nil, err
		}

		if err := s.Add(snap); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return s, nil
}

func readFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close() // nolint: errcheck
	var snap Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &snap, nil
}

// Add adds a snapshot to the store. Tree and blob paths are sanitized and
// every object type must be a blob or a tree.
func (s *Store) Add(snap *Snapshot) error {
	id := snap.Project.ID
	if err := utils.ValidateProjectID(id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}

	commits, err := normalizeCommits(snap.Commits)
	if err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}

	snap = &Snapshot{
		Project: snap.Project,
		Info:    snap.Info,
		Commits: commits,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snapshots[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProject, id)
	}

	s.snapshots[id] = snap
	return nil
}

// normalizeCommits returns a copy of commits keyed by sanitized paths.
func normalizeCommits(commits map[string]Commit) (map[string]Commit, error) {
	out := make(map[string]Commit, len(commits))
	for sha, c := range commits {
		nc := Commit{
			Trees:  make(map[string]proto.Tree, len(c.Trees)),
			Blobs:  make(map[string]proto.Blob, len(c.Blobs)),
			Readme: utils.SanitizePath(c.Readme),
		}

		for dir, tree := range c.Trees {
			if err := checkObjectType(tree.Info, sha, dir); err != nil {
				return nil, err
			}
			for _, e := range tree.Entries {
				if err := checkObjectType(e.Info, sha, e.Path); err != nil {
					return nil, err
				}
			}

			key := utils.SanitizePath(dir)
			if _, ok := nc.Trees[key]; ok {
				return nil, fmt.Errorf("%w: %s: duplicate tree %q", ErrInvalidProject, sha, key)
			}
			nc.Trees[key] = tree
		}

		for file, blob := range c.Blobs {
			if err := checkObjectType(blob.Info, sha, file); err != nil {
				return nil, err
			}

			key := utils.SanitizePath(file)
			if _, ok := nc.Blobs[key]; ok {
				return nil, fmt.Errorf("%w: %s: duplicate blob %q", ErrInvalidProject, sha, key)
			}
			nc.Blobs[key] = blob
		}

		out[sha] = nc
	}

	return out, nil
}

func checkObjectType(info proto.EntryInfo, commit, path string) error {
	if !info.ObjectType.Valid() {
		return fmt.Errorf("%w: %s: %q", proto.ErrInvalidObjectType, commit, path)
	}
	return nil
}

// Len returns the number of projects in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// Projects returns the projects of the store sorted by id.
func (s *Store) Projects() []proto.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]proto.Project, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		projects = append(projects, snap.Project)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})

	return projects
}

func (s *Store) snapshot(id proto.Urn) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	return snap, nil
}

func (s *Store) commit(id proto.Urn, commit string) (*Commit, error) {
	snap, err := s.snapshot(id)
	if err != nil {
		return nil, err
	}

	if commit == HeadCommit {
		commit = snap.Info.Head
	}

	c, ok := snap.Commits[commit]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommitNotFound, commit)
	}

	return &c, nil
}

// Info returns the info of a project.
func (s *Store) Info(id proto.Urn) (*proto.Info, error) {
	snap, err := s.snapshot(id)
	if err != nil {
		return nil, err
	}

	info := snap.Info
	return &info, nil
}

// Tree returns the listing of dir at commit.
func (s *Store) Tree(id proto.Urn, commit, dir string) (*proto.Tree, error) {
	c, err := s.commit(id, commit)
	if err != nil {
		return nil, err
	}

	dir = utils.SanitizePath(dir)
	tree, ok := c.Trees[dir]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, dir)
	}

	return &tree, nil
}

// Blob returns the content of file at commit.
func (s *Store) Blob(id proto.Urn, commit, file string) (*proto.Blob, error) {
	c, err := s.commit(id, commit)
	if err != nil {
		return nil, err
	}

	file = utils.SanitizePath(file)
	blob, ok := c.Blobs[file]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, file)
	}

	return &blob, nil
}

// Readme returns the readme blob at commit.
func (s *Store) Readme(id proto.Urn, commit string) (*proto.Blob, error) {
	c, err := s.commit(id, commit)
	if err != nil {
		return nil, err
	}

	if c.Readme == "" {
		return nil, fmt.Errorf("%w: readme", ErrFileNotFound)
	}

	blob, ok := c.Blobs[c.Readme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, c.Readme)
	}

	return &blob, nil
}
