package proto

import "time"

// Urn identifies an entity, such as a project or a maintainer.
type Urn = string

// Anchor is the content hash of a project's canonical state.
type Anchor struct {
	StateHash string `json:"stateHash"`
}

// Project is a remote repository anchored to a content hash of its state.
type Project struct {
	ID     Urn    `json:"id"`
	Anchor Anchor `json:"anchor"`
}

// Info is the project metadata at its head.
type Info struct {
	Head string `json:"head"`
	Meta Meta   `json:"meta"`
}

// Meta holds the descriptive project metadata.
type Meta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Maintainers []Urn  `json:"maintainers"`
}

// Stats holds aggregate repository statistics.
type Stats struct {
	Commits      int `json:"commits"`
	Contributors int `json:"contributors"`
}

// Author is a commit author or committer.
type Author struct {
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// CommitHeader is the header of a commit.
type CommitHeader struct {
	Author    Author `json:"author"`
	Committer Author `json:"committer"`
	// CommitterTime is the commit time in seconds since the Unix epoch.
	CommitterTime int64  `json:"committerTime"`
	Description   string `json:"description"`
	Sha1          string `json:"sha1"`
	Summary       string `json:"summary"`
}

// Time returns the commit time.
func (c CommitHeader) Time() time.Time {
	return time.Unix(c.CommitterTime, 0)
}

// EntryInfo describes a tree entry and the last commit that touched it.
type EntryInfo struct {
	Name       string       `json:"name"`
	ObjectType ObjectType   `json:"objectType"`
	LastCommit CommitHeader `json:"lastCommit"`
}

// Entry is a single tree entry.
type Entry struct {
	Path string    `json:"path"`
	Info EntryInfo `json:"info"`
}

// IsTree returns true if the entry is a directory.
func (e Entry) IsTree() bool {
	return e.Info.ObjectType == ObjectTree
}

// IsBlob returns true if the entry is a file.
func (e Entry) IsBlob() bool {
	return e.Info.ObjectType == ObjectBlob
}

// Tree is a directory listing at a commit.
type Tree struct {
	Path    string    `json:"path"`
	Info    EntryInfo `json:"info"`
	Entries []Entry   `json:"entries"`
	Stats   Stats     `json:"stats"`
}

// Blob is file content at a commit.
// Binary blobs carry no displayable content; HTML blobs carry content that
// was rendered by the server.
type Blob struct {
	Binary  bool      `json:"binary,omitempty"`
	HTML    bool      `json:"html,omitempty"`
	Content string    `json:"content"`
	Path    string    `json:"path"`
	Info    EntryInfo `json:"info"`
}
