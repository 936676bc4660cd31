package project

import "strings"

// PathOptions identifies a location within a project.
type PathOptions struct {
	// ProjectID is the project identifier. It is required.
	ProjectID string
	// Org is the organization owning the project, if any.
	Org string
	// Commit is the commit reference. When empty and Path is set, the
	// location resolves against the latest commit ("head").
	Commit string
	// Path is a file or directory path inside the project.
	Path string
}

// Path returns the browse path of a project location:
//
//	/[orgs/{org}/]projects/{id}[/{commit}|/head][/{path}]
func Path(opts PathOptions) string {
	segments := make([]string, 0, 6)
	if opts.Org != "" {
		segments = append(segments, "orgs", opts.Org)
	}
	segments = append(segments, "projects", opts.ProjectID)

	if opts.Commit != "" {
		segments = append(segments, opts.Commit)
	} else if opts.Path != "" {
		segments = append(segments, "head")
	}

	if opts.Path != "" {
		segments = append(segments, opts.Path)
	}

	return "/" + strings.Join(segments, "/")
}
