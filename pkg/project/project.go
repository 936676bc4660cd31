// Package project provides typed accessors for the remote project API.
//
// Every accessor builds the endpoint of one resource, performs exactly one
// GET through a Getter and returns the decoded record. Errors from the
// Getter are returned unchanged.
package project

import (
	"context"
	"fmt"

	"github.com/pview-dev/pview/pkg/proto"
)

// Getter performs a GET request on an API endpoint and decodes the JSON
// response into v. Params, when non-nil, is encoded into the query string.
type Getter interface {
	Get(ctx context.Context, endpoint string, params any, v any) error
}

// BlobOptions are the query options of a blob request.
type BlobOptions struct {
	// Highlight asks the server to render the content as highlighted HTML.
	Highlight bool `url:"highlight"`
}

// GetInfo returns the project info.
func GetInfo(ctx context.Context, g Getter, id proto.Urn) (*proto.Info, error) {
	var info proto.Info
	if err := g.Get(ctx, fmt.Sprintf("projects/%s", id), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetTree returns the directory listing of dir at commit. A dir of "/" is
// the project root.
func GetTree(ctx context.Context, g Getter, id proto.Urn, commit string, dir string) (*proto.Tree, error) {
	if dir == "/" {
		dir = ""
	}

	var tree proto.Tree
	if err := g.Get(ctx, fmt.Sprintf("projects/%s/tree/%s/%s", id, commit, dir), nil, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// GetBlob returns the content of file at commit.
func GetBlob(ctx context.Context, g Getter, id proto.Urn, commit string, file string, opts BlobOptions) (*proto.Blob, error) {
	var blob proto.Blob
	if err := g.Get(ctx, fmt.Sprintf("projects/%s/blob/%s/%s", id, commit, file), opts, &blob); err != nil {
		return nil, err
	}
	return &blob, nil
}

// GetReadme returns the README blob of the project at commit.
func GetReadme(ctx context.Context, g Getter, id proto.Urn, commit string) (*proto.Blob, error) {
	var blob proto.Blob
	if err := g.Get(ctx, fmt.Sprintf("projects/%s/readme/%s", id, commit), nil, &blob); err != nil {
		return nil, err
	}
	return &blob, nil
}
