package project

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/pview-dev/pview/pkg/proto"
)

type call struct {
	endpoint string
	params   any
}

// fakeGetter records calls and decodes a canned response into v.
type fakeGetter struct {
	calls    []call
	response any
	err      error
}

var _ Getter = (*fakeGetter)(nil)

func (f *fakeGetter) Get(_ context.Context, endpoint string, params any, v any) error {
	f.calls = append(f.calls, call{endpoint: endpoint, params: params})
	if f.err != nil {
		return f.err
	}
	bts, err := json.Marshal(f.response)
	if err != nil {
		return err
	}
	return json.Unmarshal(bts, v)
}

func testCommit() proto.CommitHeader {
	author := proto.Author{Name: "cloudhead", Email: "cloudhead@example.com"}
	return proto.CommitHeader{
		Author:        author,
		Committer:     author,
		CommitterTime: 1588160813,
		Sha1:          "223aaf87d6ea62eef0014857640fd7c8dd0f80b5",
		Summary:       "Add the proxy",
	}
}

func TestGetInfo(t *testing.T) {
	is := is.New(t)
	want := proto.Info{
		Head: "223aaf87d6ea62eef0014857640fd7c8dd0f80b5",
		Meta: proto.Meta{
			Name:        "radicle-upstream",
			Description: "Desktop client for radicle",
			Maintainers: []proto.Urn{"rad:git:hwd1yre"},
		},
	}
	g := &fakeGetter{response: want}
	info, err := GetInfo(context.Background(), g, "rad:git:hnrk")
	is.NoErr(err)
	is.Equal(*info, want)
	is.Equal(len(g.calls), 1)
	is.Equal(g.calls[0].endpoint, "projects/rad:git:hnrk")
	is.Equal(g.calls[0].params, nil)
}

func TestGetTree(t *testing.T) {
	is := is.New(t)
	want := proto.Tree{
		Path: "src",
		Info: proto.EntryInfo{Name: "src", ObjectType: proto.ObjectTree, LastCommit: testCommit()},
		Entries: []proto.Entry{
			{Path: "src/b.ts", Info: proto.EntryInfo{Name: "b.ts", ObjectType: proto.ObjectBlob, LastCommit: testCommit()}},
			{Path: "src/a", Info: proto.EntryInfo{Name: "a", ObjectType: proto.ObjectTree, LastCommit: testCommit()}},
		},
		Stats: proto.Stats{Commits: 10, Contributors: 2},
	}
	g := &fakeGetter{response: want}
	tree, err := GetTree(context.Background(), g, "p1", "abc123", "src")
	is.NoErr(err)
	is.Equal(len(g.calls), 1)
	is.Equal(g.calls[0].endpoint, "projects/p1/tree/abc123/src")
	is.Equal(tree.Path, want.Path)
	is.Equal(tree.Entries, want.Entries)
	is.Equal(tree.Stats, want.Stats)
}

func TestGetTreeRoot(t *testing.T) {
	is := is.New(t)
	g := &fakeGetter{response: proto.Tree{Info: proto.EntryInfo{ObjectType: proto.ObjectTree}}}
	_, err := GetTree(context.Background(), g, "p1", "abc123", "/")
	is.NoErr(err)
	_, err = GetTree(context.Background(), g, "p1", "abc123", "")
	is.NoErr(err)
	is.Equal(len(g.calls), 2)
	is.Equal(g.calls[0].endpoint, g.calls[1].endpoint)
	is.Equal(g.calls[0].endpoint, "projects/p1/tree/abc123/")
}

func TestGetBlob(t *testing.T) {
	is := is.New(t)
	want := proto.Blob{
		Content: "console.log('hi')\n",
		Path:    "src/main.ts",
		Info:    proto.EntryInfo{Name: "main.ts", ObjectType: proto.ObjectBlob, LastCommit: testCommit()},
	}
	g := &fakeGetter{response: want}
	blob, err := GetBlob(context.Background(), g, "p1", "abc123", "src/main.ts", BlobOptions{Highlight: true})
	is.NoErr(err)
	is.Equal(*blob, want)
	is.Equal(len(g.calls), 1)
	is.Equal(g.calls[0].endpoint, "projects/p1/blob/abc123/src/main.ts")
	is.Equal(g.calls[0].params, BlobOptions{Highlight: true})
}

func TestGetReadme(t *testing.T) {
	is := is.New(t)
	want := proto.Blob{
		Content: "# Upstream\n",
		Path:    "README.md",
		Info:    proto.EntryInfo{Name: "README.md", ObjectType: proto.ObjectBlob, LastCommit: testCommit()},
	}
	g := &fakeGetter{response: want}
	blob, err := GetReadme(context.Background(), g, "p1", "abc123")
	is.NoErr(err)
	is.Equal(*blob, want)
	is.Equal(len(g.calls), 1)
	is.Equal(g.calls[0].endpoint, "projects/p1/readme/abc123")
}

func TestGetterErrorsAreReturnedUnchanged(t *testing.T) {
	errTransport := errors.New("connection refused")
	ctx := context.Background()
	for name, fn := range map[string]func(Getter) error{
		"info": func(g Getter) error { _, err := GetInfo(ctx, g, "p1"); return err },
		"tree": func(g Getter) error { _, err := GetTree(ctx, g, "p1", "abc", ""); return err },
		"blob": func(g Getter) error { _, err := GetBlob(ctx, g, "p1", "abc", "a", BlobOptions{}); return err },
		"readme": func(g Getter) error {
			_, err := GetReadme(ctx, g, "p1", "abc")
			return err
		},
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			g := &fakeGetter{err: errTransport}
			is.Equal(fn(g), errTransport)
			is.Equal(len(g.calls), 1)
		})
	}
}
