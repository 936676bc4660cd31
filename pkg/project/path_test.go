package project

import "testing"

func TestPath(t *testing.T) {
	cases := []struct {
		name string
		opts PathOptions
		want string
	}{
		{
			name: "project only",
			opts: PathOptions{ProjectID: "p1"},
			want: "/projects/p1",
		},
		{
			name: "organization",
			opts: PathOptions{ProjectID: "p1", Org: "acme"},
			want: "/orgs/acme/projects/p1",
		},
		{
			name: "path without commit resolves head",
			opts: PathOptions{ProjectID: "p1", Path: "src/x.ts"},
			want: "/projects/p1/head/src/x.ts",
		},
		{
			name: "path at commit",
			opts: PathOptions{ProjectID: "p1", Commit: "abc123", Path: "src/x.ts"},
			want: "/projects/p1/abc123/src/x.ts",
		},
		{
			name: "commit without path",
			opts: PathOptions{ProjectID: "p1", Commit: "abc123"},
			want: "/projects/p1/abc123",
		},
		{
			name: "everything",
			opts: PathOptions{ProjectID: "rad:git:hnrk", Org: "acme", Commit: "abc123", Path: "README.md"},
			want: "/orgs/acme/projects/rad:git:hnrk/abc123/README.md",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Path(c.opts); got != c.want {
				t.Errorf("Path(%+v) => %q, want %q", c.opts, got, c.want)
			}
		})
	}
}
