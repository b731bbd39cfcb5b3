package tree

import (
	"reflect"
	"strings"
	"testing"

	"github.com/thatbeautifuldream/local-first-explorer/internal/fs"
)

func entries(paths ...string) []fs.Entry {
	result := make([]fs.Entry, len(paths))
	for i, p := range paths {
		result[i] = fs.Entry{Path: p}
	}
	return result
}

func TestBuild_Empty(t *testing.T) {
	root, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) failed: %v", err)
	}
	if root != nil {
		t.Errorf("expected nil tree for empty entries, got %+v", root)
	}
}

func TestBuild_SingleRootAndLeafCount(t *testing.T) {
	root, err := Build(entries(
		"proj/README.md",
		"proj/src/main.go",
		"proj/src/util/strings.go",
		"proj/docs/guide.md",
	))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if root == nil {
		t.Fatal("expected a tree")
	}
	if root.Name != "proj" || root.Type != TypeDirectory {
		t.Errorf("expected directory root proj, got %s %s", root.Type, root.Name)
	}
	if got := CountFiles(root); got != 4 {
		t.Errorf("expected 4 file leaves, got %d", got)
	}
}

func TestBuild_SharedPrefixResolvesToSameNode(t *testing.T) {
	root, err := Build(entries("a/b/x.txt", "a/b/y.txt"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var bNodes []*Node
	Walk(root, func(n *Node) {
		if n.Path == "a/b" {
			bNodes = append(bNodes, n)
		}
	})
	if len(bNodes) != 1 {
		t.Fatalf("expected exactly one a/b node, got %d", len(bNodes))
	}
	if len(bNodes[0].Children) != 2 {
		t.Errorf("expected both files under the same a/b node, got %d children", len(bNodes[0].Children))
	}
}

func TestBuild_DirectoryPathsAreSegmentPrefixes(t *testing.T) {
	root, err := Build(entries("a/b/c/file.txt"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := map[string]string{
		"a":              TypeDirectory,
		"a/b":            TypeDirectory,
		"a/b/c":          TypeDirectory,
		"a/b/c/file.txt": TypeFile,
	}
	seen := map[string]string{}
	Walk(root, func(n *Node) {
		seen[n.Path] = n.Type
	})
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("unexpected node paths:\n got %v\nwant %v", seen, want)
	}
}

func TestBuild_FirstSeenChildOrder(t *testing.T) {
	root, err := Build(entries("r/zebra.txt", "r/alpha/x.txt", "r/alpha/y.txt", "r/mango.txt"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	want := []string{"zebra.txt", "alpha", "mango.txt"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected first-seen order %v, got %v", want, names)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	input := entries("p/a.txt", "p/d/b.txt", "p/d/c.txt")
	first, err := Build(input)
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	second, err := Build(input)
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected structurally identical trees from the same input")
	}
}

func TestBuild_TopLevelFile(t *testing.T) {
	root, err := Build(entries("notes.txt"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if root.Type != TypeFile || root.Name != "notes.txt" || root.Path != "notes.txt" {
		t.Errorf("expected top-level file as displayed root, got %+v", root)
	}
}

func TestBuild_MultipleRoots(t *testing.T) {
	_, err := Build(entries("a/x.txt", "b/y.txt"))
	if err != ErrMultipleRoots {
		t.Errorf("expected ErrMultipleRoots, got %v", err)
	}
}

func TestBuild_MalformedPathDegeneratesSilently(t *testing.T) {
	// Consecutive separators produce an empty-named directory; not guarded
	root, err := Build(entries("a//x.txt"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	empty := Find(root, "a/")
	if empty == nil || empty.Name != "" {
		t.Error("expected an empty-named directory node for the empty segment")
	}
}

func TestFind(t *testing.T) {
	root, err := Build(entries("r/d/f.txt", "r/g.txt"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if n := Find(root, "r/d/f.txt"); n == nil || n.Type != TypeFile {
		t.Error("expected to find file node r/d/f.txt")
	}
	if n := Find(root, "r/d"); n == nil || n.Type != TypeDirectory {
		t.Error("expected to find directory node r/d")
	}
	if n := Find(root, "r/missing"); n != nil {
		t.Errorf("expected nil for missing path, got %+v", n)
	}
}

func TestWalk_DeepTree(t *testing.T) {
	// 2000 nested directories; Walk must not recurse
	path := strings.Repeat("d/", 2000) + "leaf.txt"
	root, err := Build(entries("root/" + path))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	count := 0
	Walk(root, func(*Node) { count++ })
	if count != 2002 {
		t.Errorf("expected 2002 nodes, got %d", count)
	}
}
