package vault

import (
	"sort"
	"testing"

	"github.com/aidanlsb/taskmark/internal/testutil"
)

func TestWalkMarkdownFiles(t *testing.T) {
	// Layout:
	//   inbox.md
	//   projects/alpha.md
	//   .obsidian/workspace.md (skipped)
	//   .trash/deleted.md (skipped)
	//   readme.txt (skipped)
	v := testutil.NewTestVault(t).
		WithFile("inbox.md", "- [ ] Buy milk\n").
		WithFile("projects/alpha.md", "---\ntitle: Alpha\n---\n- [ ] Plan #work\n").
		WithFile(".obsidian/workspace.md", "- [ ] hidden\n").
		WithFile(".trash/deleted.md", "- [ ] deleted\n").
		WithFile("readme.txt", "readme").
		Build()

	var foundFiles []string
	var foundDocs int

	err := WalkMarkdownFiles(v.Path, func(result WalkResult) error {
		foundFiles = append(foundFiles, result.RelativePath)
		if result.Document != nil {
			foundDocs++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkMarkdownFiles failed: %v", err)
	}

	sort.Strings(foundFiles)
	if len(foundFiles) != 2 || foundFiles[0] != "inbox.md" || foundFiles[1] != "projects/alpha.md" {
		t.Errorf("found files %v", foundFiles)
	}
	if foundDocs != 2 {
		t.Errorf("Parsed %d documents, want 2", foundDocs)
	}
}

func TestWalkMarkdownFilesWithErrors(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("valid.md", "---\ntodo: true\n---\n").
		WithFile("invalid.md", "---\ntodo: [invalid yaml\n---\n").
		Build()

	var validCount, errorCount int
	err := WalkMarkdownFiles(v.Path, func(result WalkResult) error {
		if result.Error != nil {
			errorCount++
			if result.Content == "" {
				t.Error("expected content on parse error")
			}
		} else {
			validCount++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkMarkdownFiles failed: %v", err)
	}

	if validCount != 1 {
		t.Errorf("Valid count = %d, want 1", validCount)
	}
	if errorCount != 1 {
		t.Errorf("Error count = %d, want 1", errorCount)
	}
}

func TestStoreWalkSubdirectory(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("a.md", "x").
		WithFile("notes/b.md", "y").
		WithFile("notes/deep/c.markdown", "z").
		Build()

	s, err := Open(v.Path)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	if err := s.Walk("notes", func(r WalkResult) error {
		got = append(got, r.RelativePath)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	if len(got) != 2 || got[0] != "notes/b.md" || got[1] != "notes/deep/c.markdown" {
		t.Errorf("Walk = %v", got)
	}
}

func TestCollectDocuments(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("page1.md", "---\ntags: [todo]\n---\nSee [[Projects/Alpha]]\n").
		WithFile("page2.md", "# Page two #task\n").
		WithFile("archive/old.md", "---\ntodo: true\n---\n").
		WithFile("broken.md", "---\ntodo: [oops\n---\n").
		Build()

	s, err := Open(v.Path)
	if err != nil {
		t.Fatal(err)
	}
	docs, failed, err := s.CollectDocuments("", func(rel string) bool { return rel == "archive/old.md" })
	if err != nil {
		t.Fatalf("CollectDocuments failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Got %d documents, want 2", len(docs))
	}
	if len(failed) != 1 || failed[0].RelativePath != "broken.md" {
		t.Errorf("failed = %+v, want broken.md", failed)
	}

	byPath := map[string][]string{}
	for _, d := range docs {
		byPath[d.Path] = d.Tags
	}
	if tags := byPath["page1.md"]; len(tags) != 1 || tags[0] != "todo" {
		t.Errorf("page1 tags = %v", tags)
	}
	if tags := byPath["page2.md"]; len(tags) != 1 || tags[0] != "task" {
		t.Errorf("page2 tags = %v", tags)
	}
}
