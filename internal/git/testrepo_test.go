package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo wraps a temporary repository with a worktree.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

// commit writes a file and commits it with the given author and time.
func (r *testRepo) commit(msg, author string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.n++

	rel := "file.txt"
	full := filepath.Join(r.dir, rel)
	if err := os.WriteFile(full, []byte(msg+when.String()+string(rune('a'+r.n))), 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.t.Fatalf("Add: %v", err)
	}

	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: author + "@example.com",
			When:  when,
		},
		Committer: &object.Signature{
			Name:  "Committer",
			Email: "committer@example.com",
			When:  when.Add(time.Minute),
		},
		Parents: parents,
	})
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return hash
}
