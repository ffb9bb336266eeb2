package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RepoSource walks commit ancestry through go-git's object store.
type RepoSource struct {
	repo *git.Repository
	opts ReadOptions
}

// NewRepoSource opens the repository containing opts.RepoPath.
// Parent directories are searched for the .git directory.
func NewRepoSource(opts ReadOptions) (*RepoSource, error) {
	path := opts.RepoPath
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return &RepoSource{repo: repo, opts: opts}, nil
}

// NewRepoSourceFrom wraps an already open repository.
func NewRepoSourceFrom(repo *git.Repository, opts ReadOptions) *RepoSource {
	return &RepoSource{repo: repo, opts: opts}
}

// Head resolves HEAD, or opts.Rev when one is set.
func (s *RepoSource) Head(_ context.Context) (string, error) {
	rev := strings.TrimSpace(s.opts.Rev)
	if rev == "" || strings.EqualFold(rev, "HEAD") {
		ref, err := s.repo.Head()
		if err != nil {
			return "", fmt.Errorf("resolve HEAD: %w", err)
		}
		return ref.Hash().String(), nil
	}

	hash, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("resolve revision %s: %w", rev, err)
	}
	return hash.String(), nil
}

// Ancestors returns a lazy walk starting at from.
func (s *RepoSource) Ancestors(_ context.Context, from string) (CommitIter, error) {
	if !plumbing.IsHash(from) {
		return nil, fmt.Errorf("invalid commit hash %q", from)
	}

	cIter, err := s.repo.Log(&git.LogOptions{
		From:  plumbing.NewHash(from),
		Order: goGitOrder(s.opts.Order),
	})
	if err != nil {
		return nil, fmt.Errorf("walk ancestors of %s: %w", from, err)
	}
	return &repoIter{iter: cIter}, nil
}

func goGitOrder(o LogOrder) git.LogOrder {
	switch o {
	case LogOrderDFS:
		return git.LogOrderDFS
	case LogOrderCommitterTime:
		return git.LogOrderCommitterTime
	default:
		return git.LogOrderBSF
	}
}

type repoIter struct {
	iter object.CommitIter
}

// Next returns io.EOF from the underlying iterator unchanged.
func (it *repoIter) Next() (*CommitRecord, error) {
	c, err := it.iter.Next()
	if err != nil {
		return nil, err
	}
	return recordFromCommit(c), nil
}

func (it *repoIter) Close() {
	it.iter.Close()
}

func recordFromCommit(c *object.Commit) *CommitRecord {
	parents := make([]string, len(c.ParentHashes))
	for i, h := range c.ParentHashes {
		parents[i] = h.String()
	}

	return &CommitRecord{
		Hash:      c.Hash.String(),
		Message:   []byte(c.Message),
		Author:    signatureFrom(c.Author),
		Committer: signatureFrom(c.Committer),
		Parents:   parents,
	}
}

func signatureFrom(sig object.Signature) Signature {
	return Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When.Unix(),
	}
}
