package git

import (
	"context"
	"errors"
)

var (
	ErrUnknownOrder   = errors.New("unknown log order")
	ErrUnknownBackend = errors.New("unknown backend")
)

// CommitSource defines the interface for walking commit ancestry.
// This abstraction allows for an in-memory fake in tests and alternative backends.
type CommitSource interface {
	// Head resolves the commit the walk starts from.
	Head(ctx context.Context) (string, error)
	// Ancestors returns a lazy iterator over from and its ancestors.
	// Each reachable commit is yielded at most once.
	Ancestors(ctx context.Context, from string) (CommitIter, error)
}

// CommitIter yields commits one at a time.
// Next returns io.EOF once the walk is exhausted.
type CommitIter interface {
	Next() (*CommitRecord, error)
	Close()
}

// Open creates the CommitSource for the given backend.
func Open(backend Backend, opts ReadOptions) (CommitSource, error) {
	switch backend {
	case BackendGoGit, "":
		return NewRepoSource(opts)
	case BackendGitCLI:
		return NewCLISource(opts)
	default:
		return nil, ErrUnknownBackend
	}
}

// Compile-time interface conformance checks.
var (
	_ CommitSource = (*RepoSource)(nil)
	_ CommitSource = (*CLISource)(nil)
	_ CommitSource = (*MemorySource)(nil)
)
