package git

import (
	"context"
	"fmt"
	"io"
)

// MemorySource is a test double for RepoSource.
// It walks a fixed commit DAG held in memory without needing a real Git repository.
type MemorySource struct {
	HeadHash string
	Commits  map[string]*CommitRecord
	Error    error // returned by Head when set
}

// NewMemorySource builds a source from commits. The first commit is the head.
func NewMemorySource(commits ...*CommitRecord) *MemorySource {
	m := &MemorySource{Commits: make(map[string]*CommitRecord, len(commits))}
	for i, c := range commits {
		if i == 0 {
			m.HeadHash = c.Hash
		}
		m.Commits[c.Hash] = c
	}
	return m
}

// Head returns the predefined head or error.
func (m *MemorySource) Head(_ context.Context) (string, error) {
	if m.Error != nil {
		return "", m.Error
	}
	return m.HeadHash, nil
}

// Ancestors walks breadth-first, visiting parents in order.
func (m *MemorySource) Ancestors(_ context.Context, from string) (CommitIter, error) {
	if _, ok := m.Commits[from]; !ok {
		return nil, fmt.Errorf("commit %s not found", from)
	}
	return &memoryIter{
		commits: m.Commits,
		queue:   []string{from},
		seen:    map[string]bool{from: true},
	}, nil
}

type memoryIter struct {
	commits map[string]*CommitRecord
	queue   []string
	seen    map[string]bool
}

func (it *memoryIter) Next() (*CommitRecord, error) {
	if len(it.queue) == 0 {
		return nil, io.EOF
	}
	hash := it.queue[0]
	it.queue = it.queue[1:]

	c, ok := it.commits[hash]
	if !ok {
		return nil, fmt.Errorf("commit %s not found", hash)
	}
	for _, p := range c.Parents {
		if !it.seen[p] {
			it.seen[p] = true
			it.queue = append(it.queue, p)
		}
	}
	return c, nil
}

func (it *memoryIter) Close() {
	it.queue = nil
}
