package git

import (
	"fmt"
	"strings"
)

// CommitRecord represents one commit as read from the object store.
// It is decoded per traversal step and not retained beyond it.
type CommitRecord struct {
	Hash      string
	Message   []byte // raw, may not be valid UTF-8
	Author    Signature
	Committer Signature
	Parents   []string
}

// Signature represents an author or committer line.
type Signature struct {
	Name  string
	Email string
	When  int64 // seconds since the Unix epoch
}

// IsMerge reports whether the commit has more than one parent.
func (c *CommitRecord) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsRoot reports whether the commit has no parents.
func (c *CommitRecord) IsRoot() bool {
	return len(c.Parents) == 0
}

// LogOrder controls the order in which ancestors are visited.
type LogOrder int

const (
	LogOrderBFS LogOrder = iota
	LogOrderDFS
	LogOrderCommitterTime
)

// String returns a string representation of the log order.
func (o LogOrder) String() string {
	switch o {
	case LogOrderBFS:
		return "bfs"
	case LogOrderDFS:
		return "dfs"
	case LogOrderCommitterTime:
		return "ctime"
	default:
		return "unknown"
	}
}

// ParseLogOrder parses a log order name. Empty selects LogOrderBFS.
func ParseLogOrder(s string) (LogOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bfs", "breadth-first":
		return LogOrderBFS, nil
	case "dfs", "depth-first":
		return LogOrderDFS, nil
	case "ctime", "committer-time", "date":
		return LogOrderCommitterTime, nil
	default:
		return LogOrderBFS, fmt.Errorf("%w: %q (expected bfs, dfs or ctime)", ErrUnknownOrder, s)
	}
}

// Backend selects the CommitSource implementation.
type Backend string

const (
	BackendGoGit  Backend = "go-git"
	BackendGitCLI Backend = "git-cli"
)

// ParseBackend parses a backend name. Empty selects BackendGoGit.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "go-git", "gogit":
		return BackendGoGit, nil
	case "git-cli", "git", "cli":
		return BackendGitCLI, nil
	default:
		return BackendGoGit, fmt.Errorf("%w: %q (expected go-git or git-cli)", ErrUnknownBackend, s)
	}
}

// ReadOptions configures a commit source.
type ReadOptions struct {
	RepoPath string
	Rev      string // empty or "HEAD" starts from the current head
	Order    LogOrder
}
