package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Each commit is written as 0x1f-separated fields and terminated by NUL (-z).
// The raw body comes last so that separators inside it cannot shift fields.
const gitLogFormat = "%H%x1f%P%x1f%an%x1f%ae%x1f%at%x1f%cn%x1f%ce%x1f%ct%x1f%B"

const gitLogFields = 9

// CLISource walks commit ancestry by streaming `git log` output.
type CLISource struct {
	gitPath string
	opts    ReadOptions
}

// NewCLISource locates the git executable.
func NewCLISource(opts ReadOptions) (*CLISource, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git executable not found: %w", err)
	}
	if opts.RepoPath == "" {
		opts.RepoPath = "."
	}
	return &CLISource{gitPath: gitPath, opts: opts}, nil
}

// Head resolves HEAD, or opts.Rev when one is set.
func (s *CLISource) Head(ctx context.Context) (string, error) {
	rev := strings.TrimSpace(s.opts.Rev)
	if rev == "" {
		rev = "HEAD"
	}

	out, err := exec.CommandContext(ctx, s.gitPath,
		"-C", s.opts.RepoPath,
		"rev-parse", "--verify", "--quiet", rev+"^{commit}",
	).Output()
	if err != nil {
		return "", fmt.Errorf("resolve revision %s: %w", rev, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Ancestors starts `git log` and decodes its output lazily.
func (s *CLISource) Ancestors(ctx context.Context, from string) (CommitIter, error) {
	args := []string{
		"-C", s.opts.RepoPath,
		"log",
		"--no-color",
		"-z",
		"--pretty=tformat:" + gitLogFormat,
	}
	switch s.opts.Order {
	case LogOrderDFS:
		args = append(args, "--topo-order")
	case LogOrderCommitterTime:
		args = append(args, "--date-order")
	}
	args = append(args, from, "--")

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, s.gitPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("git log: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("git log: %w", err)
	}

	return &cliIter{
		cmd:    cmd,
		cancel: cancel,
		stderr: &stderr,
		r:      bufio.NewReaderSize(stdout, 64*1024),
	}, nil
}

type cliIter struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	stderr *bytes.Buffer
	r      *bufio.Reader
	done   bool
}

func (it *cliIter) Next() (*CommitRecord, error) {
	if it.done {
		return nil, io.EOF
	}

	rec, err := it.r.ReadBytes(0)
	switch {
	case errors.Is(err, io.EOF):
		if len(bytes.TrimSpace(rec)) == 0 {
			if werr := it.wait(); werr != nil {
				return nil, werr
			}
			return nil, io.EOF
		}
	case err != nil:
		it.Close()
		return nil, fmt.Errorf("read git log output: %w", err)
	default:
		rec = rec[:len(rec)-1]
	}

	c, perr := parseGitLogRecord(bytes.TrimLeft(rec, "\n"))
	if perr != nil {
		it.Close()
		return nil, perr
	}
	return c, nil
}

// Close kills git if the walk was not read to the end.
func (it *cliIter) Close() {
	if it.done {
		return
	}
	it.done = true
	it.cancel()
	_ = it.cmd.Wait()
}

// wait reaps git after its output was fully read and reports a non-zero exit.
func (it *cliIter) wait() error {
	it.done = true
	err := it.cmd.Wait()
	it.cancel()
	if err != nil {
		return fmt.Errorf("git log failed: %w: %s", err, strings.TrimSpace(it.stderr.String()))
	}
	return nil
}

func parseGitLogRecord(rec []byte) (*CommitRecord, error) {
	fields := bytes.SplitN(rec, []byte{0x1f}, gitLogFields)
	if len(fields) < gitLogFields {
		return nil, fmt.Errorf("unexpected git log record format (%d fields)", len(fields))
	}

	authorWhen, err := strconv.ParseInt(string(fields[4]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse author time: %w", err)
	}
	committerWhen, err := strconv.ParseInt(string(fields[7]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse committer time: %w", err)
	}

	parents := strings.Fields(string(fields[1]))
	if parents == nil {
		parents = []string{}
	}

	return &CommitRecord{
		Hash:    string(fields[0]),
		Message: append([]byte(nil), fields[8]...),
		Author: Signature{
			Name:  string(fields[2]),
			Email: string(fields[3]),
			When:  authorWhen,
		},
		Committer: Signature{
			Name:  string(fields[5]),
			Email: string(fields[6]),
			When:  committerWhen,
		},
		Parents: parents,
	}, nil
}
