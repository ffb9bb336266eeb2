package export

import (
	"bytes"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/ipc"

	"github.com/masmgr/gitlog2arrow/internal/git"
	"github.com/masmgr/gitlog2arrow/internal/schema"
)

// tHelper is satisfied by both *testing.T and *rapid.T.
type tHelper interface {
	Helper()
	Fatalf(format string, args ...any)
}

// exportedRow is one decoded output row.
type exportedRow struct {
	Hash               string
	Message            string
	AuthorName         string
	AuthorEmail        string
	AuthorTimestamp    int64
	CommitterName      string
	CommitterEmail     string
	CommitterTimestamp int64
	Parents            []string
}

// decodeStream reads the stream back, checking it holds exactly one batch with the commit schema.
func decodeStream(t tHelper, data []byte) []exportedRow {
	t.Helper()

	rdr, err := ipc.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer rdr.Release()

	if !rdr.Schema().Equal(schema.Commits()) {
		t.Fatalf("stream schema mismatch:\n%s", rdr.Schema())
	}

	var rows []exportedRow
	batches := 0
	for rdr.Next() {
		batches++
		rows = append(rows, recordRows(t, rdr.Record())...)
	}
	if err := rdr.Err(); err != nil {
		t.Fatalf("reader: %v", err)
	}
	if batches != 1 {
		t.Fatalf("batches = %d, expected 1", batches)
	}
	return rows
}

func recordRows(t tHelper, rec arrow.Record) []exportedRow {
	t.Helper()

	n := int(rec.NumRows())
	for i, col := range rec.Columns() {
		if col.Len() != n {
			t.Fatalf("column %d length = %d, expected %d", i, col.Len(), n)
		}
	}

	str := func(i int) *array.String { return rec.Column(i).(*array.String) }
	ts := func(i int) *array.Timestamp { return rec.Column(i).(*array.Timestamp) }
	parents := rec.Column(8).(*array.List)
	parentValues := parents.ListValues().(*array.String)

	rows := make([]exportedRow, n)
	for i := range rows {
		start, end := parents.ValueOffsets(i)
		ps := make([]string, 0, end-start)
		for j := start; j < end; j++ {
			ps = append(ps, parentValues.Value(int(j)))
		}
		rows[i] = exportedRow{
			Hash:               str(0).Value(i),
			Message:            str(1).Value(i),
			AuthorName:         str(2).Value(i),
			AuthorEmail:        str(3).Value(i),
			AuthorTimestamp:    int64(ts(4).Value(i)),
			CommitterName:      str(5).Value(i),
			CommitterEmail:     str(6).Value(i),
			CommitterTimestamp: int64(ts(7).Value(i)),
			Parents:            ps,
		}
	}
	return rows
}

// threeCommits returns C1 <- C2 <- C3 with C3 as head. Only C2 is authored by Bob.
func threeCommits() *git.MemorySource {
	return git.NewMemorySource(
		&git.CommitRecord{
			Hash:      "c3",
			Message:   []byte("third\n"),
			Author:    git.Signature{Name: "Alice", Email: "alice@example.com", When: 3000},
			Committer: git.Signature{Name: "Alice", Email: "alice@example.com", When: 3010},
			Parents:   []string{"c2"},
		},
		&git.CommitRecord{
			Hash:      "c2",
			Message:   []byte("second\n"),
			Author:    git.Signature{Name: "Bob", Email: "bob@example.com", When: 2000},
			Committer: git.Signature{Name: "Alice", Email: "alice@example.com", When: 2010},
			Parents:   []string{"c1"},
		},
		&git.CommitRecord{
			Hash:      "c1",
			Message:   []byte("first\n"),
			Author:    git.Signature{Name: "Alice", Email: "alice@example.com", When: 1000},
			Committer: git.Signature{Name: "Alice", Email: "alice@example.com", When: 1010},
		},
	)
}

func hashes(rows []exportedRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Hash
	}
	return out
}
