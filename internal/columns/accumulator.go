package columns

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"

	"github.com/masmgr/gitlog2arrow/internal/git"
	"github.com/masmgr/gitlog2arrow/internal/schema"
)

// Accumulator builds the commit columns row by row.
// It is not safe for concurrent use.
type Accumulator struct {
	trimMessage bool
	rows        int

	hash               *array.StringBuilder
	message            *array.StringBuilder
	authorName         *array.StringBuilder
	authorEmail        *array.StringBuilder
	authorTimestamp    *array.TimestampBuilder
	committerName      *array.StringBuilder
	committerEmail     *array.StringBuilder
	committerTimestamp *array.TimestampBuilder
	parents            *array.ListBuilder
	parentValues       *array.StringBuilder
}

// New creates an empty accumulator. A nil mem uses the default allocator.
func New(mem memory.Allocator, trimMessage bool) *Accumulator {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	parents := array.NewListBuilder(mem, arrow.BinaryTypes.String)

	return &Accumulator{
		trimMessage:        trimMessage,
		hash:               array.NewStringBuilder(mem),
		message:            array.NewStringBuilder(mem),
		authorName:         array.NewStringBuilder(mem),
		authorEmail:        array.NewStringBuilder(mem),
		authorTimestamp:    array.NewTimestampBuilder(mem, schema.TimestampType),
		committerName:      array.NewStringBuilder(mem),
		committerEmail:     array.NewStringBuilder(mem),
		committerTimestamp: array.NewTimestampBuilder(mem, schema.TimestampType),
		parents:            parents,
		parentValues:       parents.ValueBuilder().(*array.StringBuilder),
	}
}

// AppendRow appends one commit to every column.
func (a *Accumulator) AppendRow(c *git.CommitRecord) {
	a.hash.Append(c.Hash)
	a.message.Append(DecodeMessage(c.Message, a.trimMessage))

	a.authorName.Append(decodeText(c.Author.Name))
	a.authorEmail.Append(decodeText(c.Author.Email))
	a.authorTimestamp.Append(arrow.Timestamp(c.Author.When))

	a.committerName.Append(decodeText(c.Committer.Name))
	a.committerEmail.Append(decodeText(c.Committer.Email))
	a.committerTimestamp.Append(arrow.Timestamp(c.Committer.When))

	// Always a valid list, empty for root commits.
	a.parents.Append(true)
	for _, p := range c.Parents {
		a.parentValues.Append(p)
	}

	a.rows++
}

// Len returns the number of rows appended so far.
func (a *Accumulator) Len() int {
	return a.rows
}

// Finish assembles the appended rows into one record and resets the builders.
// The caller owns the returned record and must release it.
func (a *Accumulator) Finish() (arrow.Record, error) {
	builders := []array.Builder{
		a.hash,
		a.message,
		a.authorName,
		a.authorEmail,
		a.authorTimestamp,
		a.committerName,
		a.committerEmail,
		a.committerTimestamp,
		a.parents,
	}

	cols := make([]arrow.Array, len(builders))
	for i, b := range builders {
		cols[i] = b.NewArray()
	}
	defer func() {
		for _, col := range cols {
			col.Release()
		}
	}()

	rows := int64(a.rows)
	a.rows = 0

	for i, col := range cols {
		if int64(col.Len()) != rows {
			return nil, fmt.Errorf("column %d has %d rows, expected %d", i, col.Len(), rows)
		}
	}

	return array.NewRecord(schema.Commits(), cols, rows), nil
}

// Release frees the builders.
func (a *Accumulator) Release() {
	a.hash.Release()
	a.message.Release()
	a.authorName.Release()
	a.authorEmail.Release()
	a.authorTimestamp.Release()
	a.committerName.Release()
	a.committerEmail.Release()
	a.committerTimestamp.Release()
	a.parents.Release()
}

// DecodeMessage converts raw message bytes to text.
// With trim set, trailing line endings are removed first.
// Each maximal ill-formed subsequence is replaced with U+FFFD.
func DecodeMessage(raw []byte, trim bool) string {
	if trim {
		raw = bytes.TrimRight(raw, "\r\n")
	}
	return decodeLossy(raw)
}

func decodeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return decodeLossy([]byte(s))
}
