package schema

import (
	"fmt"
	"strings"

	"github.com/apache/arrow/go/v13/arrow"
)

// Field names of the commit schema, in column order.
const (
	FieldCommitHash         = "commit_hash"
	FieldMessage            = "message"
	FieldAuthorName         = "author_name"
	FieldAuthorEmail        = "author_email"
	FieldAuthorTimestamp    = "author_timestamp"
	FieldCommitterName      = "committer_name"
	FieldCommitterEmail     = "committer_email"
	FieldCommitterTimestamp = "committer_timestamp"
	FieldParentHashes       = "parent_hashes"
)

// TimestampType is second resolution with no timezone.
var TimestampType = &arrow.TimestampType{Unit: arrow.Second}

// ParentHashesType is a list of nullable strings (element field "item").
var ParentHashesType = arrow.ListOf(arrow.BinaryTypes.String)

// Commits returns the fixed output schema. Every call returns an equal schema.
func Commits() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: FieldCommitHash, Type: arrow.BinaryTypes.String},
		{Name: FieldMessage, Type: arrow.BinaryTypes.String},
		{Name: FieldAuthorName, Type: arrow.BinaryTypes.String},
		{Name: FieldAuthorEmail, Type: arrow.BinaryTypes.String},
		{Name: FieldAuthorTimestamp, Type: TimestampType},
		{Name: FieldCommitterName, Type: arrow.BinaryTypes.String},
		{Name: FieldCommitterEmail, Type: arrow.BinaryTypes.String},
		{Name: FieldCommitterTimestamp, Type: TimestampType},
		{Name: FieldParentHashes, Type: ParentHashesType},
	}, nil)
}

// Describe renders the schema as one "name: type" line per field.
func Describe(s *arrow.Schema) string {
	var b strings.Builder
	for _, f := range s.Fields() {
		nullable := "not null"
		if f.Nullable {
			nullable = "nullable"
		}
		fmt.Fprintf(&b, "%s: %s (%s)\n", f.Name, f.Type, nullable)
	}
	return b.String()
}
