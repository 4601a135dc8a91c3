package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a BlobData to raw bytes (identity).
func MarshalBlob(b *BlobData) []byte {
	out := make([]byte, len(b.Contents))
	copy(out, b.Contents)
	return out
}

// UnmarshalBlob deserializes raw bytes into a BlobData.
func UnmarshalBlob(data []byte) (*BlobData, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &BlobData{Contents: out}, nil
}

// ---------------------------------------------------------------------------
// Signature
// ---------------------------------------------------------------------------

// FormatSignature renders a signature in the canonical header form:
//
//	Name <email> unixseconds +hhmm
func FormatSignature(s Signature) string {
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.When.Unix(), s.When.Format("-0700"))
}

// ParseSignature parses the canonical header form produced by
// FormatSignature.
func ParseSignature(val string) (Signature, error) {
	var sig Signature

	open := strings.LastIndex(val, " <")
	end := strings.LastIndex(val, "> ")
	if open < 0 || end < open {
		return sig, fmt.Errorf("parse signature %q: missing email brackets", val)
	}
	sig.Name = val[:open]
	sig.Email = val[open+2 : end]

	rest := strings.Fields(val[end+2:])
	if len(rest) != 2 {
		return sig, fmt.Errorf("parse signature %q: want timestamp and timezone", val)
	}
	secs, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return sig, fmt.Errorf("parse signature %q: bad timestamp: %w", val, err)
	}
	loc, err := time.Parse("-0700", rest[1])
	if err != nil {
		return sig, fmt.Errorf("parse signature %q: bad timezone: %w", val, err)
	}
	sig.When = time.Unix(secs, 0).In(loc.Location())
	return sig, nil
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitData:
//
//	tree H
//	parent H     (zero or more)
//	author Name <email> ts tz
//	committer Name <email> ts tz
//
//	message
func MarshalCommit(c *CommitData) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.TreeID)
	for _, p := range c.ParentIDs {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s\n", FormatSignature(c.Author))
	fmt.Fprintf(&buf, "committer %s\n", FormatSignature(c.Committer))
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitData from its serialized form.
func UnmarshalCommit(data []byte) (*CommitData, error) {
	header, message, err := splitHeader(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal commit: %w", err)
	}

	c := &CommitData{Message: message}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed header line %q", line)
		}
		switch key {
		case "tree":
			id, err := ParseOid(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: tree: %w", err)
			}
			c.TreeID = id
		case "parent":
			id, err := ParseOid(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: parent: %w", err)
			}
			c.ParentIDs = append(c.ParentIDs, id)
		case "author":
			sig, err := ParseSignature(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: %w", err)
			}
			c.Author = sig
		case "committer":
			sig, err := ParseSignature(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: %w", err)
			}
			c.Committer = sig
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown header key %q", key)
		}
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// MarshalTree serializes a TreeData. Entries are sorted by Name for
// deterministic output. Each entry is one line:
//
//	mode hash name
func MarshalTree(tr *TreeData) []byte {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		mode := e.Mode
		if mode == "" {
			mode = TreeModeFile
		}
		fmt.Fprintf(&buf, "%s %s %s\n", mode, e.ID, e.Name)
	}
	return buf.Bytes()
}

// UnmarshalTree parses a TreeData from its serialized form.
func UnmarshalTree(data []byte) (*TreeData, error) {
	tr := &TreeData{}
	content := strings.TrimRight(string(data), "\n")
	if content == "" {
		return tr, nil
	}
	for _, line := range strings.Split(content, "\n") {
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("unmarshal tree: malformed entry %q", line)
		}
		id, err := ParseOid(parts[1])
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: entry %q: %w", line, err)
		}
		tr.Entries = append(tr.Entries, TreeEntry{
			Mode: parts[0],
			ID:   id,
			Name: parts[2],
		})
	}
	return tr, nil
}

// ---------------------------------------------------------------------------
// Tag
// ---------------------------------------------------------------------------

// MarshalTag serializes a TagData:
//
//	object H
//	type commit
//	tag name
//	tagger Name <email> ts tz
//
//	message
func MarshalTag(t *TagData) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "object %s\n", t.TargetID)
	fmt.Fprintf(&buf, "type %s\n", t.TargetType)
	fmt.Fprintf(&buf, "tag %s\n", t.Name)
	fmt.Fprintf(&buf, "tagger %s\n", FormatSignature(t.Tagger))
	buf.WriteByte('\n')
	buf.WriteString(t.Message)
	return buf.Bytes()
}

// UnmarshalTag parses a TagData from its serialized form.
func UnmarshalTag(data []byte) (*TagData, error) {
	header, message, err := splitHeader(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal tag: %w", err)
	}

	t := &TagData{Message: message}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal tag: malformed header line %q", line)
		}
		switch key {
		case "object":
			id, err := ParseOid(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal tag: object: %w", err)
			}
			t.TargetID = id
		case "type":
			tt, err := TypeFromName(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal tag: %w", err)
			}
			t.TargetType = tt
		case "tag":
			t.Name = val
		case "tagger":
			sig, err := ParseSignature(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal tag: %w", err)
			}
			t.Tagger = sig
		default:
			return nil, fmt.Errorf("unmarshal tag: unknown header key %q", key)
		}
	}
	return t, nil
}

// splitHeader splits a serialized object at the first blank line into
// header and message.
func splitHeader(data []byte) (header, message string, err error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return "", "", fmt.Errorf("missing header/message separator")
	}
	return string(data[:idx]), string(data[idx+2:]), nil
}
