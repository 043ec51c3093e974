// Package schedule reads and writes the line-oriented schedule grammar:
//
//	DOC         = COMMENT* HEADER ROUTE*
//	HEADER      = <start> <dest>
//	ROUTE       = FLEX_ROUTE | TIMED_ROUTE | COMMENT
//	FLEX_ROUTE  = f <start> <dest> <minutes>
//	TIMED_ROUTE = t <start> <H:MM> <dest> <H:MM>
//	COMMENT     = # anything
//
// Locations are word tokens of Unicode letters, digits and underscores.
// Blank lines are ignored.
package schedule

import (
	"bufio"
	"commute-planner/internal/domain"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// WordPattern is the lexical shape of a location token.
const WordPattern = `[\p{L}\p{N}_]+`

var (
	wordPat = `(` + WordPattern + `)`
	timePat = `(` + domain.TimePattern + `)`
	durPat  = `(` + domain.DurationPattern + `)`

	flexRe    = regexp.MustCompile(fmt.Sprintf(`^f\s+%s\s+%s\s+%s$`, wordPat, wordPat, durPat))
	timedRe   = regexp.MustCompile(fmt.Sprintf(`^t\s+%s\s+%s\s+%s\s+%s$`, wordPat, timePat, wordPat, timePat))
	headerRe  = regexp.MustCompile(fmt.Sprintf(`^%s\s+%s$`, wordPat, wordPat))
	commentRe = regexp.MustCompile(`^#\s*(.*)$`)
)

type EntryKind uint8

const (
	EntryBlank EntryKind = iota
	EntryComment
	EntryHeader
	EntryRoute
)

func (k EntryKind) String() string {
	switch k {
	case EntryBlank:
		return "blank"
	case EntryComment:
		return "comment"
	case EntryHeader:
		return "header"
	case EntryRoute:
		return "route"
	default:
		return fmt.Sprintf("EntryKind(%d)", uint8(k))
	}
}

// Entry is one parsed schedule line. Line is 1-based and zero when the entry
// was not produced from a document.
type Entry struct {
	Kind    EntryKind
	Line    int
	Header  domain.Header
	Route   domain.Route
	Comment string
}

func HeaderEntry(h domain.Header) Entry { return Entry{Kind: EntryHeader, Header: h} }

func RouteEntry(r domain.Route) Entry { return Entry{Kind: EntryRoute, Route: r} }

func (e Entry) String() string {
	switch e.Kind {
	case EntryHeader:
		return e.Header.String()
	case EntryRoute:
		return e.Route.String()
	case EntryComment:
		return "# " + e.Comment
	default:
		return ""
	}
}

// ParseLine parses a single line. A line matching no production returns an
// error wrapping domain.ErrSyntax; malformed numeric fields return the
// matching construction error.
func ParseLine(line string) (Entry, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return Entry{Kind: EntryBlank}, nil
	}

	if m := flexRe.FindStringSubmatch(s); m != nil {
		f, err := domain.NewFlexRoute(domain.Location(m[1]), domain.Location(m[2]), m[3])
		if err != nil {
			return Entry{}, err
		}
		return RouteEntry(domain.Flex(f)), nil
	}

	if m := timedRe.FindStringSubmatch(s); m != nil {
		t, err := domain.NewTimedRoute(domain.Location(m[1]), m[2], domain.Location(m[3]), m[4])
		if err != nil {
			return Entry{}, err
		}
		return RouteEntry(domain.Timed(t)), nil
	}

	if m := headerRe.FindStringSubmatch(s); m != nil {
		return HeaderEntry(domain.Header{Start: domain.Location(m[1]), Dest: domain.Location(m[2])}), nil
	}

	if m := commentRe.FindStringSubmatch(s); m != nil {
		return Entry{Kind: EntryComment, Comment: m[1]}, nil
	}

	return Entry{}, fmt.Errorf("parse line %q: %w", line, domain.ErrSyntax)
}

// ParseDocument parses every line and returns the header and route entries
// in input order. Comments and blank lines are dropped. The first bad line
// aborts the parse.
func ParseDocument(lines []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		e, err := ParseLine(line)
		if err != nil {
			if errors.Is(err, domain.ErrSyntax) {
				return nil, &domain.SyntaxError{Line: i + 1, Text: line}
			}
			return nil, fmt.Errorf("parse document: line %d: %w", i+1, err)
		}

		if e.Kind == EntryBlank || e.Kind == EntryComment {
			continue
		}
		e.Line = i + 1
		entries = append(entries, e)
	}

	return entries, nil
}

// ReadLines splits a schedule document into lines.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	return lines, nil
}

// Read parses a whole schedule document from r.
func Read(r io.Reader) ([]Entry, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return ParseDocument(lines)
}
