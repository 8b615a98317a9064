// Package wavefront parses Wavefront OBJ geometry and MTL material text into
// flat, GPU-ready vertex arrays and material tables.
//
// Both parsers are line oriented: blank lines and lines starting with '#' are
// skipped, the first field selects a keyword handler and the remaining fields
// are its arguments. Unsupported keywords and malformed statements are
// recorded as [Warning]s and skipped. Face references that cannot be resolved
// abort parsing with an [*IndexError].
//
// Triangle geometry can also be exchanged as binary STL with [WriteSTL] and
// [ReadSTL].
package wavefront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/glplay"
)

const maxLineLength = 1 << 20

// Warning describes a statement that was skipped during parsing.
type Warning struct {
	Format  string // "obj", "mtl" or "stl".
	Line    int    // 1-based line number.
	Keyword string
	Msg     string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", w.Format, w.Line, w.Keyword, w.Msg)
}

// IndexError is returned when a face references a vertex attribute that does
// not exist at the point of reference: index 0, or an index outside the
// attribute pool defined so far in the file.
type IndexError struct {
	Line      int
	Attribute string // "position", "texcoord" or "normal".
	Ref       int    // Index as written in the file.
	PoolLen   int    // Attribute count defined before Line.
}

func (e *IndexError) Error() string {
	if e.Ref == 0 {
		return fmt.Sprintf("obj:%d: %s index 0 is invalid, indices are 1-based", e.Line, e.Attribute)
	}
	return fmt.Sprintf("obj:%d: %s index %d out of range, %d defined so far", e.Line, e.Attribute, e.Ref, e.PoolLen)
}

// handler processes the arguments of a single statement. args are the
// whitespace separated fields after the keyword and unparsed is the raw
// remainder of the line, used by name-valued keywords that may contain spaces.
type handler func(args []string, unparsed string) error

// lineParser holds the dispatch state shared by the OBJ and MTL parsers.
type lineParser struct {
	format   string
	line     int
	keyword  string
	warnings []Warning
}

// parse reads r line by line dispatching statements to handlers. A handler
// error of type *IndexError aborts parsing; any other handler error is
// recorded as a warning and the statement is skipped.
func (p *lineParser) parse(r io.Reader, handlers map[string]handler) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	p.line = 0
	for scanner.Scan() {
		p.line++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		keyword := fields[0]
		p.keyword = keyword
		h, ok := handlers[keyword]
		if !ok {
			p.warn("unsupported keyword")
			continue
		}
		unparsed := strings.TrimSpace(line[len(keyword):])
		err := h(fields[1:], unparsed)
		if err != nil {
			var idxErr *IndexError
			if errors.As(err, &idxErr) {
				return err
			}
			p.warn(err.Error())
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: reading line %d: %w", p.format, p.line+1, err)
	}
	return nil
}

func (p *lineParser) warn(msg string) {
	w := Warning{Format: p.format, Line: p.line, Keyword: p.keyword, Msg: msg}
	p.warnings = append(p.warnings, w)
	glplay.Logger().Warn("wavefront: statement skipped",
		"format", w.Format, "line", w.Line, "keyword", w.Keyword, "reason", w.Msg)
}

// parseFloats parses the first len(dst) fields of args into dst. Extra fields are ignored.
func parseFloats(dst []float32, args []string) error {
	if len(args) < len(dst) {
		return fmt.Errorf("want at least %d components, got %d", len(dst), len(args))
	}
	for i := range dst {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		dst[i] = float32(f)
	}
	return nil
}

func parseFloat(args []string) (float32, error) {
	var v [1]float32
	err := parseFloats(v[:], args)
	return v[0], err
}
