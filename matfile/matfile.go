// Package matfile reads and writes the MATLAB-style pattern files used to
// persist point patterns: two assignments of the form
//
//	x_fun=[0.000000,1.000000];
//	y_fun=[1.000000,0.000000];
//
// in any order. Values may be separated by commas or whitespace, and `%`
// starts a comment that runs to the end of the line.
package matfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pipelined/scope/pattern"
)

// ParseError is returned when a required assignment is missing or holds
// no parsable values.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pattern file: no values for %q", e.Token)
}

var (
	xPattern       = regexp.MustCompile(`(?s)x_fun\s*=\s*\[(.*?)\];`)
	yPattern       = regexp.MustCompile(`(?s)y_fun\s*=\s*\[(.*?)\];`)
	commentPattern = regexp.MustCompile(`(?m)%.*$`)
)

// Load reads a pattern from r.
func Load(r io.Reader) (pattern.Pattern, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return pattern.Pattern{}, err
	}
	x, err := extract(string(content), "x_fun", xPattern)
	if err != nil {
		return pattern.Pattern{}, err
	}
	y, err := extract(string(content), "y_fun", yPattern)
	if err != nil {
		return pattern.Pattern{}, err
	}
	return pattern.New(x, y)
}

// LoadFile reads a pattern from the file at path.
func LoadFile(path string) (pattern.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return pattern.Pattern{}, err
	}
	defer f.Close()
	return Load(f)
}

// extract pulls the bracket body for token and parses its values.
func extract(content, token string, re *regexp.Regexp) ([]float64, error) {
	match := re.FindStringSubmatch(content)
	if match == nil {
		return nil, &ParseError{Token: token}
	}
	body := commentPattern.ReplaceAllString(match[1], "")
	body = strings.ReplaceAll(body, ",", " ")

	var values []float64
	for _, field := range strings.Fields(body) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, &ParseError{Token: token}
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, &ParseError{Token: token}
	}
	return values, nil
}

// Save writes p to w in the persisted text format. Values carry exactly
// six digits after the decimal point.
func Save(w io.Writer, p pattern.Pattern) error {
	if err := p.Validate(); err != nil {
		return err
	}
	buf := bufio.NewWriter(w)
	if err := writeAxis(buf, "x_fun", p.X); err != nil {
		return err
	}
	if err := writeAxis(buf, "y_fun", p.Y); err != nil {
		return err
	}
	return buf.Flush()
}

// SaveFile writes p to the file at path.
func SaveFile(path string, p pattern.Pattern) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeAxis(w *bufio.Writer, token string, values []float64) error {
	if _, err := fmt.Fprintf(w, "%s=[", token); err != nil {
		return err
	}
	for i, v := range values {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%.6f", v); err != nil {
			return err
		}
	}
	_, err := w.WriteString("];\n")
	return err
}
