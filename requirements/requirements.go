// Package requirements parses line-oriented requirements declarations of
// the form "name<operator>version", one per line, as conventionally found
// in a requirements.txt file.
package requirements

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Requirement is a declared package name plus an optional version
// constraint the environment is expected to satisfy. The name may carry a
// bracketed extras qualifier ("requests[security]"); the constraint keeps
// its operator (">=2.25.0"). An empty constraint means any version.
type Requirement struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint,omitempty"`
}

func (r Requirement) String() string {
	return r.Name + r.Constraint
}

// List is an ordered requirement set. Names are unique: a duplicate
// declaration overwrites the earlier constraint but keeps the earlier
// position, so report order stays stable.
type List []Requirement

// Map flattens the list into a name-to-constraint mapping.
func (l List) Map() map[string]string {
	m := make(map[string]string, len(l))
	for _, r := range l {
		m[r.Name] = r.Constraint
	}
	return m
}

// Render writes the list back out in requirements file format.
func (l List) Render() string {
	var b strings.Builder
	for _, r := range l {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// specifier operators, longest first so ">=" wins over ">".
var operators = []string{">=", "<=", "==", "!=", "~=", ">", "<"}

// Split separates one declaration line into its name and constraint parts.
// A line with no operator is a bare name with an empty constraint.
func Split(line string) (name, constraint string) {
	for _, op := range operators {
		if i := strings.Index(line, op); i >= 0 {
			return strings.TrimSpace(line[:i]), op + strings.TrimSpace(line[i+len(op):])
		}
	}
	return strings.TrimSpace(line), ""
}

// Parse reads declarations from r, skipping blank lines and lines whose
// first non-space character is '#'.
func Parse(r io.Reader) (List, error) {
	var (
		list  List
		index = make(map[string]int)
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, constraint := Split(line)
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			list[i].Constraint = constraint
			continue
		}
		index[name] = len(list)
		list = append(list, Requirement{Name: name, Constraint: constraint})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading requirements: %w", err)
	}
	return list, nil
}

// ParseFile parses the requirements file at path.
func ParseFile(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening requirements file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
