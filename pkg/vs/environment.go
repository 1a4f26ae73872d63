// pkg/vs/environment.go
package vs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"
)

// Var is a single environment variable
type Var struct {
	Name  string
	Value string
}

// Environment is an ordered, read-only set of environment variables as
// captured from a vcvarsall.bat session. Lookups are case-insensitive like
// Windows itself.
type Environment struct {
	vars  []Var
	index map[string]int
}

// NewEnvironment builds an Environment from vars. Later duplicates (compared
// case-insensitively) replace earlier values but keep the first position.
func NewEnvironment(vars []Var) *Environment {
	e := &Environment{index: make(map[string]int, len(vars))}
	for _, v := range vars {
		key := strings.ToUpper(v.Name)
		if i, ok := e.index[key]; ok {
			e.vars[i].Value = v.Value
			continue
		}
		e.index[key] = len(e.vars)
		e.vars = append(e.vars, v)
	}
	return e
}

// FromEnviron converts os.Environ()-style KEY=value pairs
func FromEnviron(environ []string) *Environment {
	vars := make([]Var, 0, len(environ))
	for _, kv := range environ {
		if kv == "" {
			continue
		}
		// Windows keeps per-drive entries like "=C:=C:\x", so the name
		// may itself start with '='.
		i := strings.IndexByte(kv[1:], '=')
		if i < 0 {
			continue
		}
		i++
		vars = append(vars, Var{Name: kv[:i], Value: kv[i+1:]})
	}
	return NewEnvironment(vars)
}

// Get returns the value of name
func (e *Environment) Get(name string) (string, bool) {
	i, ok := e.index[strings.ToUpper(name)]
	if !ok {
		return "", false
	}
	return e.vars[i].Value, true
}

// Len returns the number of variables
func (e *Environment) Len() int {
	return len(e.vars)
}

// Vars returns a copy of the variables in capture order
func (e *Environment) Vars() []Var {
	return append([]Var(nil), e.vars...)
}

// Environ returns KEY=value pairs suitable for exec.Cmd.Env
func (e *Environment) Environ() []string {
	out := make([]string, len(e.vars))
	for i, v := range e.vars {
		out[i] = v.Name + "=" + v.Value
	}
	return out
}

// LookPath searches the environment's own PATH for file
func (e *Environment) LookPath(file string) (string, error) {
	path, _ := e.Get("PATH")
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, file)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s not found in PATH", file)
}

// MarshalJSON encodes the environment as a JSON object in capture order
func (e *Environment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WriteJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes the environment as a single-line JSON object. Non-ASCII
// characters are \u-escaped so the output survives any console code page.
func (e *Environment) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range e.vars {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeASCIIString(&buf, v.Name)
		buf.WriteString(": ")
		writeASCIIString(&buf, v.Value)
	}
	buf.WriteByte('}')
	_, err := w.Write(buf.Bytes())
	return err
}

func writeASCIIString(buf *bytes.Buffer, s string) {
	encoded, _ := json.Marshal(s) // strings always marshal
	for _, r := range string(encoded) {
		switch {
		case r < 0x80:
			buf.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(buf, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(buf, `\u%04x`, r)
		}
	}
}

// ParseEnvironment decodes a JSON object into an Environment, preserving
// key order.
func ParseEnvironment(data []byte) (*Environment, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decoding environment: expected JSON object, got %v", tok)
	}

	var vars []Var
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding environment: %w", err)
		}
		key, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decoding environment value of %q: %w", key, err)
		}
		vars = append(vars, Var{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}

	return NewEnvironment(vars), nil
}
