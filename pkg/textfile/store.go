// Package textfile reads and writes generated text files. Writes are skipped
// when the file already holds the same text so that downstream build steps
// keyed on modification time are not retriggered.
package textfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding selects the on-disk representation of generated text
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16LE
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF16LE:
		return "utf-16le"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

func (e Encoding) codec() (encoding.Encoding, error) {
	switch e {
	case UTF8:
		return nil, nil
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %v", e)
	}
}

// Store is a TextFileStore on top of a billy filesystem
type Store struct {
	fs       billy.Filesystem
	encoding Encoding
	newline  string
	onWrite  func(name string)
}

// Option configures a Store
type Option func(*Store)

// WithEncoding sets the encoding used for reads and writes
func WithEncoding(e Encoding) Option {
	return func(s *Store) {
		s.encoding = e
	}
}

// WithNewline translates "\n" to nl on write, e.g. "\r\n"
func WithNewline(nl string) Option {
	return func(s *Store) {
		s.newline = nl
	}
}

// WithWriteHook calls fn after every write that reaches the filesystem
func WithWriteHook(fn func(name string)) Option {
	return func(s *Store) {
		s.onWrite = fn
	}
}

// New creates a Store over fs
func New(fs billy.Filesystem, opts ...Option) *Store {
	s := &Store{fs: fs, encoding: UTF8}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOS creates a Store rooted at dir on the local disk
func NewOS(dir string, opts ...Option) *Store {
	return New(osfs.New(dir), opts...)
}

// Filesystem returns the underlying filesystem
func (s *Store) Filesystem() billy.Filesystem {
	return s.fs
}

// Encode renders content the way it is stored on disk
func (s *Store) Encode(content string) ([]byte, error) {
	content = s.translate(content)
	codec, err := s.encoding.codec()
	if err != nil {
		return nil, err
	}
	if codec == nil {
		return []byte(content), nil
	}
	data, err := codec.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("encoding as %v: %w", s.encoding, err)
	}
	return data, nil
}

// translate applies the newline convention
func (s *Store) translate(content string) string {
	if s.newline != "" && s.newline != "\n" {
		return strings.ReplaceAll(content, "\n", s.newline)
	}
	return content
}

// Read returns the decoded content of name. ok is false when the file does
// not exist or cannot be decoded.
func (s *Store) Read(name string) (content string, ok bool, err error) {
	data, err := util.ReadFile(s.fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", name, err)
	}

	codec, err := s.encoding.codec()
	if err != nil {
		return "", false, err
	}
	if codec == nil {
		if !utf8.Valid(data) {
			return "", false, nil
		}
		return string(data), true, nil
	}
	if len(data)%2 != 0 {
		return "", false, nil
	}
	decoded, err := codec.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(decoded) {
		return "", false, nil
	}
	return string(decoded), true, nil
}

// Write unconditionally stores content at name
func (s *Store) Write(name, content string) error {
	data, err := s.Encode(content)
	if err != nil {
		return err
	}
	return s.write(name, data)
}

// WriteIfChanged stores content unless name already holds it. The old file
// is decoded with the store's encoding; a file that cannot be decoded counts
// as absent and is overwritten. It reports whether a write happened.
func (s *Store) WriteIfChanged(name, content string) (bool, error) {
	data, err := s.Encode(content)
	if err != nil {
		return false, err
	}

	old, ok, err := s.Read(name)
	if err != nil {
		return false, err
	}
	if ok && old == s.translate(content) {
		return false, nil
	}

	if err := s.write(name, data); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) write(name string, data []byte) error {
	if dir := filepath.Dir(name); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(s.fs, name, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if s.onWrite != nil {
		s.onWrite(name)
	}
	return nil
}
