// Package conformance holds golden wire format vectors.
//
// Each vector is a message, the name of the type it holds, and either nothing more (the message must
// decode, and re-encode to the same bytes) or the kind of error decoding must fail with.
// Vectors are written in YAML under testdata; bytes are hex, whitespace separated, with # comments.
package conformance

import (
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/stewi1014/fidl/encio"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testdata embed.FS

// Vector is a single golden message.
type Vector struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Types are the names of the types the message can be decoded as.
	Types []string `yaml:"types"`

	// Hex is the message's bytes.
	Hex string `yaml:"bytes"`

	// Handles is the number of handles accompanying the message.
	Handles int `yaml:"handles,omitempty"`

	// Error names the error kind decoding fails with, or is empty if decoding succeeds.
	Error string `yaml:"error,omitempty"`
}

// Bytes parses the vector's bytes.
func (v Vector) Bytes() ([]byte, error) {
	var b []byte
	for _, line := range strings.Split(v.Hex, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, field := range strings.Fields(line) {
			decoded, err := hex.DecodeString(field)
			if err != nil {
				return nil, fmt.Errorf("vector %v: %w", v.Name, err)
			}
			b = append(b, decoded...)
		}
	}
	return b, nil
}

// ErrorKind returns the error named by the vector, or nil if it should decode.
func (v Vector) ErrorKind() (error, error) {
	if v.Error == "" {
		return nil, nil
	}
	err, ok := errorKinds[v.Error]
	if !ok {
		return nil, fmt.Errorf("vector %v: unknown error kind %q", v.Name, v.Error)
	}
	return err, nil
}

var errorKinds = map[string]error{
	"OutOfRange":        encio.ErrOutOfRange,
	"ExtraBytes":        encio.ErrExtraBytes,
	"ExtraHandles":      encio.ErrExtraHandles,
	"NonZeroPadding":    encio.ErrNonZeroPadding,
	"Invalid":           encio.ErrInvalid,
	"NotNullable":       encio.ErrNotNullable,
	"UnexpectedNullRef": encio.ErrUnexpectedNullRef,
	"UnknownUnionTag":   encio.ErrUnknownUnionTag,
	"MaxRecursionDepth": encio.ErrMaxRecursionDepth,
	"Utf8Error":         encio.ErrUTF8,
	"BadConfig":         encio.ErrBadConfig,
}

// Load reads the vectors from every file in fsys matching pattern.
// Vector names must be unique.
func Load(fsys fs.FS, pattern string) ([]Vector, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}

	var vectors []Vector
	seen := make(map[string]string)
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, encio.NewIOError(err, "reading "+file)
		}

		var fileVectors []Vector
		if err := yaml.Unmarshal(data, &fileVectors); err != nil {
			return nil, fmt.Errorf("parsing %v: %w", file, err)
		}
		for _, v := range fileVectors {
			if other, ok := seen[v.Name]; ok {
				return nil, fmt.Errorf("vector %v in %v is already defined in %v", v.Name, file, other)
			}
			seen[v.Name] = file
		}
		vectors = append(vectors, fileVectors...)
	}
	return vectors, nil
}

// Vectors returns the built in vectors.
func Vectors() ([]Vector, error) {
	return Load(testdata, "testdata/*.yaml")
}

// ErrNotFound is returned by Lookup for a name with no vector.
var ErrNotFound = errors.New("vector not found")

// Lookup returns the built in vector with the given name.
func Lookup(name string) (Vector, error) {
	vectors, err := Vectors()
	if err != nil {
		return Vector{}, err
	}
	for _, v := range vectors {
		if v.Name == name {
			return v, nil
		}
	}
	return Vector{}, fmt.Errorf("%w: %v", ErrNotFound, name)
}

// MustBytes returns the bytes of the named built in vector, panicking on failure.
// It is for use in tests.
func MustBytes(name string) []byte {
	v, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	b, err := v.Bytes()
	if err != nil {
		panic(err)
	}
	return b
}
