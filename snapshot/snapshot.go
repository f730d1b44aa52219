// Package snapshot persists hierarchical indexes as self-describing binary
// artifacts.
//
// A snapshot stores the encoded representation (per-level dictionaries plus
// integer codes), which is both smaller than the decoded table and exactly
// what the constructor validates on load. The header records format version,
// compression and codec name, so files remain readable after defaults change.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/colidx"
	"github.com/hupe1980/colidx/blobstore"
	"github.com/hupe1980/colidx/codec"
	"github.com/hupe1980/colidx/column"
	"github.com/hupe1980/colidx/resource"
)

var (
	// ErrBadMagic is returned when the input does not start with the
	// snapshot magic bytes.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion is returned for format versions newer than this
	// library understands.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrUnknownCodec is returned when the codec named in the header is not
	// registered.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
)

var magic = [4]byte{'C', 'I', 'D', 'X'}

const formatVersion = 1

// Options configure snapshot writes. The zero value uses the default codec
// and no compression; DefaultOptions selects ZSTD.
type Options struct {
	// Codec encodes the payload. Defaults to codec.Default.
	Codec codec.Codec

	// Compression selects the payload compression. Defaults to ZSTD.
	Compression CompressionType

	// Controller, when set, throttles snapshot IO and bounds concurrent
	// snapshot jobs.
	Controller *resource.Controller
}

func (o Options) normalized() Options {
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	return o
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Codec:       codec.Default,
		Compression: CompressionZSTD,
	}
}

type namePayload struct {
	Value string `json:"value,omitempty"`
	Valid bool   `json:"valid"`
}

type levelPayload struct {
	Name   string         `json:"name"`
	Values []column.Value `json:"values"`
}

type payload struct {
	Names  []namePayload  `json:"names"`
	Levels []levelPayload `json:"levels"`
	Codes  [][]int64      `json:"codes"`
}

// Write serializes the index to w.
func Write(w io.Writer, idx *colidx.MultiLevelIndex, opts Options) error {
	opts = opts.normalized()

	p := payload{
		Names:  make([]namePayload, 0, idx.NLevels()),
		Levels: make([]levelPayload, 0, idx.NLevels()),
		Codes:  make([][]int64, 0, idx.NLevels()),
	}
	for _, n := range idx.Names() {
		p.Names = append(p.Names, namePayload{Value: n.Value(), Valid: n.Valid()})
	}
	for _, lvl := range idx.Levels() {
		p.Levels = append(p.Levels, levelPayload{Name: lvl.Name(), Values: lvl.Values()})
	}
	codesTable := idx.Codes()
	for i := 0; i < codesTable.NumColumns(); i++ {
		col := codesTable.Column(i)
		cs := make([]int64, col.Len())
		for j := 0; j < col.Len(); j++ {
			c, ok := col.At(j).AsInt64()
			if !ok {
				return fmt.Errorf("snapshot: non-integer code at level %d row %d", i, j)
			}
			cs[j] = c
		}
		p.Codes = append(p.Codes, cs)
	}

	raw, err := opts.Codec.Marshal(p)
	if err != nil {
		return fmt.Errorf("snapshot: encode payload: %w", err)
	}
	block, err := compressBlock(raw, opts.Compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress payload: %w", err)
	}

	codecName := opts.Codec.Name()
	if len(codecName) > 255 {
		return fmt.Errorf("snapshot: codec name too long: %q", codecName)
	}
	header := make([]byte, 0, len(magic)+3+len(codecName))
	header = append(header, magic[:]...)
	header = append(header, formatVersion, byte(opts.Compression), byte(len(codecName)))
	header = append(header, codecName...)

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(block)
	return err
}

// Read deserializes an index from r. Construction re-validates the encoded
// payload, so a corrupt or hand-edited snapshot fails with the same errors as
// a bad constructor call.
func Read(r io.Reader, optFns ...colidx.Option) (*colidx.MultiLevelIndex, error) {
	var fixed [7]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if !bytes.Equal(fixed[:4], magic[:]) {
		return nil, ErrBadMagic
	}
	if fixed[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, fixed[4])
	}
	compression := CompressionType(fixed[5])

	nameBuf := make([]byte, fixed[6])
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, fmt.Errorf("snapshot: read codec name: %w", err)
	}
	c, ok := codec.ByName(string(nameBuf))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, nameBuf)
	}

	block, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read payload: %w", err)
	}
	raw, err := decompressBlock(block, compression)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress payload: %w", err)
	}

	var p payload
	if err := c.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("snapshot: decode payload: %w", err)
	}

	names := make([]colidx.Name, len(p.Names))
	for i, n := range p.Names {
		if n.Valid {
			names[i] = colidx.NameOf(n.Value)
		}
	}
	levels := make([]*column.Column, len(p.Levels))
	for i, lvl := range p.Levels {
		levels[i] = column.New(lvl.Name, lvl.Values...)
	}
	return colidx.New(levels, p.Codes, names, optFns...)
}

// Save writes the index to the store under name. A configured controller
// bounds concurrent snapshot jobs and throttles upload throughput.
func Save(ctx context.Context, store blobstore.Store, name string, idx *colidx.MultiLevelIndex, opts Options) error {
	if err := opts.Controller.AcquireWorker(ctx); err != nil {
		return err
	}
	defer opts.Controller.ReleaseWorker()

	var buf bytes.Buffer
	if err := Write(&buf, idx, opts); err != nil {
		return err
	}
	var r io.Reader = &buf
	if opts.Controller != nil {
		r = resource.NewRateLimitedReader(ctx, r, opts.Controller)
	}
	return store.Put(ctx, name, r)
}

// Load reads the index stored under name.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...colidx.Option) (*colidx.MultiLevelIndex, error) {
	rc, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Read(rc, optFns...)
}
