package nbt

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// NamedTag pairs a top-level tag with the name it was (or will be) written
// under. Files and documents are a concatenation of these.
type NamedTag struct {
	Name string
	Tag  Tag
}

// gzipLevelFor picks a deflate level by payload size: small payloads favor
// speed, large ones favor ratio, matching the thresholds used when
// persisting region/chunk data to disk.
func gzipLevelFor(size int) int {
	switch {
	case size < 100*1024:
		return gzip.BestSpeed
	case size < 10*1024*1024:
		return 5
	default:
		return gzip.DefaultCompression
	}
}

// SerializeDocument concatenates tags as named top-level file-format tags
// and, if compress is true, gzip-wraps the result. The compression level is
// chosen from the uncompressed size per gzipLevelFor.
func SerializeDocument(tags []NamedTag, compress bool) ([]byte, error) {
	var buf bytes.Buffer
	for _, nt := range tags {
		data, err := Encode(nt.Tag, nt.Name, false)
		if err != nil {
			return nil, fmt.Errorf("nbt: encode %q: %w", nt.Name, err)
		}
		buf.Write(data)
	}

	if !compress {
		return buf.Bytes(), nil
	}

	var gz bytes.Buffer
	w, err := gzip.NewWriterLevel(&gz, gzipLevelFor(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("nbt: gzip writer: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("nbt: gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("nbt: gzip close: %w", err)
	}
	return gz.Bytes(), nil
}

// Deserialize is the inverse of SerializeDocument: it gunzips (if
// compressed) then reads consecutive named file-format tags until the
// input is exhausted.
func Deserialize(data []byte, compressed bool) ([]NamedTag, error) {
	if compressed {
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("nbt: gzip reader: %w", err)
		}
		defer func() { _ = gr.Close() }()
		raw, err := io.ReadAll(gr)
		if err != nil {
			return nil, fmt.Errorf("nbt: gzip read: %w", err)
		}
		data = raw
	}

	var tags []NamedTag
	br := bytes.NewReader(data)
	for br.Len() > 0 {
		tag, name, err := NewReaderFrom(br).ReadTag(false)
		if err != nil {
			return nil, err
		}
		tags = append(tags, NamedTag{Name: name, Tag: tag})
	}
	return tags, nil
}

// FromJSON converts a generic decoded-JSON-shaped value into an NBT tree:
// map[string]any becomes Compound, []any becomes List (the tag of its
// first element must match every other element), bool becomes Byte,
// int, int32 and int64 become Int, float32 and float64 become Float, and
// string becomes String. Any other type, including the other integer
// kinds, is rejected with an error. This is the mapping the registry codec relies on to turn
// its dimension/biome JSON definitions into wire-ready NBT.
func FromJSON(v any) (Tag, error) {
	switch t := v.(type) {
	case map[string]any:
		c := NewCompound()
		for k, val := range t {
			tag, err := FromJSON(val)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			c.Set(k, tag)
		}
		return c, nil

	case []any:
		if len(t) == 0 {
			return List{ElementType: TagEnd}, nil
		}
		first, err := FromJSON(t[0])
		if err != nil {
			return nil, err
		}
		elemType := first.ID()
		elems := make([]Tag, len(t))
		elems[0] = first
		for i := 1; i < len(t); i++ {
			elem, err := FromJSON(t[i])
			if err != nil {
				return nil, err
			}
			if elem.ID() != elemType {
				return nil, fmt.Errorf("%w: element %d has type %s, expected %s",
					ErrMixedListTypes, i, TagName(elem.ID()), TagName(elemType))
			}
			elems[i] = elem
		}
		return List{ElementType: elemType, Elements: elems}, nil

	case bool:
		if t {
			return Byte(1), nil
		}
		return Byte(0), nil

	case int:
		return Int(int32(t)), nil
	case int32:
		return Int(t), nil
	case int64:
		return Int(int32(t)), nil
	case float32:
		return Float(t), nil
	case float64:
		return Float(float32(t)), nil
	case string:
		return String(t), nil

	default:
		return nil, fmt.Errorf("nbt: cannot convert %T to NBT", v)
	}
}
