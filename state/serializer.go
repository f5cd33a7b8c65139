package state

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/exp/maps"
)

// CBORChecksumLength is the length of CBOR encoded 4 byte checksum.
const CBORChecksumLength = 5

const serializationVersion = 1

type (
	header struct {
		_           struct{} `cbor:",toarray"`
		Version     uint32
		Round       uint64
		RecordCount uint64
	}

	record struct {
		_     struct{} `cbor:",toarray"`
		Key   []byte
		Value cbor.RawMessage
	}
)

// Serialize writes the committed snapshot to the writer: header, records in key order
// and CRC32 checksum of everything before it.
func (s *State) Serialize(writer io.Writer) error {
	snap := s.Snapshot()

	crc32Writer := NewCRC32Writer(writer)
	encoder := cbor.NewEncoder(crc32Writer)

	keys := maps.Keys(snap.values)
	slices.Sort(keys)

	if err := encoder.Encode(&header{Version: serializationVersion, Round: snap.round, RecordCount: uint64(len(keys))}); err != nil {
		return fmt.Errorf("unable to write header: %w", err)
	}
	for _, k := range keys {
		data, err := cbor.Marshal(snap.values[k])
		if err != nil {
			return fmt.Errorf("unable to encode value %x: %w", []byte(k), err)
		}
		if err := encoder.Encode(&record{Key: []byte(k), Value: data}); err != nil {
			return fmt.Errorf("unable to write record: %w", err)
		}
	}
	// checksum as a fixed length byte array for easier decoding
	if err := encoder.Encode(binary.BigEndian.AppendUint32(nil, crc32Writer.Sum())); err != nil {
		return fmt.Errorf("unable to write checksum: %w", err)
	}
	return nil
}

// NewRecoveredState reads state serialized by Serialize, the recovered snapshot becomes the committed state.
func NewRecoveredState(stateData io.Reader, opts ...Option) (*State, error) {
	if stateData == nil {
		return nil, fmt.Errorf("reader is nil")
	}
	s := NewEmptyState(opts...)
	if s.newValue == nil {
		return nil, fmt.Errorf("value constructor is nil")
	}

	crc32Reader := NewCRC32Reader(stateData, CBORChecksumLength)
	decoder := cbor.NewDecoder(crc32Reader)

	var h header
	if err := decoder.Decode(&h); err != nil {
		return nil, fmt.Errorf("unable to decode header: %w", err)
	}
	if h.Version != serializationVersion {
		return nil, fmt.Errorf("unsupported state version %d", h.Version)
	}

	values := make(map[Key]any, h.RecordCount)
	counts := make(map[Kind]int64)
	for i := uint64(0); i < h.RecordCount; i++ {
		var r record
		if err := decoder.Decode(&r); err != nil {
			return nil, fmt.Errorf("unable to decode record: %w", err)
		}
		key := Key(r.Key)
		v, err := s.newValue(key)
		if err != nil {
			return nil, fmt.Errorf("constructing value for key %x: %w", r.Key, err)
		}
		if err := cbor.Unmarshal(r.Value, v); err != nil {
			return nil, fmt.Errorf("unable to decode value %x: %w", r.Key, err)
		}
		values[key] = v
		counts[key.Kind()]++
	}

	var checksum []byte
	if err := decoder.Decode(&checksum); err != nil {
		return nil, fmt.Errorf("unable to decode checksum: %w", err)
	}
	if !bytes.Equal(checksum, binary.BigEndian.AppendUint32(nil, crc32Reader.Sum())) {
		return nil, fmt.Errorf("checksum mismatch")
	}

	s.committed = newSnapshot(values, counts, h.Round)
	return s, nil
}
