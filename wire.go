package xsum

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Wire layout (all fields little-endian, fixed width, no padding):
//
//	SmallAccumulator:
//	  schunks * int64   chunk
//	  int64             Inf
//	  int64             NaN
//	  int32             addsUntilPropagate
//
//	LargeAccumulator:
//	  lchunks * uint64       chunk
//	  lchunks * int16        count
//	  (lchunks/64) * uint64  chunksUsed
//	  uint64                 usedUsed
//	  <embedded SmallAccumulator, same layout as above>
//
// Unlike the rest of this package, decoding returns an error rather than
// panicking: a malformed byte stream is an untrusted-input boundary
// (disk/network), not a same-process programming contract.

// MarshalBinary encodes sa in the wire layout described above.
func (sa *SmallAccumulator) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(smallWireSize)
	if err := sa.writeTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes sa from the wire layout described above.
func (sa *SmallAccumulator) UnmarshalBinary(data []byte) error {
	if len(data) != smallWireSize {
		return fmt.Errorf("xsum: small accumulator wire data has %d bytes, want %d", len(data), smallWireSize)
	}
	return sa.readFrom(bytes.NewReader(data))
}

const smallWireSize = schunks*8 + 8 + 8 + 4

func (sa *SmallAccumulator) writeTo(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, sa.chunk[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, sa.inf); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, sa.nan); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, sa.addsUntilPropagate)
}

func (sa *SmallAccumulator) readFrom(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, sa.chunk[:]); err != nil {
		return fmt.Errorf("xsum: reading small accumulator chunks: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &sa.inf); err != nil {
		return fmt.Errorf("xsum: reading small accumulator Inf: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &sa.nan); err != nil {
		return fmt.Errorf("xsum: reading small accumulator NaN: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &sa.addsUntilPropagate); err != nil {
		return fmt.Errorf("xsum: reading small accumulator adds-until-propagate: %w", err)
	}
	return nil
}

const largeWireSize = lchunks*8 + lchunks*2 + (lchunks/64)*8 + 8 + smallWireSize

// MarshalBinary encodes la in the wire layout described above.
func (la *LargeAccumulator) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(largeWireSize)

	if err := binary.Write(buf, binary.LittleEndian, la.chunk[:]); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, la.count[:]); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, la.used.chunksUsed[:]); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, la.used.usedUsed); err != nil {
		return nil, err
	}
	if err := la.sacc.writeTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes la from the wire layout described above.
func (la *LargeAccumulator) UnmarshalBinary(data []byte) error {
	if len(data) != largeWireSize {
		return fmt.Errorf("xsum: large accumulator wire data has %d bytes, want %d", len(data), largeWireSize)
	}

	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, la.chunk[:]); err != nil {
		return fmt.Errorf("xsum: reading large accumulator chunks: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, la.count[:]); err != nil {
		return fmt.Errorf("xsum: reading large accumulator counts: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, la.used.chunksUsed[:]); err != nil {
		return fmt.Errorf("xsum: reading large accumulator chunk-used bitset: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &la.used.usedUsed); err != nil {
		return fmt.Errorf("xsum: reading large accumulator used-used summary: %w", err)
	}
	return la.sacc.readFrom(r)
}
