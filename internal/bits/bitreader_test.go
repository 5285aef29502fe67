package bits

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestReadBits(t *testing.T) {

	// 10000000 00000111 11111111 01100101
	bytesToTestWith := []byte{128, 7, 255, 101}
	expectedBitsToRead := [8][]byte{
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1, 0, 0, 1, 0, 1},
		{2, 0, 0, 0, 0, 0, 1, 3, 3, 3, 3, 3, 1, 2, 1, 1},
		{4, 0, 0, 0, 3, 7, 7, 7, 3, 1, 2},
		{8, 0, 0, 7, 15, 15, 6, 5},
		{16, 0, 3, 31, 30, 25, 8},
		{32, 0, 31, 63, 25, 16},
		{64, 1, 127, 118, 40},
		{128, 7, 255, 101},
	}

	for bitsToRead := uint(1); bitsToRead <= 8; bitsToRead++ {
		tBitReader := NewBitReader(bytesToTestWith)
		for iter, expectedBits := range expectedBitsToRead[bitsToRead-1] {
			bits := tBitReader.ReadBits(bitsToRead)
			if bits != expectedBits {
				t.Errorf("Failure testing bit reader with %d bits per read on iter %d, result was: %d, expected %d", bitsToRead, iter+1, bits, expectedBits)
			}
		}
		if tBitReader.BitsLeftToRead() != 0 {
			t.Errorf("Expected reader to be exhausted with %d bits per read, %d bits left", bitsToRead, tBitReader.BitsLeftToRead())
		}
	}
}

func TestBitsLeftToRead(t *testing.T) {
	br := NewBitReader([]byte{0xff, 0x00})
	if br.BitsLeftToRead() != 16 {
		t.Fatalf("Expected 16 bits left, got %d", br.BitsLeftToRead())
	}
	br.ReadBits(3)
	if br.BitsLeftToRead() != 13 {
		t.Fatalf("Expected 13 bits left, got %d", br.BitsLeftToRead())
	}
	br.ReadBits(8)
	br.ReadBits(5)
	if br.BitsLeftToRead() != 0 {
		t.Fatalf("Expected drained reader to be empty, got %d bits left", br.BitsLeftToRead())
	}
}

func TestWriterInvertsReader(t *testing.T) {
	for groupSize := uint(1); groupSize <= 8; groupSize++ {
		data := make([]byte, 257)
		rand.Read(data)

		br := NewBitReader(data)
		bw := NewBitWriter(len(data))
		for br.BitsLeftToRead() > 0 {
			bw.WriteBits(br.ReadBits(groupSize), groupSize)
		}

		if !bytes.Equal(data, bw.Bytes()[:len(data)]) {
			t.Errorf("Bytes written with group size %d do not match the source", groupSize)
		}
	}
}
