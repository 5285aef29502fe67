package bits

// BitWriter packs groups of bits, most significant first, back into bytes. It is the inverse of BitReader
type BitWriter struct {
	bytes       []byte
	current     byte
	currentBits uint
}

func NewBitWriter(sizeHint int) *BitWriter {
	return &BitWriter{bytes: make([]byte, 0, sizeHint)}
}

// WriteBits appends the low bitsToWrite bits of value
func (bw *BitWriter) WriteBits(value byte, bitsToWrite uint) {
	for i := bitsToWrite; i > 0; i-- {
		bw.current = bw.current<<1 | (value>>(i-1))&1
		bw.currentBits++
		if bw.currentBits == 8 {
			bw.bytes = append(bw.bytes, bw.current)
			bw.current = 0
			bw.currentBits = 0
		}
	}
}

// CompleteBytes returns how many whole bytes were written so far
func (bw *BitWriter) CompleteBytes() int {
	return len(bw.bytes)
}

// Bytes returns the whole bytes written so far. A trailing partial byte is not included
func (bw *BitWriter) Bytes() []byte {
	return bw.bytes
}
