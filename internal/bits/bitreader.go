package bits

// BitReader implements methods to help with reading bits from an array of bytes. Bits are read from most significant
// to least significant, so a group of bits keeps the order it had in the source bytes
type BitReader struct {
	bytes         []byte
	currentBitIdx uint
}

func NewBitReader(bytes []byte) *BitReader {
	return &BitReader{
		bytes: bytes,
	}
}

func (br *BitReader) BitsLeftToRead() int {
	if len(br.bytes) == 0 {
		return 0
	}
	return (len(br.bytes)-1)*8 + (8 - int(br.currentBitIdx))
}

// ReadBits returns the next bitsToRead bits (at most 8) in the low end of the returned byte. When fewer bits are
// left, the missing low order bits are zero, as if the source was padded with zeros
func (br *BitReader) ReadBits(bitsToRead uint) (byteWithRequestedBits byte) {
	for i := uint(0); i < bitsToRead; i++ {
		byteWithRequestedBits <<= 1
		if len(br.bytes) == 0 {
			continue
		}
		byteWithRequestedBits |= (br.bytes[0] >> (7 - br.currentBitIdx)) & 1
		br.currentBitIdx++
		if br.currentBitIdx == 8 {
			br.bytes = br.bytes[1:]
			br.currentBitIdx = 0
		}
	}
	return byteWithRequestedBits
}
