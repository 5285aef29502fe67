package bits

import (
	"fmt"
	"testing"

	"github.com/NotSooShariff/adversarial-vision/test"
)

const numOfBytesForBenchmark = 1000000

func BenchmarkReadBits(b *testing.B) {
	bytesToRead := test.GenerateRandomBytes(numOfBytesForBenchmark)
	for bitsPerRead := uint(1); bitsPerRead <= 3; bitsPerRead++ {
		b.Run(fmt.Sprintf("BitsPerRead=%d", bitsPerRead), func(b *testing.B) {
			b.SetBytes(int64(numOfBytesForBenchmark))
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				bBitReader := NewBitReader(bytesToRead)
				b.StartTimer()
				for len(bBitReader.bytes) > 0 {
					bBitReader.ReadBits(bitsPerRead)
				}
			}
		})
	}
}
