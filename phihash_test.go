package phihash

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/bits"
	"math/rand"
	"sync"
	"testing"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const fox = "The quick brown fox jumps over the lazy dog"

type vector struct {
	in   []byte
	want string
}

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

var vectors256 = []vector{
	{nil, "91dcce2382c98fd7879c6dc926082cc27f4dcecf34ecfc96487cf75379da3f1d"},
	{[]byte("abc"), "3f48e87f641795a992c7ba6c5b14b14d0603d874691d2a26551fb4f918ddb0e4"},
	{[]byte(fox), "0fa86ea43f4c9932a8bf0bacb9ad3cc01929a216e82a42d6a0235e201dd6ce64"},
	{seq(55), "c0773df62dfc03ec5c69de5ded15a97efb10167b4fd045ed3819097ae37cb11a"},
	{seq(56), "1ae666e11ce1b1825a043949efd859d9d7fea48afef0796ebceb5d26b2e6ef7b"},
	{seq(63), "a2238994ded10cc959a598fec82be5e0e9cbe808abe61aacc6c410ad2ad7cf52"},
	{seq(64), "450d27ba0c8e98044115725a218e8aa75059847130ad8637deb63f345e5ccc6c"},
	{seq(1000), "513c684604586b18c47966e2ad8f6dcf7dbbe1d5bf0f1eb76c4881eefecf2905"},
	{bytes.Repeat([]byte("a"), 100000), "bd58562b633cb3b2c5e82bc7629b9dcb0db36194f339a69b0dde6f5e40f1a2cc"},
}

var vectors512 = []vector{
	{nil, "ce2adf397b9748216286f4714829d3f562b0ce1394cbd597dad1975d67e2acae7153cb874365f3a74efb2d47a4394a2db5bf06db47616d8aa9e90c209db31f0c"},
	{[]byte("abc"), "d6b649bc6cf1445141d3d1be3131a2c8c7f4ffd1169e694d132e8a859c124d4b074997579d93f13a04d078f92a289d418f2c55481d1fa6f2ef0fc4ed82e14faf"},
	{[]byte(fox), "359adb1e5d3e00aee76d8a397f76b5f2474b9a1d829b74dd66dd7eda1971f1c47a3759331438847be6a762001f44cb4bc3130a0dceb4a4c3d2a6d24a51b00fda"},
	{seq(111), "8f38c46bc3d228b88fc0efad1e0194c545f56d033b9146309d2d304edc46f571347ba73889984aea9c9132c64124eff1837b0c5f7a076fc2ea217fa2fc7dfe09"},
	{seq(112), "d5b4e216d2f147c6e5c4308045771efb9e16f31fa80e1e3edb72d7aee1fddbba061ae19850870d4c4c751cd0a0ba64b83b7a0d84d3ee14b6ef48abcd1d19a712"},
	{seq(127), "423acf71b316d36fb4b03a88ddaa866bdf4461c89e6bbd8b8950f44ec3f998bc9a67e3ea291664f91cc0d255d1e54fd8af4443a16d624928f409429fc2539b13"},
	{seq(128), "1ce68bc9da4502cf9779f51abe882b965c84945011e2a46da7b4cd9c4c72ebbb4968d222c805fefa79aa32c6ab0c0bc3e639c187611238d8a0b55e948bbd862f"},
	{seq(1000), "595ee0ec98ce13f6acc23b15b341ac2814c263e3f8a6cb31c21474e245bcb9ad3aa4d560129bd0eb3f05f3eb19c41c400eb00bf155d1132097148e0322615d66"},
	{bytes.Repeat([]byte("a"), 100000), "6a940049f862d26322ff87414230cf6c8581b1964102897a96d2bc8f08353dfdf9144694cbba20ce6d8682337a3afaa545442bb10e2286147181cf106045e3ea"},
}

func TestSum256Vectors(t *testing.T) {
	for _, v := range vectors256 {
		t.Run(fmt.Sprintf("len=%d", len(v.in)), func(t *testing.T) {
			got := Sum256(v.in)
			if hex.EncodeToString(got[:]) != v.want {
				t.Fatalf("Sum256 = %x, want %s", got, v.want)
			}
			var h Hasher256
			h.Write(v.in)
			final, err := h.Final()
			if err != nil {
				t.Fatal(err)
			}
			if final != got {
				t.Fatalf("Final = %x, want %x", final, got)
			}
		})
	}
}

func TestSum512Vectors(t *testing.T) {
	for _, v := range vectors512 {
		t.Run(fmt.Sprintf("len=%d", len(v.in)), func(t *testing.T) {
			got := Sum512(v.in)
			if hex.EncodeToString(got[:]) != v.want {
				t.Fatalf("Sum512 = %x, want %s", got, v.want)
			}
			h := New512()
			h.Write(v.in)
			if sum := h.Sum(nil); !bytes.Equal(sum, got[:]) {
				t.Fatalf("New512().Sum = %x, want %x", sum, got)
			}
		})
	}
}

func TestHasherStreaming(t *testing.T) {
	data := []byte("hello world, this is a longer test string for streaming phihash")
	want := Sum256(data)
	// Byte by byte.
	var h Hasher256
	for _, b := range data {
		h.Write([]byte{b})
	}
	if got := h.Sum256(); got != want {
		t.Fatalf("streaming byte-by-byte: %x vs %x", got, want)
	}
}

func TestHasherMultiBlock(t *testing.T) {
	// Exactly 2 blocks + partial for both variants.
	data := make([]byte, BlockSize512*2+50)
	for i := range data {
		data[i] = byte(i * 7)
	}
	want256, want512 := Sum256(data), Sum512(data)
	// Write in chunks of 37 (not aligned to either block size).
	var h256 Hasher256
	var h512 Hasher512
	for i := 0; i < len(data); i += 37 {
		end := min(i+37, len(data))
		h256.Write(data[i:end])
		h512.Write(data[i:end])
	}
	if got := h256.Sum256(); got != want256 {
		t.Fatalf("multi-block streaming 256: %x vs %x", got, want256)
	}
	if got := h512.Sum512(); got != want512 {
		t.Fatalf("multi-block streaming 512: %x vs %x", got, want512)
	}
}

func TestSumDoesNotModifyState(t *testing.T) {
	var h Hasher256
	h.Write([]byte("ab"))
	first := h.Sum(nil)
	if second := h.Sum(nil); !bytes.Equal(first, second) {
		t.Fatalf("Sum not idempotent: %x vs %x", first, second)
	}
	h.Write([]byte("c"))
	if got, want := h.Sum256(), Sum256([]byte("abc")); got != want {
		t.Fatalf("Write after Sum: %x, want %x", got, want)
	}
}

func TestFinalClearsHasher(t *testing.T) {
	var h Hasher512
	h.Write([]byte("secret material"))
	if _, err := h.Final(); err != nil {
		t.Fatal(err)
	}
	if h != (Hasher512{}) {
		t.Fatal("Final left state behind")
	}
	// A cleared hasher starts over.
	h.Write([]byte("abc"))
	if got, want := h.Sum512(), Sum512([]byte("abc")); got != want {
		t.Fatalf("reuse after Final: %x, want %x", got, want)
	}
}

func TestZeroValueHasher(t *testing.T) {
	var h Hasher256
	if got, want := h.Sum256(), Sum256(nil); got != want {
		t.Fatalf("zero value Sum256 = %x, want %x", got, want)
	}
	var h2 Hasher256
	got, err := h2.Final()
	if err != nil || got != Sum256(nil) {
		t.Fatalf("zero value Final = %x, %v", got, err)
	}
}

func TestDeterminismConcurrent(t *testing.T) {
	data := seq(4096)
	want := Sum512(data)
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if got := Sum512(data); got != want {
					errs <- fmt.Sprintf("%x", got)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatalf("concurrent digest differs: %s", e)
	}
}

func flipRandomBit(rng *rand.Rand, m []byte) []byte {
	out := append([]byte(nil), m...)
	bit := rng.Intn(len(out) * 8)
	out[bit/8] ^= 1 << (bit % 8)
	return out
}

func hamming(a, b []byte) int {
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n
}

func TestAvalanche(t *testing.T) {
	const trials = 1000
	rng := rand.New(rand.NewSource(1))
	for _, tc := range []struct {
		name string
		sum  func([]byte) []byte
	}{
		{"256", func(m []byte) []byte { s := Sum256(m); return s[:] }},
		{"512", func(m []byte) []byte { s := Sum512(m); return s[:] }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var total float64
			for i := 0; i < trials; i++ {
				m := make([]byte, 1+rng.Intn(200))
				rng.Read(m)
				a, b := tc.sum(m), tc.sum(flipRandomBit(rng, m))
				total += float64(hamming(a, b)) / float64(len(a)*8)
			}
			if mean := total / trials; mean < 0.48 || mean > 0.52 {
				t.Fatalf("mean fraction of flipped digest bits = %.4f", mean)
			}
		})
	}
}

// The digest is a non-linear fold of a state twice its width, so a second
// block cannot be chained from a published digest. Continuing from the
// digest words as if they were a chaining value must not reproduce the real
// extension.
func TestFoldHidesChainingValue(t *testing.T) {
	m := []byte("prefix message")
	var d Hasher256
	d.Write(m)
	if len(d.h)*4 <= Size256 {
		t.Fatal("digest is as wide as the chaining state")
	}
	digest := Sum256(m)

	// The real state after m and its padding.
	c := d
	c.checkSum()
	chain := c.h

	// Forge a state from the digest: upper half from the digest, lower half
	// zero. Extending it must not match extending the real state.
	var forged [16]uint32
	for q := 0; q < 8; q++ {
		forged[q] = uint32(digest[4*q])<<24 | uint32(digest[4*q+1])<<16 | uint32(digest[4*q+2])<<8 | uint32(digest[4*q+3])
	}
	for q := 0; q < 8; q++ {
		if forged[q] == chain[q] || forged[q] == chain[q+8] {
			t.Fatalf("digest word %d equals a chaining word", q)
		}
	}
	block := make([]byte, BlockSize256)
	compress256(&chain, block)
	compress256(&forged, block)
	if fold256(&chain) == fold256(&forged) {
		t.Fatal("extension from digest matches real extension")
	}
}

func FuzzSum256(f *testing.F) {
	f.Add([]byte(nil), uint8(1))
	f.Add([]byte("hello"), uint8(2))
	f.Add([]byte("hello world, this is a longer test string for streaming phihash"), uint8(7))
	f.Add(make([]byte, BlockSize256), uint8(64))
	f.Add(make([]byte, BlockSize256+1), uint8(13))
	f.Add(make([]byte, BlockSize512*3+50), uint8(200))

	f.Fuzz(func(t *testing.T, data []byte, chunk uint8) {
		step := int(chunk) + 1
		want256, want512 := Sum256(data), Sum512(data)

		// Streaming in chunks of step bytes.
		var h256 Hasher256
		var h512 Hasher512
		for i := 0; i < len(data); i += step {
			end := min(i+step, len(data))
			h256.Write(data[i:end])
			h512.Write(data[i:end])
		}
		if got := h256.Sum256(); got != want256 {
			t.Fatalf("Hasher256 mismatch for len=%d step=%d\ngot:  %x\nwant: %x", len(data), step, got, want256)
		}
		got512, err := h512.Final()
		if err != nil {
			t.Fatal(err)
		}
		if got512 != want512 {
			t.Fatalf("Hasher512 mismatch for len=%d step=%d\ngot:  %x\nwant: %x", len(data), step, got512, want512)
		}

		// Byte by byte.
		h256.Reset()
		for _, b := range data {
			h256.Write([]byte{b})
		}
		if got := h256.Sum256(); got != want256 {
			t.Fatalf("Hasher256 byte-by-byte mismatch for len=%d\ngot:  %x\nwant: %x", len(data), got, want256)
		}
	})
}

func BenchmarkSum256_500K(b *testing.B) {
	data := make([]byte, 500*1024)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Sum256(data)
	}
}

// Comparison benchmarks: phihash vs golang.org/x/crypto.
var benchSizes = []int{32, 128, 256, 1024, 4096, 500 * 1024}

func benchName(size int) string {
	switch {
	case size >= 1024:
		return fmt.Sprintf("%dK", size/1024)
	default:
		return fmt.Sprintf("%dB", size)
	}
}

func benchSum(b *testing.B, sum func([]byte)) {
	for _, size := range benchSizes {
		data := seq(size)
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sum(data)
			}
		})
	}
}

func BenchmarkSum256(b *testing.B) { benchSum(b, func(d []byte) { Sum256(d) }) }
func BenchmarkSum512(b *testing.B) { benchSum(b, func(d []byte) { Sum512(d) }) }
func BenchmarkSHA3_256(b *testing.B) {
	benchSum(b, func(d []byte) { sha3.Sum256(d) })
}
func BenchmarkBlake2b512(b *testing.B) {
	benchSum(b, func(d []byte) { blake2b.Sum512(d) })
}

func BenchmarkHasher256(b *testing.B) {
	for _, size := range benchSizes {
		data := seq(size)
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			var h Hasher256
			for i := 0; i < b.N; i++ {
				h.Reset()
				h.Write(data)
				h.Sum256()
			}
		})
	}
}
