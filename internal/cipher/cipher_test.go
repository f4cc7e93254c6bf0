package cipher

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// Golden vectors captured from the game's routines. Inputs cover both
// first-byte classes, both parities of alignment and nonzero start offsets.
var goldenVectors = []struct {
	name    string
	start   int
	in      string
	encoded string
	decoded string
}{
	{"short mode B", 0, "4142434445", "bebe344545", "bebe344545"},
	{"single high", 0, "80", "7f", "7f"},
	{"single zero", 0, "00", "ff", "ff"},
	{
		"printable 24",
		0,
		"202122232425262728292a2b2c2d2e2f3031323334353637",
		"dfdf222224dbd927824b2a2bd3d3e28a30cf333343cb3637",
		"dfdf222224dbd927824b2a2bd3d3e28a30cf333343cb3637",
	},
	{
		"high first byte 24",
		0,
		"f0000102030405060708090a0b0c0d0e0f10111213141516",
		"0f00100303fcfa06706c090af4f4d0ab0ff0101231ec1516",
		"0f00100303fcfa067064090af4f4d0ab0ff0101231ec1516",
	},
	{
		"start offset 5",
		5,
		"000102030405060708090a0b0c0d0e0f",
		"00fe0230680506f8f890af0bf40c0ef0",
		"00fe0230600506f8f890af0bf40c0ef0",
	},
	{
		"start offset 6",
		6,
		"000102030405060708090a0b0c0d0e0f",
		"ff0120610405f9f980ac0af50d0de0f1",
		"ff0120610405f9f980ac0af50d0de0f1",
	},
	{
		"start offset 1",
		1,
		"000102030405060708090a0b0c",
		"00100303fcfa06706c090af4f4",
		"00100303fcfa067064090af4f4",
	},
	{"zeros 12", 0, "000000000000000000000000", "ff0000010000ff00009c0000", "ff0000010000ff0000640000"},
}

func TestGoldenEncode(t *testing.T) {
	t.Parallel()
	for _, tc := range goldenVectors {
		t.Run(tc.name, func(t *testing.T) {
			buf := unhex(t, tc.in)
			Encode(buf, tc.start)
			assert.Equal(t, tc.encoded, hex.EncodeToString(buf))
		})
	}
}

func TestGoldenDecode(t *testing.T) {
	t.Parallel()
	for _, tc := range goldenVectors {
		t.Run(tc.name, func(t *testing.T) {
			buf := unhex(t, tc.in)
			Decode(buf, tc.start)
			assert.Equal(t, tc.decoded, hex.EncodeToString(buf))
		})
	}
}

func TestEmptyBufferNoop(t *testing.T) {
	t.Parallel()
	Decode(nil, 0)
	Encode(nil, 0)
	Decode([]byte{}, 7)
	Encode([]byte{}, 7)
}

func TestStageInvolution(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	for _, s := range []stage{stageNegate, stageXOR, stageSwap} {
		for _, start := range []int{0, 1, 5, 6, 12, 100} {
			buf := make([]byte, 64)
			rng.Read(buf)
			orig := bytes.Clone(buf)
			s.apply(buf, start)
			s.apply(buf, start)
			assert.Equal(t, orig, buf, "stage %d start %d", s, start)
		}
	}
}

func TestNegationWraparound(t *testing.T) {
	t.Parallel()

	// Negating 0x80 yields 0x80, negating 0 yields 0. Position 1 is on the
	// negation progression; position 0 is not touched by it.
	buf := []byte{0x00, 0x80, 0x00, 0x00, 0x00, 0x00}
	stageNegate.apply(buf, 0)
	assert.Equal(t, []byte{0x00, 0x80, 0x00, 0x00, 0x00, 0x00}, buf)

	buf = []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0xFF}
	stageNegate.apply(buf, 0)
	assert.Equal(t, []byte{0x00, 0xFF, 0x00, 0x00, 0x00, 0x01}, buf)
}

func TestXORKeyIndexInRange(t *testing.T) {
	t.Parallel()
	for j := 0; j < 1<<20; j += 3 {
		idx := (j % 6) + ((j / 5) % 5)
		require.GreaterOrEqual(t, idx, 0)
		require.LessOrEqual(t, idx, 9)
	}
}

func TestRoundTripShortPayloads(t *testing.T) {
	t.Parallel()

	// Payloads of up to 9 bytes always survive an encode/decode cycle: the
	// first position shared by the negation and XOR progressions is 9.
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 9; n++ {
		for _, first := range []byte{0x00, 0x41, 0x7F, 0x80, 0xFF} {
			buf := make([]byte, n)
			rng.Read(buf)
			buf[0] = first
			orig := bytes.Clone(buf)
			Encode(buf, 0)
			Decode(buf, 0)
			assert.Equal(t, orig, buf, "len %d first 0x%02X", n, first)
		}
	}
}

func TestRoundTripLongPayloads(t *testing.T) {
	t.Parallel()

	// From 10 bytes on, survival depends on the byte at each position
	// congruent to 9 mod 12. 0x9D commutes with the key byte 0x9C used at
	// position 9; 0x00 and 0x6C do not.
	safe := append(bytes.Repeat([]byte{0x41}, 9), 0x9D, 0x41, 0x41)
	buf := bytes.Clone(safe)
	Encode(buf, 0)
	Decode(buf, 0)
	assert.Equal(t, safe, buf)

	zeros := make([]byte, 10)
	buf = bytes.Clone(zeros)
	Encode(buf, 0)
	Decode(buf, 0)
	assert.Equal(t, "000000000000000000f8", hex.EncodeToString(buf),
		"documented mismatch: zero at position 9 does not commute")

	text := []byte("hello world, archive!")
	buf = bytes.Clone(text)
	Encode(buf, 0)
	Decode(buf, 0)
	assert.NotEqual(t, text, buf)
	assert.Equal(t, []byte("hello wor"), buf[:9], "bytes before position 9 are intact")
}

func TestRoundTripNonzeroStart(t *testing.T) {
	t.Parallel()

	// With a nonzero start offset both directions pick mode A from the
	// offset alone, so the cycle is a true inverse regardless of content.
	rng := rand.New(rand.NewSource(99))
	for _, start := range []int{1, 5, 6, 12, 37} {
		buf := make([]byte, 40)
		rng.Read(buf)
		orig := bytes.Clone(buf)
		Encode(buf, start)
		Decode(buf, start)
		assert.Equal(t, orig, buf, "start %d", start)
	}
}

func TestModeSelection(t *testing.T) {
	t.Parallel()
	assert.Equal(t, modeA, selectMode([]byte{0x80}, 0))
	assert.Equal(t, modeA, selectMode([]byte{0xFF}, 0))
	assert.Equal(t, modeB, selectMode([]byte{0x00}, 0))
	assert.Equal(t, modeB, selectMode([]byte{0x7F}, 0))
	// Nonzero start forces mode A without reading the buffer.
	assert.Equal(t, modeA, selectMode([]byte{0x00}, 3))
}
