// Package decimal128 provides a 128-bit two's complement signed integer,
// the storage representation of fixed-precision decimals up to 38 digits.
package decimal128

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"
)

// Num is a signed 128-bit integer
type Num struct {
	hi int64
	lo uint64
}

var (
	// MaxNum is 2^127 - 1
	MaxNum = Num{hi: 1<<63 - 1, lo: ^uint64(0)}
	// MinNum is -2^127
	MinNum = Num{hi: -1 << 63, lo: 0}

	twoTo128 = new(big.Int).Lsh(big.NewInt(1), 128)
	maxBig   = MaxNum.BigInt()
	minBig   = MinNum.BigInt()
)

// New builds a Num from its high and low words
func New(hi int64, lo uint64) Num {
	return Num{hi: hi, lo: lo}
}

// FromInt64 sign-extends v to 128 bits
func FromInt64(v int64) Num {
	return Num{hi: v >> 63, lo: uint64(v)}
}

// FromBigEndian interprets b as a big-endian two's complement integer
func FromBigEndian(b [16]byte) Num {
	return Num{
		hi: int64(binary.BigEndian.Uint64(b[:8])),
		lo: binary.BigEndian.Uint64(b[8:]),
	}
}

// FromBig converts v, reporting false if it does not fit in 128 bits
func FromBig(v *big.Int) (Num, bool) {
	if v.Cmp(maxBig) > 0 || v.Cmp(minBig) < 0 {
		return Num{}, false
	}
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, twoTo128)
	}
	var buf [16]byte
	u.FillBytes(buf[:])
	return FromBigEndian(buf), true
}

// Parse parses a base-10 integer string
func Parse(s string) (Num, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return Num{}, fmt.Errorf("invalid decimal128 integer: %q", s)
	}
	n, ok := FromBig(v)
	if !ok {
		return Num{}, fmt.Errorf("decimal128 overflow: %s", s)
	}
	return n, nil
}

// HighBits returns the upper 64 bits
func (n Num) HighBits() int64 { return n.hi }

// LowBits returns the lower 64 bits
func (n Num) LowBits() uint64 { return n.lo }

// BigEndian encodes n as 16 big-endian two's complement bytes
func (n Num) BigEndian() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], uint64(n.hi))
	binary.BigEndian.PutUint64(b[8:], n.lo)
	return b
}

// BigInt returns n as a big.Int
func (n Num) BigInt() *big.Int {
	v := big.NewInt(n.hi)
	v.Lsh(v, 64)
	return v.Add(v, new(big.Int).SetUint64(n.lo))
}

// Sign returns -1, 0 or +1
func (n Num) Sign() int {
	switch {
	case n.hi < 0:
		return -1
	case n.hi == 0 && n.lo == 0:
		return 0
	default:
		return 1
	}
}

// Cmp returns -1, 0 or +1 comparing n with other
func (n Num) Cmp(other Num) int {
	switch {
	case n.hi < other.hi:
		return -1
	case n.hi > other.hi:
		return 1
	case n.lo < other.lo:
		return -1
	case n.lo > other.lo:
		return 1
	}
	return 0
}

// Less reports n < other
func (n Num) Less(other Num) bool {
	return n.Cmp(other) < 0
}

func (n Num) String() string {
	return n.BigInt().String()
}

// FormatScaled renders n as a decimal with scale fractional digits,
// e.g. 12345 with scale 2 is "123.45". A negative scale appends zeros.
func (n Num) FormatScaled(scale int) string {
	digits := n.BigInt().String()
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	switch {
	case scale < 0:
		if digits != "0" {
			digits += strings.Repeat("0", -scale)
		}
	case scale > 0:
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		cut := len(digits) - scale
		digits = digits[:cut] + "." + digits[cut:]
	}

	if neg {
		return "-" + digits
	}
	return digits
}

// MarshalJSON encodes n as a quoted base-10 string; JSON numbers lose precision past 2^53.
func (n Num) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted or bare base-10 integer
func (n *Num) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
