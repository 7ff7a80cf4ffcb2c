package int

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivModEuclidean(t *testing.T) {
	x, y := NewInt(-7), NewInt(3)
	assert.Equal(t, int64(-3), new(Int).Div(x, y).Int64())
	assert.Equal(t, int64(2), new(Int).Mod(x, y).Int64())

	x = NewInt(7)
	assert.Equal(t, int64(2), new(Int).Div(x, y).Int64())
	assert.Equal(t, int64(1), new(Int).Mod(x, y).Int64())
}

func TestArithmeticDoesNotMutateOperands(t *testing.T) {
	x, y := NewInt(40), NewInt(2)
	_ = new(Int).Add(x, y)
	_ = new(Int).Mul(x, y)
	_ = new(Int).Exp(x, y, NewInt(7))
	assert.Equal(t, int64(40), x.Int64())
	assert.Equal(t, int64(2), y.Int64())
}

func TestExpConstantTimeMatchesVariableTime(t *testing.T) {
	m, ok := SetString("fffffffffffffffffffffffffffffffeffffffffffffffff", 16)
	require.True(t, ok)
	x, _ := SetString("123456789abcdef0123456789abcdef0123456789abcdef0123", 16)
	e, _ := SetString("deadbeefcafebabe", 16)

	want := new(Int).Exp(x, e, m)
	assert.True(t, EnableConstantTimeArithmetic())
	defer DisableConstantTimeArithmetic()
	got := new(Int).Exp(x, e, m)
	assert.Equal(t, 0, want.Cmp(got), "want %s, got %s", want, got)

	// even moduli stay on math/big
	m2 := NewInt(1 << 20)
	assert.Equal(t, 0, new(Int).Exp(NewInt(3), NewInt(1000), m2).Cmp(
		Wrap(new(big.Int).Exp(big.NewInt(3), big.NewInt(1000), big.NewInt(1<<20)))))
}

func TestModInverseNoInverse(t *testing.T) {
	assert.Nil(t, new(Int).ModInverse(NewInt(6), NewInt(9)))
	inv := new(Int).ModInverse(NewInt(3), NewInt(7))
	require.NotNil(t, inv)
	assert.Equal(t, int64(5), inv.Int64())
}

func TestModInt(t *testing.T) {
	mod := ModInt(NewInt(13))
	assert.Equal(t, int64(2), mod.Mul(NewInt(5), NewInt(3)).Int64())
	assert.Equal(t, int64(11), mod.Sub(NewInt(1), NewInt(3)).Int64())
	assert.Equal(t, int64(12), mod.Neg(NewInt(1)).Int64())
	assert.Equal(t, int64(9), mod.Inverse(NewInt(3)).Int64())
	assert.True(t, mod.Contains(NewInt(0)))
	assert.False(t, mod.Contains(NewInt(13)))
	assert.False(t, mod.Contains(NewInt(-1)))
}

func TestEncodings(t *testing.T) {
	x, _ := SetString("340282366920938463463374607431768211507", 10)

	bz, err := json.Marshal(x)
	require.NoError(t, err)
	var y Int
	require.NoError(t, json.Unmarshal(bz, &y))
	assert.Equal(t, 0, x.Cmp(&y))

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(x))
	var z Int
	require.NoError(t, gob.NewDecoder(&buf).Decode(&z))
	assert.Equal(t, 0, x.Cmp(&z))
}
