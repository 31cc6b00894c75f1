package hdkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		input  string
		output DerivationPath
		err    error
	}{
		// Plain absolute derivation paths
		{"m/0/5", DerivationPath{0, 5}, nil},
		{"m/84'/0'/0'/0", DerivationPath{HardenedKeyStart + 84, HardenedKeyStart, HardenedKeyStart, 0}, nil},
		{"m/0/128'", DerivationPath{0, HardenedKeyStart + 128}, nil},
		{"m/2147483648/0", DerivationPath{HardenedKeyStart, 0}, nil},

		// Hexadecimal components
		{"m/0x54'/0x00", DerivationPath{HardenedKeyStart + 84, 0}, nil},

		// Relative derivation paths
		{"84'/0'/0/0", DerivationPath{HardenedKeyStart + 84, HardenedKeyStart, 0, 0}, nil},
		{"0/0", DerivationPath{0, 0}, nil},
		{"0", DerivationPath{0}, nil},

		// Invalid derivation paths
		{"", nil, ErrNullDerivationPath},
		{"m/", nil, ErrMalformedDerivationPath},
		{"/84'/0'/0'/0", nil, ErrMalformedDerivationPath},
		{"m/0//5", nil, ErrMalformedDerivationPath},
		{"m/2147483648'", nil, nil}, // overflows the hardened range (dynamic error)
		{"m/-1", nil, nil},          // negative component (dynamic error)
		{"m/abc", nil, nil},         // not a number (dynamic error)
	}
	for _, tt := range tests {
		path, err := ParseDerivationPath(tt.input)
		if err != nil {
			if tt.err != nil {
				assert.Equal(t, tt.err, err)
			}
		}
		assert.Equal(t, tt.output, path)
	}
}

func TestDerivationPathString(t *testing.T) {
	tests := []struct {
		path DerivationPath
		want string
	}{
		{DerivationPath{0, 5}, "m/0/5"},
		{DerivationPath{HardenedKeyStart + 84, HardenedKeyStart, 0}, "m/84'/0'/0"},
		{DerivationPath{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.path.String())
	}
}

func TestDerivationPathHasHardened(t *testing.T) {
	assert.False(t, DerivationPath{0, 5}.HasHardened())
	assert.True(t, DerivationPath{0, HardenedKeyStart}.HasHardened())
}

func TestDerivationPathRoundTrip(t *testing.T) {
	for _, s := range []string{"m/0/5", "m/84'/0'/0'/1/7"} {
		path, err := ParseDerivationPath(s)
		assert.NoError(t, err)
		assert.Equal(t, s, path.String())
	}
}
