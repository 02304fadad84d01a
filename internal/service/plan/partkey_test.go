package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeItem(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing blanks", "ABC-100   ", "ABC-100"},
		{"leading blanks", "   ABC-100", "ABC-100"},
		{"inner blank", "ABC 100", "ABC100"},
		{"full-width space", "ABC　100", "ABC100"},
		{"tab and newline", "ABC\t100\n", "ABC100"},
		{"already clean", "ABC-100", "ABC-100"},
		{"empty", "", ""},
		{"only spaces", " 　 ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeItem(tt.in))
		})
	}
}

func TestNormalizeItem_Idempotent(t *testing.T) {
	inputs := []string{"ABC 100", "ABC　100  ", "X", ""}
	for _, in := range inputs {
		once := NormalizeItem(in)
		assert.Equal(t, once, NormalizeItem(once))
	}
}

func TestIntKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain integer", "10", "10"},
		{"float form", "10.0", "10"},
		{"padded", "10 ", "10"},
		{"padded float", " 10.0 ", "10"},
		{"zero", "0", "0"},
		{"unparsable", "abc", LineKeySentinel},
		{"empty", "", LineKeySentinel},
		{"blank", "   ", LineKeySentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntKey(tt.in))
		})
	}
}

func TestIntKey_VariantsCollapse(t *testing.T) {
	// All forms of line 10 must land on the same key so order lines and
	// purchase lines written by different tools still join.
	assert.Equal(t, IntKey("10"), IntKey("10.0"))
	assert.Equal(t, IntKey("10"), IntKey("10 "))
	assert.Equal(t, IntKey("10.0"), IntKey(" 10.000"))
}
