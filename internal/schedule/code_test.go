package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	c, err := Decode("EL-SHF-SC")
	require.NoError(t, err)
	assert.Equal(t, Code{Area: "EL", FaceGroup: "SHF", NoteGroup: "SC"}, c)
	assert.Equal(t, 3, c.Level())
	assert.Equal(t, "EL-SHF-SC", c.String())

	c, err = Decode("EL-SHF-SC-EQ")
	require.NoError(t, err)
	assert.Equal(t, 4, c.Level())
	assert.Equal(t, "EQ", c.SubNote)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []string{"", "EL", "EL-SHF", "EL--SC", "EL-SHF-", "A-B-C-D-E", "  "}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := Decode(s)
			require.Error(t, err)
			var mce *MalformedCodeError
			assert.True(t, errors.As(err, &mce), "want MalformedCodeError for %q", s)
		})
	}
}

func TestLevel3Match(t *testing.T) {
	a := MustDecode("EL-CL-TP-MSME")
	b := MustDecode("EL-CL-TP-OTH")
	c := MustDecode("EL-CL-TP")
	d := MustDecode("EL-CL-OCL")

	assert.True(t, Level3Match(a, b))
	assert.True(t, Level3Match(a, c))
	assert.False(t, Level3Match(a, d))
	assert.False(t, Level3Match(Code{Area: "EL", FaceGroup: "CL"}, c), "headers never match")
}

func TestMustDecodePanics(t *testing.T) {
	assert.Panics(t, func() { MustDecode("EL-CL") })
}
