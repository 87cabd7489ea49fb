package humanizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeCasual, false},
		{"casual", ModeCasual, false},
		{" Professional ", ModeProfessional, false},
		{"ACADEMIC", ModeAcademic, false},
		{"creative", ModeCreative, false},
		{"friendly", ModeFriendly, false},
		{"pirate", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrUnknownMode, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestModePremium(t *testing.T) {
	assert.False(t, ModeCasual.Premium())
	assert.False(t, ModeProfessional.Premium())
	assert.True(t, ModeAcademic.Premium())
	assert.True(t, ModeCreative.Premium())
	assert.True(t, ModeFriendly.Premium())
	assert.Len(t, Modes(), 5)
}

func TestModeDoesNotChangeOutput(t *testing.T) {
	r := Default()
	in := "It is important to note that the system will not fail. We are ready."
	base := r.Rewrite(in, Options{Mode: ModeCasual, Rand: NewRand(11)})
	for _, m := range Modes() {
		assert.Equal(t, base, r.Rewrite(in, Options{Mode: m, Rand: NewRand(11)}), m)
	}
}
