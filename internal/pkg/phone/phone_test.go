package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "already e164", raw: "+919876543210", want: "+919876543210"},
		{name: "local with leading zero", raw: "09876543210", want: "+919876543210"},
		{name: "local without zero", raw: "9876543210", want: "+919876543210"},
		{name: "formatted", raw: "+91 98765-43210", want: "+919876543210"},
		{name: "whatsapp prefix", raw: "whatsapp:+919876543210", want: "+919876543210"},
		{name: "double zero prefix", raw: "00919876543210", want: "+919876543210"},
		{name: "parentheses", raw: "+1 (415) 523-8886", want: "+14155238886"},
		{name: "empty", raw: "", wantErr: true},
		{name: "letters", raw: "98x7654321", wantErr: true},
		{name: "too short", raw: "+9112", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, "+91")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "+9198*****10", Mask("+919876543210"))
	assert.Equal(t, "12345", Mask("12345"))
}
