package models

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerClaims_Owner(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    int64
		wantErr bool
	}{
		{name: "numeric subject", subject: "42", want: 42},
		{name: "empty subject", subject: "", wantErr: true},
		{name: "non numeric subject", subject: "alice", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := OwnerClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject}}

			got, err := claims.Owner()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "a.b.c", Token{SignedString: "a.b.c", Owner: 1}.String())
}
