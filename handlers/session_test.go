package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRememberCookie(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantID    uint
		wantToken string
		wantOK    bool
	}{
		{name: "valid", value: "7:opaque-token", wantID: 7, wantToken: "opaque-token", wantOK: true},
		{name: "token with colon", value: "7:abc:def", wantID: 7, wantToken: "abc:def", wantOK: true},
		{name: "no separator", value: "7opaque-token", wantOK: false},
		{name: "empty token", value: "7:", wantOK: false},
		{name: "non-numeric id", value: "seven:opaque-token", wantOK: false},
		{name: "empty", value: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, token, ok := parseRememberCookie(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}
