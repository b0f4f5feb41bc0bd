package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSensitiveString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"8f11e7f9d66a0de7a0e931642eeb8fa4", "8f1...fa4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskSensitiveString(tt.in, 3, 3))
	}
}

func TestGetLogger(t *testing.T) {
	IsTest = true
	log := GetLogger()
	assert.NotNil(t, log)
	assert.Same(t, log, GetLogger())
}
