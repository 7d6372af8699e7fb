package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "secret123"))
}

func TestAllowedImageFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"anim.gif", true},
		{"shell.php", false},
		{"archive.png.zip", false},
		{"noext", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AllowedImageFile(tt.filename), tt.filename)
	}
}

func TestUploadFilename(t *testing.T) {
	name := UploadFilename("../../etc/pass wd.png")
	assert.True(t, strings.HasSuffix(name, "pass_wd.png"))
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, " ")

	// timestamp prefix keeps names unique per second
	assert.Regexp(t, `^\d{14}_`, name)
}

func TestUUIDint64(t *testing.T) {
	a := UUIDint64()
	b := UUIDint64()
	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
}

func TestIfEmptyStr(t *testing.T) {
	assert.Equal(t, "def", IfEmptyStr("", "def"))
	assert.Equal(t, "def", IfEmptyStr("   ", "def"))
	assert.Equal(t, "v", IfEmptyStr("v", "def"))
}
