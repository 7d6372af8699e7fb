package webserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingFallsBackBeforeInit(t *testing.T) {
	assert.Equal(t, "Campus Marketplace", Setting("site", "SiteTitle", "Campus Marketplace"))
	assert.Equal(t, "support@campus.com", Setting("site", "ContactEmail", "support@campus.com"))
}
