package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithQuery(t *testing.T) {
	assert.Equal(t, "/?error=oauth_failed", withQuery("/", "error", "oauth_failed"))
	assert.Equal(t, "https://app.test/done?tab=1&token=a.b.c", withQuery("https://app.test/done?tab=1", "token", "a.b.c"))
	assert.Equal(t, "https://app.test/?token=x%2By", withQuery("https://app.test/", "token", "x+y"))
}
