package repo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stonedesk/stonedesk/pkg/repo"
)

func TestFormatLimitOffset(t *testing.T) {
	assert.Equal(t, "LIMIT 25 OFFSET 50", repo.FormatLimitOffset(25, 50))
	assert.Equal(t, "LIMIT 25", repo.FormatLimitOffset(25, 0))
	assert.Equal(t, "OFFSET 50", repo.FormatLimitOffset(0, 50))
	assert.Equal(t, "", repo.FormatLimitOffset(0, 0))
}
