package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingAskService.Error(), ErrMissingSearchService.Error())
	assert.Contains(t, ErrMissingAskService.Error(), "ask service")
	assert.Contains(t, ErrMissingSearchService.Error(), "search service")
}
