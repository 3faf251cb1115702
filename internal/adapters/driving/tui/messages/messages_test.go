package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	assert.Equal(t, "form", ViewForm.String())
	assert.Equal(t, "searching", ViewSearching.String())
	assert.Equal(t, "results", ViewResults.String())
	assert.Equal(t, "unknown", ViewType(99).String())
}
