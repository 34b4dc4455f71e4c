package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3 'MOV' bad", From("line %d '%v' %v", 3, "MOV", "bad"))
	assert.Equal("stack overflow", From("stack overflow"))
}
