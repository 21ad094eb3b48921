package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBack(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))

	assert.Equal(t, Location(DefaultTimezone).String(), Location("Mars/Olympus").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}
