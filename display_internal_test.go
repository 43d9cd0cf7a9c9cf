package csvhist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupViewer(t *testing.T) {
	installed := map[string]bool{"sxiv": true, "display": true}
	lookPath := func(file string) (string, error) {
		if installed[file] {
			return "/usr/bin/" + file, nil
		}

		return "", errors.New("not found")
	}

	v := lookupViewer(blockingViewers, lookPath)
	assert.Equal(t, CommandViewer{Name: "sxiv"}, v)

	installed = nil
	v = lookupViewer(blockingViewers, lookPath)
	assert.Equal(t, "xdg-open", v.Name)
	assert.True(t, v.Detached)
}
