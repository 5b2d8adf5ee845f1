package main

import (
	"context"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bioPolicy     *bluemonday.Policy
	bioPolicyOnce sync.Once
)

// plainBio strips every HTML tag from a submitted bio. Policies are safe for
// concurrent use once built.
func plainBio(_ context.Context, bio *string) (*string, error) {
	bioPolicyOnce.Do(func() {
		bioPolicy = bluemonday.StrictPolicy()
	})

	clean := strings.TrimSpace(bioPolicy.Sanitize(*bio))
	return &clean, nil
}
