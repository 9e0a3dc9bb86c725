package main

import (
	"testing"
)

// Smoke test to ensure main honors SKIP_BOT_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_BOT_RUN", "1")
	main()
}
