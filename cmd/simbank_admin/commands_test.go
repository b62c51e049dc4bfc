package main

import (
	"context"
	"flag"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range commands {
		assert.False(t, seen[c.Name()], "duplicate command %s", c.Name())
		seen[c.Name()] = true
		assert.NotEmpty(t, c.Synopsis())
		assert.Contains(t, c.Usage(), c.Name())
	}
	for _, name := range []string{"migrate", "open-account", "set-status", "adjust", "set-txn-status", "reconcile", "regenerate-otp", "cancel-payment"} {
		assert.True(t, seen[name], "missing command %s", name)
	}
}

func TestRequiredFlags(t *testing.T) {
	for _, c := range []subcommands.Command{&openAccountCmd{}, &setStatusCmd{}, &adjustCmd{}, &setTxnStatusCmd{}, &regenerateOTPCmd{}, &cancelPaymentCmd{}} {
		t.Run(c.Name(), func(t *testing.T) {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			require.NoError(t, fs.Parse(nil))
			// Usage errors are reported before any configuration or database access.
			assert.Equal(t, subcommands.ExitUsageError, c.Execute(context.Background(), fs))
		})
	}
}

func TestMissing(t *testing.T) {
	assert.False(t, missing(map[string]string{"account": "a1"}))
	assert.True(t, missing(map[string]string{"account": "  "}))
}
