package cli

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse(nil))

	opts, err := loadOptions(fs)
	require.NoError(t, err)
	assert.Equal(t, defaultAPIURL, opts.APIURL)
	assert.Equal(t, 10*time.Second, opts.Timeout)
	assert.Equal(t, 3*time.Second, opts.ErrorTTL)
	assert.False(t, opts.Verbose)
}

func TestLoadOptions_EnvAndFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CALENDARCTL_API_URL", "http://env.test/api")
	t.Setenv("CALENDARCTL_ERROR_TTL", "5s")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"--error-ttl", "1s"}))

	opts, err := loadOptions(fs)
	require.NoError(t, err)
	assert.Equal(t, "http://env.test/api", opts.APIURL)
	assert.Equal(t, time.Second, opts.ErrorTTL)
}
