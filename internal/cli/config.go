package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "CALENDARCTL"

	keyAPIURL      = "api-url"
	keySessionFile = "session-file"
	keyTimeout     = "timeout"
	keyErrorTTL    = "error-ttl"
	keyVerbose     = "verbose"
	keyConfigFile  = "config"

	defaultAPIURL = "http://localhost:8080/api"
)

// Options is the resolved client configuration.
type Options struct {
	APIURL      string
	SessionFile string
	Timeout     time.Duration
	ErrorTTL    time.Duration
	Verbose     bool
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".calendarctl", "session.json")
	}
	return filepath.Join(home, ".calendarctl", "session.json")
}

func registerFlags(fs *pflag.FlagSet) {
	fs.String(keyAPIURL, defaultAPIURL, "backend base url")
	fs.String(keySessionFile, defaultSessionFile(), "file holding the session token")
	fs.Duration(keyTimeout, 10*time.Second, "per request timeout")
	fs.Duration(keyErrorTTL, 3*time.Second, "how long error messages stay visible")
	fs.BoolP(keyVerbose, "v", false, "debug logging")
	fs.String(keyConfigFile, "", "config file (default $HOME/.calendarctl/config.yaml)")
}

// loadOptions resolves flags, CALENDARCTL_* variables and the optional config file,
// in that order of precedence.
func loadOptions(fs *pflag.FlagSet) (Options, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Options{}, err
	}

	if file := v.GetString(keyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Options{}, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".calendarctl"))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Options{}, err
			}
		}
	}

	return Options{
		APIURL:      v.GetString(keyAPIURL),
		SessionFile: v.GetString(keySessionFile),
		Timeout:     v.GetDuration(keyTimeout),
		ErrorTTL:    v.GetDuration(keyErrorTTL),
		Verbose:     v.GetBool(keyVerbose),
	}, nil
}
