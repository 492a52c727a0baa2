package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]string{"--token-key", "k"})
	require.NoError(t, err)
	assert.Equal(t, ":443", c.Addr)
	assert.True(t, c.TLS())
	assert.Equal(t, "./static", c.StaticDir)
	assert.Equal(t, 1.0, c.RateLimit)
	assert.Equal(t, 3, c.RateBurst)
	assert.Equal(t, logrus.InfoLevel, c.LogLevel)
}

func TestParseEnvAndFlags(t *testing.T) {
	os.Setenv("TOKEN_KEY", "from-env")
	os.Setenv("FLEXURE_ADDR", ":9000")
	defer os.Unsetenv("TOKEN_KEY")
	defer os.Unsetenv("FLEXURE_ADDR")

	c, err := Parse([]string{"--addr", ":8080", "--tls-cert", "", "--log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.TokenKey)
	assert.Equal(t, ":8080", c.Addr)
	assert.False(t, c.TLS())
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
}

func TestParseErrors(t *testing.T) {
	os.Unsetenv("TOKEN_KEY")
	_, err := Parse(nil)
	assert.Error(t, err)

	_, err = Parse([]string{"--token-key", "k", "--log-level", "loud"})
	assert.Error(t, err)

	_, err = Parse([]string{"--token-key", "k", "--rate-burst", "0"})
	assert.Error(t, err)

	_, err = Parse([]string{"--bogus"})
	assert.Error(t, err)
}
