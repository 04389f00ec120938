package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.ServerURL, "http://localhost:8080")
	assert.Equal(t, c.SessionFile, "session.json")
	assert.Equal(t, c.RequestTimeout, 30*time.Second)
}

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"server_url": "http://api:9090", "session_file": "/tmp/s.json", "request_timeout": "10s"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"eventhub", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, "http://api:9090", c.ServerURL)
	assert.Equal(t, "/tmp/s.json", c.SessionFile)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"eventhub", "-a", "http://flag:8081", "-f", "alt.json", "-t", "5"}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, "http://flag:8081", c.ServerURL)
	assert.Equal(t, "alt.json", c.SessionFile)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
}
