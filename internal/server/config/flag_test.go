package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"eventhub-server",
		"-a", ":7070",
		"-d", "postgres://flag",
		"-s", "flag-secret",
		"-t", "90",
		"-o", "s3",
		"-f", "tmp-uploads",
		"-m", "2097152",
	}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":7070", c.EndpointAddr)
	assert.Equal(t, "postgres://flag", c.DatabaseDSN)
	assert.Equal(t, "flag-secret", c.SecretKey)
	assert.Equal(t, 90*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, BannerStorageS3, c.BannerStorage)
	assert.Equal(t, "tmp-uploads", c.UploadDir)
	assert.Equal(t, int64(2097152), c.MaxUploadSize)
}

func TestParseFlags_UnknownFlagsIgnored(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"eventhub-server", "-z", "whatever", "-a", ":6060"}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":6060", c.EndpointAddr)
}
