package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsInvalidWithoutBlobStore(t *testing.T) {
	c := Default()
	if err := c.EnsureValid(); err == nil {
		t.Error("expected default configuration without a blob store to be invalid")
	}
}

func TestEnsureValidAcceptsDiskPath(t *testing.T) {
	c := Default()
	c.BlobStorePath = "/tmp/dfm-blobs"
	if err := c.EnsureValid(); err != nil {
		t.Errorf("expected valid configuration, got: %v", err)
	}
}

func TestEnsureValidRejectsNonPositiveFanOut(t *testing.T) {
	c := Default()
	c.BlobStorePath = "/tmp/dfm-blobs"
	c.FanOut = 0
	if err := c.EnsureValid(); err == nil {
		t.Error("expected error for zero fanOut")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.FanOut != DefaultFanOut || c.WriteConcurrency != DefaultWriteConcurrency {
		t.Errorf("expected default values, got %+v", c)
	}
}

func TestLoadParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dfm.toml")
	contents := "fanOut = 16\nwriteConcurrency = 32\nblobStorePath = \"/var/dfm\"\n"
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.FanOut != 16 || c.WriteConcurrency != 32 || c.BlobStorePath != "/var/dfm" {
		t.Errorf("unexpected configuration: %+v", c)
	}
}

func TestEqual(t *testing.T) {
	a := Default()
	b := Default()
	if !a.Equal(b) {
		t.Error("expected equal default configurations to compare equal")
	}
	b.FanOut = 1
	if a.Equal(b) {
		t.Error("expected differing configurations to compare unequal")
	}
}
