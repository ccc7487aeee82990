// Package publish uploads rendered diagrams to object storage.
//
// Publishing is optional. When an S3-compatible endpoint is configured,
// every diagram written during a run is also uploaded under
// <run id>/<file name>, so each run's output stays separate.
//
//	cfg := publish.ConfigFromEnv(os.Getenv)
//	cfg.SetDefaults()
//	if cfg.Enabled() {
//	    p, err := publish.NewS3Publisher(cfg)
//	    ...
//	    err = p.Publish(ctx, runID, "dependency_graphs/foo_dependencies.png")
//	}
package publish

import (
	"context"
	"strconv"
	"strings"
)

// Publisher uploads one rendered file belonging to a run.
type Publisher interface {
	Publish(ctx context.Context, runID, path string) error
}

// Environment variables read by [ConfigFromEnv].
const (
	EnvEndpoint  = "ARTIFACT_S3_ENDPOINT"
	EnvRegion    = "ARTIFACT_S3_REGION"
	EnvAccessKey = "ARTIFACT_S3_ACCESS_KEY"
	EnvSecretKey = "ARTIFACT_S3_SECRET_KEY"
	EnvBucket    = "ARTIFACT_S3_BUCKET"
	EnvUseSSL    = "ARTIFACT_S3_USE_SSL"
)

// Defaults applied by [S3Config.SetDefaults].
const (
	DefaultRegion = "us-east-1"
	DefaultBucket = "depgraphs"
)

// S3Config configures an S3-compatible artifact store.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    *bool  `toml:"use_ssl"` // nil when unset
}

// Enabled reports whether an endpoint is configured.
func (c S3Config) Enabled() bool { return strings.TrimSpace(c.Endpoint) != "" }

// Secure reports whether the endpoint is reached over TLS. Unset means false.
func (c S3Config) Secure() bool { return c.UseSSL != nil && *c.UseSSL }

// ConfigFromEnv builds an S3Config from environment variables.
// Unset variables leave their field empty, and an unparsable
// ARTIFACT_S3_USE_SSL counts as unset. getenv is usually os.Getenv.
func ConfigFromEnv(getenv func(string) string) S3Config {
	cfg := S3Config{
		Endpoint:  strings.TrimSpace(getenv(EnvEndpoint)),
		Region:    strings.TrimSpace(getenv(EnvRegion)),
		AccessKey: strings.TrimSpace(getenv(EnvAccessKey)),
		SecretKey: strings.TrimSpace(getenv(EnvSecretKey)),
		Bucket:    strings.TrimSpace(getenv(EnvBucket)),
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(getenv(EnvUseSSL))); err == nil {
		cfg.UseSSL = &v
	}
	return cfg
}

// SetDefaults fills an empty region and bucket.
func (c *S3Config) SetDefaults() {
	c.Region = firstNonEmpty(c.Region, DefaultRegion)
	c.Bucket = firstNonEmpty(c.Bucket, DefaultBucket)
}

// Merge returns c with every unset field filled from other.
func (c S3Config) Merge(other S3Config) S3Config {
	c.Endpoint = firstNonEmpty(c.Endpoint, other.Endpoint)
	c.Region = firstNonEmpty(c.Region, other.Region)
	c.AccessKey = firstNonEmpty(c.AccessKey, other.AccessKey)
	c.SecretKey = firstNonEmpty(c.SecretKey, other.SecretKey)
	c.Bucket = firstNonEmpty(c.Bucket, other.Bucket)
	if c.UseSSL == nil {
		c.UseSSL = other.UseSSL
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
