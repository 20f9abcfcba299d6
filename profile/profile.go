/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package profile

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-openapi/strfmt"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Profile is one named connection to a store: region, credentials and an
// optional custom endpoint. Credentials may be omitted entirely, in which
// case the default AWS provider chain applies.
type Profile struct {
	Name            string          `yaml:"name"`
	Region          string          `yaml:"region"`
	AccessKeyID     string          `yaml:"access_key_id,omitempty"`
	SecretAccessKey string          `yaml:"secret_access_key,omitempty"`
	SessionToken    string          `yaml:"session_token,omitempty"`
	Endpoint        string          `yaml:"endpoint,omitempty"`
	LastUsed        strfmt.DateTime `yaml:"last_used,omitempty"`
}

// File is the on-disk profile collection.
type File struct {
	Default  string    `yaml:"default,omitempty"`
	Profiles []Profile `yaml:"profiles"`
}

// Load reads and parses a profiles file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a profiles document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}
	return &f, nil
}

// Save writes the collection back, preserving LastUsed stamps.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode profiles file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}
	return nil
}

// Lookup returns the named profile, or the default when name is empty.
func (f *File) Lookup(name string) (*Profile, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" && len(f.Profiles) == 1 {
		return &f.Profiles[0], nil
	}
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile %q not found", name)
}

// LoadDotenv loads .env files into the process environment before the
// overlay runs. Missing files are not an error.
func LoadDotenv(files ...string) {
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
	if len(files) == 0 {
		_ = godotenv.Load()
	}
}

// MergeEnv fills any blank fields from the standard environment variables.
// Values already present in the profile win.
func (p *Profile) MergeEnv() {
	if p.Region == "" {
		p.Region = os.Getenv("AWS_REGION")
	}
	if p.AccessKeyID == "" {
		p.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if p.SecretAccessKey == "" {
		p.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	if p.SessionToken == "" {
		p.SessionToken = os.Getenv("AWS_SESSION_TOKEN")
	}
	if p.Endpoint == "" {
		p.Endpoint = os.Getenv("TABLESCOPE_ENDPOINT")
	}
}

// Touch records the profile as just used.
func (p *Profile) Touch() {
	p.LastUsed = strfmt.DateTime(time.Now().UTC())
}

// AWSConfig builds an AWS configuration for the profile. Profiles carrying
// an access key pin static credentials; the rest fall through to the default
// provider chain.
func (p *Profile) AWSConfig(ctx context.Context) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if p.Region != "" {
		opts = append(opts, config.WithRegion(p.Region))
	}
	if p.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.AccessKeyID, p.SecretAccessKey, p.SessionToken),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return cfg, nil
}
