/*
Package profile manages named store connections.

Profiles live in a YAML file, each naming a region, optional static
credentials and an optional custom endpoint. Environment variables (loaded
from .env files when present) fill any blanks, and a profile converts
directly into an aws.Config:

	f, _ := profile.Load("profiles.yaml")
	p, _ := f.Lookup("staging")
	p.MergeEnv()
	cfg, _ := p.AWSConfig(ctx)
*/
package profile
