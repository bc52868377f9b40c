package config

import "git.home.luguber.info/inful/docsite/internal/site"

// ApplyDefaults fills unset fields. Run after Normalize so canonical values drive defaults.
func ApplyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
	if f.Base == "" {
		f.Base = "/"
	}
	if f.TrailingSlash == "" {
		f.TrailingSlash = site.TrailingSlashIgnore
	}
}
