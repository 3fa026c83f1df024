// Package cache implements the versioned, cache-first resource cache that
// keeps the application shell available offline.
package cache

// Manifest names the resources that must be present in the offline cache.
// Only one version is current at a time; buckets from earlier versions are
// garbage and removed on activation.
type Manifest struct {
	Name         string
	Version      string
	Paths        []string
	RootDocument string
}

// BucketName encodes the version into the bucket name so eviction can work
// purely by name mismatch.
func (m Manifest) BucketName() string {
	return m.Name + "-" + m.Version
}

// DefaultManifest returns the application-shell manifest for the given version.
func DefaultManifest(version string) Manifest {
	return Manifest{
		Name:    "hobby-cache",
		Version: version,
		Paths: []string{
			"/",
			"/docs/index.html",
			"/css/style.css",
			"/js/core.js",
			"/img/hobby-icon.png",
			"/docs/profile.html",
			"/js/register.js",
			"/js/login.js",
		},
		RootDocument: "/docs/index.html",
	}
}
