package version

// Version is overridden at build time with -ldflags "-X hallin-site/version.Version=...".
var Version = "dev"
