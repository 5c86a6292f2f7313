package version

// Version is the current version of zfsfacts.
// Bump it for every release; use semantic versioning (MAJOR.MINOR.PATCH).
const Version = "0.3.0"
