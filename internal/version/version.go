package version

// Version is the current release of socialscope.
const Version = "0.3.1"
