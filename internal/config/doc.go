// Package config resolves the immutable runtime configuration of the AT web
// server from three layers applied in increasing precedence: compiled-in
// defaults, an external key-value store (UCI on OpenWrt) and process
// environment variables. Resolution never fails; a source that is missing or
// malformed leaves the value established by the previous layer in place.
package config
