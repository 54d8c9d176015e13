// Package server builds the HTTP application around the loaded features.
//
// # Configuration
//
// The Config struct defines the HTTP port and the API key.
//
// # Routes
//
// New mounts, in order: the rayid middleware, request logging, the public
// /health and /metrics routes, the API key guard and every enabled feature
// registered with the loader.Manager.
package server
