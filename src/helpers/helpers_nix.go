//go:build linux || darwin || freebsd
// +build linux darwin freebsd

/*
   Helpers for all non-windows machines
*/

package helpers

// UserDir is the name of the aoede directory in the user's home directory.
const UserDir = ".aoede"
