//go:build windows
// +build windows

/*
   Helpers for windows machines
*/

package helpers

// UserDir is the name of the aoede directory in the user's profile directory.
const UserDir = "aoede"
