// Package scanner enumerates candidate agent plugin sources under a root
// directory. It only lists files; reading and extraction happen downstream.
// The returned order is the stable discovery order every later pipeline
// stage preserves.
package scanner
