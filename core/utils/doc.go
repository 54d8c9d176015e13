// Package utils provides common utility functions for the mini-orm packages.
// It includes the conversion helpers that turn raw driver values (byte slices,
// wide integers, text timestamps) into the canonical Go values expected by the
// schema type tags.
package utils
