// Package output persists rendered reports under a base directory.
package output
