// Package version reports the build version of the asrdrop binary.
package version
