// Package resp provides the JSON response envelope used by the
// management HTTP surface.
package resp
