// Package fetch copies the latest plant image from the station server to
// the local display path.
//
// Both implementations write to a temp file in the destination directory
// and rename it over the target, so the viewer never reads a half-written
// image and a failed transfer leaves the previous image untouched.
package fetch

import "context"

// Fetcher copies the remote image to the local path.
type Fetcher interface {
	// Fetch performs one transfer attempt. The previous local file, if
	// any, survives a failed attempt unchanged.
	Fetch(ctx context.Context) error
}
