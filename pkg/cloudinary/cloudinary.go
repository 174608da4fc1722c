package cloudinary

import (
	"fmt"
	"strings"
)

// TransformOptions describes a Cloudinary delivery transformation.
type TransformOptions struct {
	Width   int
	Height  int
	Quality string // numeric string or "auto"
	Format  string // "auto", "webp", "jpg", "png"
	Crop    string // "fill", "fit", "scale", "thumb"
	Gravity string // "auto", "face", "center"
	Blur    int
}

// Builder constructs delivery URLs for a Cloudinary cloud. The service only
// ever hands out URLs; it never touches pixel data.
type Builder struct {
	cloudName string
}

// NewBuilder creates a Builder for the given cloud name.
func NewBuilder(cloudName string) *Builder {
	return &Builder{cloudName: cloudName}
}

// URL builds a transformed delivery URL for a public id.
func (b *Builder) URL(publicID string, opts TransformOptions) string {
	quality := opts.Quality
	if quality == "" {
		quality = "auto"
	}
	format := opts.Format
	if format == "" {
		format = "auto"
	}
	crop := opts.Crop
	if crop == "" {
		crop = "fill"
	}
	gravity := opts.Gravity
	if gravity == "" {
		gravity = "auto"
	}

	var transformations []string
	if opts.Width > 0 {
		transformations = append(transformations, fmt.Sprintf("w_%d", opts.Width))
	}
	if opts.Height > 0 {
		transformations = append(transformations, fmt.Sprintf("h_%d", opts.Height))
	}
	transformations = append(transformations, "c_"+crop)
	if crop == "fill" {
		transformations = append(transformations, "g_"+gravity)
	}
	transformations = append(transformations, "q_"+quality, "f_"+format)
	if opts.Blur > 0 {
		transformations = append(transformations, fmt.Sprintf("e_blur:%d", opts.Blur))
	}

	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s/%s",
		b.cloudName, strings.Join(transformations, ","), publicID)
}

// FeedThumbnail is the square crop shown in feed grids.
func (b *Builder) FeedThumbnail(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 600, Height: 600, Crop: "fill", Gravity: "auto"})
}

// FeedFullscreen is the full-width feed rendition.
func (b *Builder) FeedFullscreen(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 1200})
}

// DesktopHero is the large hero rendition.
func (b *Builder) DesktopHero(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 2400})
}

// CollectionCover is the portrait crop used on collection cards.
func (b *Builder) CollectionCover(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 800, Height: 1000, Crop: "fill", Gravity: "auto"})
}

// BlurPlaceholder is a tiny, heavily blurred rendition used as a loading
// placeholder.
func (b *Builder) BlurPlaceholder(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 10, Quality: "30", Blur: 1000})
}
