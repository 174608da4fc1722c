package cloudinary

import "testing"

func TestURLDefaults(t *testing.T) {
	b := NewBuilder("demo")
	got := b.URL("photos/rose", TransformOptions{Width: 600, Height: 600})
	want := "https://res.cloudinary.com/demo/image/upload/w_600,h_600,c_fill,g_auto,q_auto,f_auto/photos/rose"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestURLOmitsGravityOutsideFill(t *testing.T) {
	b := NewBuilder("demo")
	got := b.URL("photos/rose", TransformOptions{Width: 1200, Crop: "fit"})
	want := "https://res.cloudinary.com/demo/image/upload/w_1200,c_fit,q_auto,f_auto/photos/rose"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestURLBlurAndQuality(t *testing.T) {
	b := NewBuilder("demo")
	got := b.URL("photos/rose", TransformOptions{Width: 10, Quality: "30", Blur: 1000})
	want := "https://res.cloudinary.com/demo/image/upload/w_10,c_fill,g_auto,q_30,f_auto,e_blur:1000/photos/rose"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestPresets(t *testing.T) {
	b := NewBuilder("demo")
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"feed thumbnail", b.FeedThumbnail("p"), "https://res.cloudinary.com/demo/image/upload/w_600,h_600,c_fill,g_auto,q_auto,f_auto/p"},
		{"feed fullscreen", b.FeedFullscreen("p"), "https://res.cloudinary.com/demo/image/upload/w_1200,c_fill,g_auto,q_auto,f_auto/p"},
		{"desktop hero", b.DesktopHero("p"), "https://res.cloudinary.com/demo/image/upload/w_2400,c_fill,g_auto,q_auto,f_auto/p"},
		{"collection cover", b.CollectionCover("p"), "https://res.cloudinary.com/demo/image/upload/w_800,h_1000,c_fill,g_auto,q_auto,f_auto/p"},
		{"blur placeholder", b.BlurPlaceholder("p"), "https://res.cloudinary.com/demo/image/upload/w_10,c_fill,g_auto,q_30,f_auto,e_blur:1000/p"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}
