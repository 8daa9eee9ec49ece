package helpers

import "testing"

func TestSafeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{`a/b\c?d%e*f:g|h"i<j>k`, "a_b_c_d_e_f_g_h_i_j_k"},
		{"  spaced   out  .png ", "spaced out .png"},
		{"", "file"},
		{"///", "___"},
	}

	for _, tc := range cases {
		if got := SafeFileName(tc.in); got != tc.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeBlobFileName(t *testing.T) {
	if got := SanitizeBlobFileName("my photo (1).jpg"); got != "my_photo__1_.jpg" {
		t.Errorf("unexpected sanitized name: %q", got)
	}
	if got := SanitizeBlobFileName("clean-name_2.png"); got != "clean-name_2.png" {
		t.Errorf("safe characters should pass through, got %q", got)
	}
}

func TestExtFromContentType(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":               ".jpg",
		"image/png":                ".png",
		"image/gif":                ".gif",
		"image/webp":               ".webp",
		"video/mp4":                ".mp4",
		"video/quicktime":          ".mov",
		"IMAGE/JPEG; charset=akin": ".jpg",
		"application/pdf":          "",
		"":                         "",
	}

	for in, want := range cases {
		if got := ExtFromContentType(in); got != want {
			t.Errorf("ExtFromContentType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniqueName(t *testing.T) {
	used := make(map[string]struct{})

	if got := UniqueName(used, "photo.jpg"); got != "photo.jpg" {
		t.Fatalf("first name should be untouched, got %q", got)
	}
	if got := UniqueName(used, "photo.jpg"); got != "photo_2.jpg" {
		t.Fatalf("first collision should suffix _2, got %q", got)
	}
	if got := UniqueName(used, "photo.jpg"); got != "photo_3.jpg" {
		t.Fatalf("second collision should suffix _3, got %q", got)
	}
}

func TestUniqueNameWithoutExtension(t *testing.T) {
	used := make(map[string]struct{})

	UniqueName(used, "clip")
	if got := UniqueName(used, "clip"); got != "clip_2" {
		t.Errorf("extensionless collision should suffix the whole name, got %q", got)
	}
}
