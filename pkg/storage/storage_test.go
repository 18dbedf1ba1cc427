package storage

import "testing"

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"a.webp":     "image/webp",
		"a.jpg":      "image/jpeg",
		"a.JPEG":     "image/jpeg",
		"a.png":      "image/png",
		"a.gif":      "image/gif",
		"clip.mp4":   "video/mp4",
		"clip.webm":  "video/webm",
		"file.bin":   "application/octet-stream",
		"noext":      "application/octet-stream",
		"weird.tar":  "application/octet-stream",
	}
	for filename, want := range cases {
		if got := ContentTypeFor(filename); got != want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", filename, got, want)
		}
	}
}

func TestIsVideo(t *testing.T) {
	if !IsVideo("clip.mp4") || !IsVideo("clip.webm") {
		t.Error("Expected mp4 and webm to be videos")
	}
	if IsVideo("photo.webp") || IsVideo("doc.pdf") {
		t.Error("Expected non-video extensions to report false")
	}
}
