package storage

import (
	"net/url"
	"strings"
)

const (
	// ProxyPathPrefix is the route prefix of the streaming media proxy.
	ProxyPathPrefix = "/api/images/"

	// LocalUploadPrefix is the legacy relative path under which files were
	// served before any cloud backend existed.
	LocalUploadPrefix = "/uploads/"

	gcsPublicHost = "storage.googleapis.com"
)

// embedHosts are video-sharing domains whose links are opaque external media
// embeds, not files owned by any backend.
var embedHosts = map[string]bool{
	"youtube.com":      true,
	"www.youtube.com":  true,
	"youtu.be":         true,
	"vimeo.com":        true,
	"player.vimeo.com": true,
}

// Normalize collapses any stored reference into its canonical filename.
//
// References accumulated over the life of the CMS come in several shapes:
// bare filenames, legacy local paths ("/uploads/x"), proxy paths
// ("/api/images/x"), public GCS URLs and signed GCS URLs with query
// parameters. All of them resolve to the same filename. Normalize is
// idempotent and never fails: input that cannot be reduced is returned
// unchanged. External video-embed links are returned untouched.
func Normalize(ref string) string {
	original := ref
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return original
	}
	if IsExternalEmbed(ref) {
		return original
	}

	// A well-formed absolute URL: keep only the last non-empty path segment.
	// This is the single step that understands URL structure; everything
	// below is plain string surgery.
	if u, err := url.Parse(ref); err == nil && u.IsAbs() && u.Host != "" {
		ref = lastSegment(u.Path)
	}

	// Defensive double-check for scheme+host remnants that survived parsing
	// (e.g. malformed URLs url.Parse rejected).
	if i := strings.Index(ref, "://"); i >= 0 {
		rest := ref[i+3:]
		if j := strings.Index(rest, "/"); j >= 0 {
			ref = rest[j+1:]
		} else {
			ref = ""
		}
	}

	// Known path prefixes, unprefixed and prefixed forms.
	for _, prefix := range []string{
		ProxyPathPrefix,
		strings.TrimPrefix(ProxyPathPrefix, "/"),
		LocalUploadPrefix,
		strings.TrimPrefix(LocalUploadPrefix, "/"),
	} {
		ref = strings.TrimPrefix(ref, prefix)
	}

	// A schemeless public GCS reference still carries host and bucket.
	if rest, ok := strings.CutPrefix(ref, gcsPublicHost+"/"); ok {
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[i+1:]
		}
		ref = rest
	}

	// Signed URLs that were pre-split before reaching us keep their query.
	if i := strings.Index(ref, "?"); i >= 0 {
		ref = ref[:i]
	}

	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return original
	}
	return ref
}

// IsExternalEmbed reports whether ref is a link to a recognized video-sharing
// site. Such references are embedded as-is and never resolve to stored files.
func IsExternalEmbed(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || !u.IsAbs() {
		return false
	}
	return embedHosts[strings.ToLower(u.Hostname())]
}

func lastSegment(p string) string {
	segments := strings.Split(p, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
