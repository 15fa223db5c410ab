package objectstore

import (
	"net/url"
	"strings"
)

// Hosting platforms whose documents the gate cannot proxy. A file reference
// pointing at one of these is "external, un-securable" and is echoed back
// to the caller for an unprotected embed instead.
var externalHosts = []string{
	"drive.google.com",
	"docs.google.com",
	"dropbox.com",
	"scribd.com",
	"onedrive.live.com",
	"1drv.ms",
	"issuu.com",
}

// IsExternalURL reports whether the file reference points at a third-party
// document-hosting platform. extra lists additional configured hostnames.
func IsExternalURL(fileRef string, extra []string) bool {
	u, err := url.Parse(fileRef)
	if err != nil || u.Host == "" {
		// a bare bucket path, not a URL
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, known := range append(externalHosts, extra...) {
		if host == known || strings.HasSuffix(host, "."+known) {
			return true
		}
	}
	return false
}

// NormalizeKey turns a stored file reference into the object key expected
// by the bucket: any embedded bucket-name prefix is stripped, percent
// escapes are decoded, and the leading slash removed.
func NormalizeKey(bucket, fileRef string) string {
	key := fileRef

	if u, err := url.Parse(fileRef); err == nil && u.Host != "" {
		key = u.Path
	}

	if decoded, err := url.PathUnescape(key); err == nil {
		key = decoded
	}

	key = strings.TrimPrefix(key, "/")
	if bucket != "" {
		key = strings.TrimPrefix(key, bucket+"/")
	}
	return key
}
