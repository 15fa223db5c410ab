package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExternalURL(t *testing.T) {
	cases := []struct {
		ref      string
		external bool
	}{
		{"https://drive.google.com/file/d/abc/view", true},
		{"https://docs.google.com/document/d/abc", true},
		{"https://www.dropbox.com/s/abc/notes.pdf", true},
		{"https://onedrive.live.com/view.aspx?id=abc", true},
		{"https://1drv.ms/b/s!abc", true},
		{"https://www.scribd.com/document/123", true},
		{"notes/thermodynamics-101.pdf", false},
		{"/edvault-docs/notes/thermodynamics-101.pdf", false},
		{"s3://edvault-docs/notes/thermodynamics-101.pdf", false},
		{"https://cdn.example.com/notes.pdf", false},
		{"", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.external, IsExternalURL(c.ref, nil), "ref: %s", c.ref)
	}
}

func TestIsExternalURLConfiguredHosts(t *testing.T) {
	extra := []string{"slides.example.net"}
	assert.True(t, IsExternalURL("https://slides.example.net/deck/1", extra))
	assert.True(t, IsExternalURL("https://eu.slides.example.net/deck/1", extra))
	assert.False(t, IsExternalURL("https://slides.example.net.evil.com/deck/1", extra))
}

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		bucket string
		ref    string
		key    string
	}{
		{"edvault-docs", "notes/thermo.pdf", "notes/thermo.pdf"},
		{"edvault-docs", "/notes/thermo.pdf", "notes/thermo.pdf"},
		{"edvault-docs", "/edvault-docs/notes/thermo.pdf", "notes/thermo.pdf"},
		{"edvault-docs", "edvault-docs/notes/thermo.pdf", "notes/thermo.pdf"},
		{"edvault-docs", "s3://edvault-docs/notes/thermo.pdf", "notes/thermo.pdf"},
		{"edvault-docs", "/notes/thermo%20101.pdf", "notes/thermo 101.pdf"},
		{"", "/notes/thermo.pdf", "notes/thermo.pdf"},
	}

	for _, c := range cases {
		assert.Equal(t, c.key, NormalizeKey(c.bucket, c.ref), "ref: %s", c.ref)
	}
}
