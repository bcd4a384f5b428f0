package pattern

import (
	"path/filepath"
	"strings"
)

type Format int

const (
	FormatUnknown Format = iota
	FormatASCII
	FormatPNG
	FormatPGM
	FormatBMP
	FormatTIFF
)

var formatNames = map[Format]string{
	FormatASCII: "ascii",
	FormatPNG:   "png",
	FormatPGM:   "pgm",
	FormatBMP:   "bmp",
	FormatTIFF:  "tiff",
}

// suffixes lists accepted extensions per format; the first is canonical.
var suffixes = map[Format][]string{
	FormatASCII: {".txt", ".cells"},
	FormatPNG:   {".png"},
	FormatPGM:   {".pgm"},
	FormatBMP:   {".bmp"},
	FormatTIFF:  {".tiff", ".tif"},
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// IsRaster reports whether f is an image format.
func (f Format) IsRaster() bool {
	switch f {
	case FormatPNG, FormatPGM, FormatBMP, FormatTIFF:
		return true
	}
	return false
}

// Suffix returns the canonical file extension, or "" for unknown formats.
func (f Format) Suffix() string {
	if s, ok := suffixes[f]; ok {
		return s[0]
	}
	return ""
}

// ParseFormat maps a format name or extension ("png", ".txt", "cells") to a
// Format.
func ParseFormat(name string) Format {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name {
			return f
		}
	}
	if name == "txt" || name == "text" {
		return FormatASCII
	}
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	for f, exts := range suffixes {
		for _, ext := range exts {
			if ext == name {
				return f
			}
		}
	}
	return FormatUnknown
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) Format {
	ext := filepath.Ext(path)
	if ext == "" {
		return FormatUnknown
	}
	return ParseFormat(ext)
}

// Names lists the known format names.
func Names() []string {
	return []string{"ascii", "png", "pgm", "bmp", "tiff"}
}

func hasSuffix(path string, f Format) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range suffixes[f] {
		if ext == s {
			return true
		}
	}
	return false
}
