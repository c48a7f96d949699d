package lumen

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindResourcePath locates the resource bundle for an executable.
// argv0 is typically os.Args[0]; an empty argv0 falls back to the
// working directory. The bundle is expected at <exedir>/resources with
// a ../resources fallback for in-tree builds; macOS app bundles resolve
// to Contents/Resources.
func FindResourcePath(argv0 string) string {
	argv0 = filepath.ToSlash(argv0)
	path := ""
	if i := strings.LastIndex(argv0, "/"); i >= 0 {
		path = argv0[:i]
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err == nil {
			path = filepath.Join(cwd, path)
		}
	}

	if IsMacOS() && strings.HasSuffix(path, "MacOS") {
		// Inside an app bundle: Contents/MacOS -> Contents/Resources.
		return filepath.Join(filepath.Dir(path), "Resources")
	}

	resourcePath := filepath.Join(path, "resources")
	if !dirExists(resourcePath) {
		return filepath.Join(path, "..", "resources")
	}
	return resourcePath
}

var fontExtensions = []string{".ttf", ".ttc", ".otf"}

// Weight/style suffixes tried when a bare family name is requested.
var fontSuffixes = []string{
	"-Regular", "-Normal", "-Medium", "-Narrow",
	"Regular", "Normal", "Medium", "Narrow",
}

// FindFontPath resolves a font name to a file. An existing path is
// returned as-is; otherwise the platform font directories are searched
// for the name with the usual extensions, then recursively for files
// matching the family with a common weight suffix. Returns "" when
// nothing matches.
func FindFontPath(font string) string {
	if fileExists(font) {
		return font
	}

	for _, dir := range systemFontDirs() {
		for _, ext := range fontExtensions {
			candidate := filepath.Join(dir, font+ext)
			if fileExists(candidate) {
				return candidate
			}
		}
	}

	for _, dir := range systemFontDirs() {
		if match := searchFontDir(dir, font); match != "" {
			return match
		}
	}
	return ""
}

// searchFontDir walks one font directory looking for an exact family
// match first, then a family+suffix match.
func searchFontDir(dir, font string) string {
	var exact, suffixed string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || exact != "" {
			return nil
		}
		name := d.Name()
		ext := strings.ToLower(filepath.Ext(name))
		ok := false
		for _, fe := range fontExtensions {
			if ext == fe {
				ok = true
				break
			}
		}
		if !ok {
			return nil
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == font {
			exact = path
			return nil
		}
		if suffixed == "" {
			for _, suf := range fontSuffixes {
				if base == font+suf {
					suffixed = path
					break
				}
			}
		}
		return nil
	})
	if exact != "" {
		return exact
	}
	return suffixed
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
