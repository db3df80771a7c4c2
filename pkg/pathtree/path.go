package pathtree

import (
	"strings"
)

// PathElement is a single path component, e.g. "foo" in "foo/bar/baz". It must
// never contain a slash.
type PathElement = string

// Join is a fast alternative to path.Join designed specifically for
// root-relative manifest paths. It avoids the unnecessary path cleaning
// overhead incurred by path.Join. The provided leaf name must be non-empty,
// otherwise this function will panic.
func Join(base, leaf PathElement) string {
	if leaf == "" {
		panic("empty leaf name")
	}
	if base == "" {
		return leaf
	}
	return base + "/" + leaf
}

// Dir is a fast alternative to path.Dir designed specifically for
// root-relative manifest paths. Unlike path.Dir, the root is represented by
// the empty string rather than ".". The provided path must be non-empty.
func Dir(path string) string {
	if path == "" {
		panic("empty path")
	}
	lastSlashIndex := strings.LastIndexByte(path, '/')
	if lastSlashIndex == -1 {
		return ""
	}
	if lastSlashIndex == 0 {
		panic("empty parent path")
	}
	return path[:lastSlashIndex]
}

// Base is a fast alternative to path.Base designed specifically for
// root-relative manifest paths. If the provided path is empty (the root),
// this function returns an empty string.
func Base(path string) PathElement {
	if path == "" {
		return ""
	}
	lastSlashIndex := strings.LastIndexByte(path, '/')
	if lastSlashIndex == -1 {
		return path
	}
	if lastSlashIndex == len(path)-1 {
		panic("empty base name")
	}
	return path[lastSlashIndex+1:]
}

// Less performs a sort comparison between two root-relative manifest paths.
// It returns true if first sorts before second in depth-first, lexicographic
// traversal order.
func Less(first, second string) bool {
	if first == second {
		return false
	} else if first == "" {
		return true
	} else if second == "" {
		return false
	}

	for {
		firstSlash := strings.IndexByte(first, '/')
		var firstFront string
		if firstSlash == -1 {
			firstFront = first
		} else {
			firstFront = first[:firstSlash]
		}

		secondSlash := strings.IndexByte(second, '/')
		var secondFront string
		if secondSlash == -1 {
			secondFront = second
		} else {
			secondFront = second[:secondSlash]
		}

		if firstFront < secondFront {
			return true
		} else if secondFront < firstFront {
			return false
		}

		if firstSlash == -1 {
			return true
		} else if secondSlash == -1 {
			return false
		}
		first = first[firstSlash+1:]
		second = second[secondSlash+1:]
	}
}

// Split breaks a root-relative path into its slash-separated elements. The
// root path (empty string) splits to an empty slice.
func Split(path string) []PathElement {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
