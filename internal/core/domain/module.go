package domain

import "time"

// SiftFileName is the configuration file name looked up from the working directory.
const SiftFileName = "sift.yaml"

// SpecModule describes a single spec source file on disk.
type SpecModule struct {
	// Path is the absolute path of the module file.
	Path string
	// Hash is the content hash of the module source.
	Hash string
	// ModTime is the file's last modification timestamp.
	ModTime time.Time
	// Deps holds the transitive dependency paths of the module in
	// first-occurrence order.
	Deps []string
	// DepHashes holds the content hash of each entry in Deps, index-aligned.
	DepHashes []string
	// Source is the raw module source the hashes were computed from.
	Source []byte
}
