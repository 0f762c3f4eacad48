package ports

// ContentHasher computes content hashes for modules and their dependencies.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type ContentHasher interface {
	// HashFile computes the content hash of the file at path.
	HashFile(path string) (string, error)

	// HashBytes computes the content hash of the given bytes.
	HashBytes(data []byte) string
}
