// Package storage persists exported report documents.
//
// Two drivers are available:
//   - "local"  — local filesystem (default)
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once at startup:
//
//	storage.Connect()
//
//	storage.Put("reports/order-stats-20240101-120000.json", data)
//	url := storage.URL("reports/order-stats-20240101-120000.json")
package storage

// Disk is the archive driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Files lists the files directly inside directory.
	Files(directory string) ([]string, error)

	// URL returns the public URL for path.
	URL(path string) string
}
