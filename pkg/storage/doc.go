// Package storage provides the sinks generated documentation is written to.
//
// A Storage accepts slash-separated names relative to its root. Names are
// normalized with CleanName, and names that are absolute or climb out of the
// root are rejected with ErrInvalidName.
//
// Backends:
//
//   - FileSystemStorage writes below a local output directory
//   - S3Storage uploads objects to an S3 compatible bucket under an optional prefix
//   - MemoryStorage keeps files in memory
//
// Open selects a backend from a Config:
//
//	sink, err := storage.Open(ctx, storage.Config{
//		Type:     "s3",
//		S3Bucket: "docs",
//		S3Prefix: "pizza/v1",
//	})
//	if err != nil {
//		return err
//	}
//	err = sink.WriteFile(ctx, "index.html", page)
//
// S3Storage records an OpenTelemetry span per object operation and stores a
// SHA-256 checksum of the content in the object metadata.
package storage
