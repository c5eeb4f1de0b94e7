// Package file serves feature flags from a JSON or YAML document.
//
// A document is either an object mapping keys to scalar values or an array
// of records:
//
//	{"new-ui": true, "max-items": 25, "theme": "dark"}
//
//	- key: new-ui
//	  value: true
//	  description: Redesigned dashboard
//
// Object documents are served sorted by key; arrays keep their order and the
// last entry wins when a key repeats. Nested objects or arrays as values are
// rejected with ErrInvalidRecord.
//
// # Loaders
//
// The bytes come from a Loader:
//
//   - Bytes holds an inline document, handy for tests and defaults.
//   - LocalFile reads a path on disk.
//   - S3Object reads bucket/key through an S3Client. NewS3Client builds a real
//     one from S3Config, including custom endpoints for MinIO and other
//     S3-compatible stores.
//
// The format follows the loader's name: .yaml and .yml are YAML, everything
// else is JSON. WithFormat overrides the guess.
//
// # Usage
//
//	client, err := file.NewS3Client(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	source, err := file.New(ctx, file.S3Object(client, cfg.Bucket, cfg.Key))
//	if err != nil {
//		return err
//	}
//	resolver, err := feature.New(source)
//
// Reload re-reads the document and swaps it in atomically. A failed reload
// keeps the previous flags.
//
// # Errors
//
//   - ErrLoad: the loader failed. Joined with ErrFileNotFound, ErrAccessDenied
//     and the other classified causes.
//   - ErrParse: the bytes are not a valid document.
//   - ErrInvalidRecord: a record has an empty key or a non-scalar value.
package file
