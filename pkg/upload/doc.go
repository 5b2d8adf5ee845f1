// Package upload inspects files that a request parser already materialized
// on disk: content sniffing, size and type checks, hashing and filename
// sanitization.
//
// All helpers take a path, never a multipart header, so they work on any
// temporary file regardless of how it was written.
//
// # Usage
//
//	if err := upload.ValidateSize(path, 5<<20); err != nil { // 5MB limit
//		return err
//	}
//
//	if err := upload.ValidateMIMEType(path, "image/jpeg", "image/png"); err != nil {
//		var mt *upload.MIMETypeError
//		if errors.As(err, &mt) {
//			log.Printf("rejected %s", mt.Detected)
//		}
//		return err
//	}
//
// # Security
//
// Types are detected from the first 512 bytes using http.DetectContentType,
// so a renamed executable is not accepted as an image. Extensions are only a
// fallback for formats the sniffer cannot recognize. Client filenames should
// pass through SanitizeFilename before they are used to build paths.
package upload
