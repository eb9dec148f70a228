// Package publish uploads rendered documents to a storage backend.
//
// A Publisher renders a dom.Document and hands the bytes to a Store. Two
// stores are provided: S3Store for Amazon S3 and S3-compatible services, and
// DiskStore for a local directory.
//
//	client := publish.NewS3Client(publish.S3Options{Region: "us-east-1"})
//	p := publish.New(publish.NewS3Store(client, "my-bucket", "pages/"))
//	res, err := p.Publish(ctx, "index.html", doc)
//
// Failures are reported as M040 (upload failed) or M041 (publishing not
// configured).
package publish
