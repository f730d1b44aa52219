// Package blobstore abstracts where index snapshots live.
//
// The in-memory and local-filesystem stores are built in; S3-compatible
// backends live in the s3 and minio subpackages so their SDKs stay out of
// the core dependency graph.
package blobstore
