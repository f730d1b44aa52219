// Package s3 provides a blobstore.Store backed by Amazon S3 via the AWS SDK
// v2. Uploads stream through the transfer manager; objects are addressed as
// bucket/prefix/name.
package s3
