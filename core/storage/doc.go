// Package storage provides the S3/MinIO client used to archive catalog
// snapshots after successful pushes.
//
// The Client interface wraps the handful of minio operations the archiver
// needs, so tests can substitute the testify mock in mocks/.
package storage
