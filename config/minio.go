package config

import (
	"sync"
)

var (
	minioOnce   sync.Once
	minioConfig *MinioConfig
)

type MinioConfig struct {
	AccessKey  string
	SecretKey  string
	Endpoint   string
	UseSSL     bool
	Region     string
	BucketName string
}

func GetMinioConfig() *MinioConfig {
	minioOnce.Do(func() {
		minioConfig = &MinioConfig{
			AccessKey:  lookup("MINIO_ACCESS_KEY", ""),
			SecretKey:  lookup("MINIO_SECRET_KEY", ""),
			Endpoint:   lookup("MINIO_ENDPOINT", "localhost:9000"),
			UseSSL:     lookupBool("MINIO_USE_SSL", false),
			Region:     lookup("MINIO_REGION", ""),
			BucketName: lookup("MINIO_BUCKET_NAME", "cv-documents"),
		}
	})
	return minioConfig
}
