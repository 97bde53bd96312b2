package config

import (
	"sync"
)

var (
	s3Once   sync.Once
	s3Config *S3Config
)

type S3Config struct {
	BucketName string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
}

func GetS3Config() *S3Config {
	s3Once.Do(func() {
		s3Config = &S3Config{
			BucketName: lookup("AWS_S3_BUCKET_NAME", "cv-documents"),
			Region:     lookup("AWS_REGION", "us-east-1"),
			Endpoint:   lookup("AWS_ENDPOINT", ""),
			AccessKey:  lookup("AWS_ACCESS_KEY", ""),
			SecretKey:  lookup("AWS_SECRET_KEY", ""),
		}
	})
	return s3Config
}
