package config

import (
	"sync"
)

var (
	textractOnce   sync.Once
	textractConfig *TextractConfig
)

type TextractConfig struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func GetTextractConfig() *TextractConfig {
	textractOnce.Do(func() {
		textractConfig = &TextractConfig{
			Region:    lookup("AWS_REGION", "us-east-1"),
			Endpoint:  lookup("AWS_ENDPOINT", ""),
			AccessKey: lookup("AWS_ACCESS_KEY", ""),
			SecretKey: lookup("AWS_SECRET_KEY", ""),
		}
	})
	return textractConfig
}
