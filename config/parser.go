package config

import (
	"strings"
	"sync"
)

var (
	parserOnce   sync.Once
	parserConfig *ParserConfig
)

type ParserConfig struct {
	// OCREngine selects "tesseract" or "textract".
	OCREngine     string
	OCRLanguages  []string
	OCRPreprocess bool
	// NER toggles named-entity extraction over CV text.
	NER bool
}

func GetParserConfig() *ParserConfig {
	parserOnce.Do(func() {
		langs := strings.Split(lookup("OCR_LANGUAGES", "eng"), ",")
		for i := range langs {
			langs[i] = strings.TrimSpace(langs[i])
		}
		parserConfig = &ParserConfig{
			OCREngine:     lookup("OCR_ENGINE", "tesseract"),
			OCRLanguages:  langs,
			OCRPreprocess: lookupBool("OCR_PREPROCESS", true),
			NER:           lookupBool("NER_ENABLED", true),
		}
	})
	return parserConfig
}
