package handlers

import (
	"github.com/mikawi/g2scv/internal/service/document"
	"github.com/mikawi/g2scv/pkg/logger"
)

type Handlers struct {
	CV *CVHandler
}

func NewHandlers(
	cvService document.CVParser,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		CV: NewCVHandler(cvService, log),
	}
}
