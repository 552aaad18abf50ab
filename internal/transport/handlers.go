package transport

import (
	"github.com/ds124wfegd/animegen/internal/service"
)

type GenerateHandler struct {
	service service.GenerateService
}

func NewGenerateHandler(service service.GenerateService) *GenerateHandler {
	return &GenerateHandler{service: service}
}
