package usecase

import (
	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/pkg/rut"
)

func pageOf(page dto.PageRequest) dto.PageResponse {
	return dto.PageResponse{Limit: page.Limit, Offset: page.Offset}
}

// cleanRUT normaliza y valida un RUT; el error queda asociado al campo "rut".
func cleanRUT(raw string) (string, error) {
	canonical, err := rut.Clean(raw)
	if err != nil {
		return "", domain.NewValidationError("rut", "RUT inválido.")
	}
	return canonical, nil
}
