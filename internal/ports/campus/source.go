package campus

import (
	"context"

	"campus-dashboard/internal/domain/records"
)

// Source trae una colección del backend del campus y devuelve el payload tal cual
// ({ "success": true, "<collection>": [...] }). La validación de forma la hace el dominio.
type Source interface {
	Fetch(ctx context.Context, c records.Collection) ([]byte, error)
}
