package ports

import "context"

// IdentityProvider define el puerto de salida hacia el proveedor de identidad hospedado.
// La aplicación solo conoce este contrato; el adaptador concreto vive en infrastructure.
type IdentityProvider interface {
	// UpdatePrivateMetadata reemplaza las claves dadas en la metadata privada del usuario.
	// Se usa para que el rol del proveedor refleje el rol guardado localmente.
	UpdatePrivateMetadata(ctx context.Context, userID string, metadata map[string]any) error

	// CreateInvitation pide al proveedor que envíe su email de invitación.
	// redirectURL es a dónde vuelve el invitado tras registrarse.
	CreateInvitation(ctx context.Context, email, redirectURL string) error
}
