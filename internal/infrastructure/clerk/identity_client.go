// Package clerk adapta el puerto IdentityProvider a la API Backend de Clerk.
package clerk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	clerksdk "github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/invitation"
	"github.com/clerk/clerk-sdk-go/v2/user"

	"github.com/jhoicas/agency-api/internal/application/ports"
)

var _ ports.IdentityProvider = (*Client)(nil)

// DefaultAPIURL URL base de la API Backend (sin versión).
const DefaultAPIURL = "https://api.clerk.com"

const apiVersion = "/v1"

// Client adaptador del proveedor de identidad sobre el SDK oficial.
type Client struct {
	secretKey   string
	users       *user.Client
	invitations *invitation.Client
}

// NewClient construye el adaptador. Con secretKey vacío las llamadas devuelven error.
func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	cfg := &clerksdk.ClientConfig{
		BackendConfig: clerksdk.BackendConfig{
			HTTPClient: &http.Client{Timeout: 15 * time.Second},
			URL:        clerksdk.String(strings.TrimRight(baseURL, "/") + apiVersion),
			Key:        clerksdk.String(secretKey),
		},
	}
	return &Client{
		secretKey:   secretKey,
		users:       user.NewClient(cfg),
		invitations: invitation.NewClient(cfg),
	}
}

// APIError respuesta no 2xx del proveedor.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("clerk: HTTP %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("clerk: HTTP %d: %s", e.StatusCode, e.Message)
}

// UpdatePrivateMetadata fusiona metadata en la metadata privada del usuario.
func (c *Client) UpdatePrivateMetadata(ctx context.Context, userID string, metadata map[string]any) error {
	if userID == "" {
		return fmt.Errorf("clerk: user id vacío")
	}
	if c.secretKey == "" {
		return errMissingKey
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("clerk: serializar metadata: %w", err)
	}
	private := json.RawMessage(raw)
	_, err = c.users.UpdateMetadata(ctx, userID, &user.UpdateMetadataParams{PrivateMetadata: &private})
	return wrap(ctx, err)
}

// CreateInvitation pide al proveedor que envíe el correo de invitación.
func (c *Client) CreateInvitation(ctx context.Context, email, redirectURL string) error {
	if c.secretKey == "" {
		return errMissingKey
	}
	params := &invitation.CreateParams{EmailAddress: email}
	if redirectURL != "" {
		params.RedirectURL = clerksdk.String(redirectURL)
	}
	_, err := c.invitations.Create(ctx, params)
	return wrap(ctx, err)
}

var errMissingKey = errors.New("clerk: CLERK_SECRET_KEY no configurado")

// wrap traduce la respuesta de error del SDK a APIError.
func wrap(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var sdkErr *clerksdk.APIErrorResponse
	if errors.As(err, &sdkErr) {
		apiErr := &APIError{StatusCode: sdkErr.HTTPStatusCode, Message: sdkErr.Error()}
		if len(sdkErr.Errors) > 0 {
			apiErr.Code = sdkErr.Errors[0].Code
			apiErr.Message = sdkErr.Errors[0].Message
			if sdkErr.Errors[0].LongMessage != "" {
				apiErr.Message = sdkErr.Errors[0].LongMessage
			}
		}
		return apiErr
	}
	if ctx.Err() != nil {
		return fmt.Errorf("clerk: timeout o cancelación: %w", ctx.Err())
	}
	return fmt.Errorf("clerk: llamada fallida: %w", err)
}
