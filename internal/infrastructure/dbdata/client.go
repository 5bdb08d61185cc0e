package dbdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/multisoat/certificados-api/internal/application/registro"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/pkg/config"
	"github.com/multisoat/certificados-api/pkg/logger"
)

var _ registro.RegistroExterno = (*Client)(nil)

// Client consulta el servicio externo db_data (RENIEC para personas naturales,
// SUNAT para jurídicas) y devuelve el id de la persona en esa base.
//
// La consulta es best-effort: cualquier falla (sin token, red caída, respuesta
// con forma inesperada) produce nil y el registro continúa sin referencia
// externa. Por contrato no devuelve error.
type Client struct {
	baseURL    string
	dniToken   string
	rucToken   string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente a partir de la configuración.
func NewClient(cfg config.DBDataConfig, log *logger.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		dniToken:   cfg.DNIToken,
		rucToken:   cfg.RUCToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// personaResponse forma de respuesta del servicio db_data.
type personaResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ID *int64 `json:"id"`
	} `json:"data"`
}

// ResolveExternalReference resuelve el documento a un id en db_data.
// Si el cliente ya trae un id (supplied) se confía en él y no hay consulta.
// Solo DNI y RUC consultan la red; el CE no existe en db_data.
func (c *Client) ResolveExternalReference(ctx context.Context, tipo entity.TipoDocumento, numero string, supplied *int64) *int64 {
	if supplied != nil {
		return supplied
	}

	var path, param, token string
	switch tipo {
	case entity.DocumentoDNI:
		path, param, token = "/getPersonaNatural", "dni", c.dniToken
	case entity.DocumentoRUC:
		path, param, token = "/getPersonaJuridica", "ruc", c.rucToken
	default:
		return nil
	}

	if c.baseURL == "" || token == "" {
		c.log.Warn().
			Str("tipo_documento", string(tipo)).
			Msg("db_data sin configurar, registro continúa sin referencia externa")
		return nil
	}

	id, err := c.consultar(ctx, path, param, numero, token)
	if err != nil {
		c.log.Warn().
			Err(err).
			Str("tipo_documento", string(tipo)).
			Msg("consulta db_data falló, registro continúa sin referencia externa")
		return nil
	}
	return id
}

func (c *Client) consultar(ctx context.Context, path, param, numero, token string) (*int64, error) {
	u := fmt.Sprintf("%s%s?%s=%s", c.baseURL, path, param, url.QueryEscape(numero))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("construir request db_data: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar db_data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("db_data respondió status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("leer respuesta db_data: %w", err)
	}

	var parsed personaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decodificar respuesta db_data: %w", err)
	}
	if !parsed.Success || parsed.Data.ID == nil {
		return nil, fmt.Errorf("db_data sin resultado para el documento")
	}
	return parsed.Data.ID, nil
}
