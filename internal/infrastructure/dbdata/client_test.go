package dbdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/pkg/config"
	"github.com/multisoat/certificados-api/pkg/logger"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.DBDataConfig{
		BaseURL:    baseURL,
		DNIToken:   "token-dni",
		RUCToken:   "token-ruc",
		TimeoutSec: 2,
	}, logger.Nop())
}

func TestResolveExternalReference_SuppliedIDGanaSinConsulta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debe consultar la red cuando el id ya viene dado")
	}))
	defer srv.Close()

	supplied := int64(777)
	got := newTestClient(srv.URL).ResolveExternalReference(context.Background(), entity.DocumentoDNI, "12345678", &supplied)

	require.NotNil(t, got)
	assert.Equal(t, int64(777), *got)
}

func TestResolveExternalReference_DNIConsultaPersonaNatural(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getPersonaNatural", r.URL.Path)
		assert.Equal(t, "12345678", r.URL.Query().Get("dni"))
		assert.Equal(t, "Bearer token-dni", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":{"id":4101}}`))
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).ResolveExternalReference(context.Background(), entity.DocumentoDNI, "12345678", nil)

	require.NotNil(t, got)
	assert.Equal(t, int64(4101), *got)
}

func TestResolveExternalReference_RUCConsultaPersonaJuridica(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getPersonaJuridica", r.URL.Path)
		assert.Equal(t, "20123456789", r.URL.Query().Get("ruc"))
		assert.Equal(t, "Bearer token-ruc", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":{"id":88}}`))
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).ResolveExternalReference(context.Background(), entity.DocumentoRUC, "20123456789", nil)

	require.NotNil(t, got)
	assert.Equal(t, int64(88), *got)
}

func TestResolveExternalReference_CENuncaConsulta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("el CE no existe en db_data, no debe haber consulta")
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).ResolveExternalReference(context.Background(), entity.DocumentoCE, "X1234567", nil)

	assert.Nil(t, got)
}

func TestResolveExternalReference_SinTokenDegradaSilencioso(t *testing.T) {
	c := NewClient(config.DBDataConfig{BaseURL: "http://db-data.local", TimeoutSec: 2}, logger.Nop())

	got := c.ResolveExternalReference(context.Background(), entity.DocumentoDNI, "12345678", nil)

	assert.Nil(t, got)
}

func TestResolveExternalReference_ErroresDeRedDegradanANil(t *testing.T) {
	casos := []struct {
		nombre  string
		handler http.HandlerFunc
	}{
		{"status 500", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"status 401", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"json inválido", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`no es json`))
		}},
		{"success false", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false}`))
		}},
		{"sin id", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"data":{}}`))
		}},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			got := newTestClient(srv.URL).ResolveExternalReference(context.Background(), entity.DocumentoDNI, "12345678", nil)
			assert.Nil(t, got)
		})
	}
}

func TestResolveExternalReference_ServidorCaidoDegradaANil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado a propósito

	got := newTestClient(srv.URL).ResolveExternalReference(context.Background(), entity.DocumentoDNI, "12345678", nil)

	assert.Nil(t, got)
}
