package validation

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/multisoat/certificados-api/internal/domain/entity"
)

// Validaciones de formato para datos peruanos. Funciones puras: los callers
// acumulan los fallos como mensajes de validación, nunca como errores.

var (
	reEmail    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reDNI      = regexp.MustCompile(`^\d{8}$`)
	reRUC      = regexp.MustCompile(`^\d{11}$`)
	reCE       = regexp.MustCompile(`^[A-Z0-9]{9,12}$`)
	reEspacios = regexp.MustCompile(`\s+`)
)

// IsValidDocument valida el número según el tipo: DNI 8 dígitos, RUC 11 dígitos,
// CE 9-12 alfanumérico en mayúsculas. Tipos desconocidos siempre fallan.
func IsValidDocument(tipo entity.TipoDocumento, numero string) bool {
	numero = strings.TrimSpace(numero)
	if numero == "" {
		return false
	}
	switch tipo {
	case entity.DocumentoDNI:
		return reDNI.MatchString(numero)
	case entity.DocumentoRUC:
		return reRUC.MatchString(numero)
	case entity.DocumentoCE:
		return reCE.MatchString(numero)
	}
	return false
}

// IsValidEmail valida el formato del email.
func IsValidEmail(email string) bool {
	return email != "" && reEmail.MatchString(email)
}

// IsValidPhone valida un celular peruano: 9 dígitos y empieza por 9.
func IsValidPhone(telefono string) bool {
	digitos := soloDigitos(telefono)
	return len(digitos) == 9 && strings.HasPrefix(digitos, "9")
}

// NormalizeEmail canonicaliza el email para búsqueda y unicidad global.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeNombre lleva nombres y razones sociales a forma NFC con espacios
// colapsados, para que tildes compuestas y descompuestas comparen igual en DB.
func NormalizeNombre(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return reEspacios.ReplaceAllString(s, " ")
}

func soloDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
