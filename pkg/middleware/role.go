package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
	"github.com/vfg2006/campaign-tracker-api/pkg/apiErrors"
)

// Roles aceitos no token administrativo
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// RoleMiddleware cria um middleware que restringe o acesso com base nos roles
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if userClaims.Role == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para role %q", userClaims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly permite acesso apenas para administradores
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{RoleAdmin})
}

// AllRoles permite acesso para qualquer token válido
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{RoleAdmin, RoleViewer})
}
