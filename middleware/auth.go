package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/services"
	"github.com/inkpress/inkpress/utils"
)

// ContextActorKey is the key used to store the authenticated actor in Gin context.
const ContextActorKey = "actor"

// AuthRequired ensures the request is authenticated via a JWT bearer token
// and stores the resulting actor identity in the context.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextActorKey, &services.Actor{
			ID:    claims.UserID,
			Role:  claims.Role,
			Name:  claims.Name,
			Email: claims.Email,
		})
		ctx.Next()
	}
}

// ActorFrom returns the authenticated actor stored by AuthRequired, or nil
// when the request carries no verified identity.
func ActorFrom(ctx *gin.Context) *services.Actor {
	value, exists := ctx.Get(ContextActorKey)
	if !exists {
		return nil
	}
	actor, _ := value.(*services.Actor)
	return actor
}
