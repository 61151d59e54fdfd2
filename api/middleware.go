package api

import (
	"strings"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "Bearer"
	authorizationPayloadKey = "authPayload"
	tokenQueryKey           = "token"
)

// optionalAuthMiddleware resolves the principal from the "token" query parameter, which
// browsers can set on a WebSocket URL, or from the Authorization header.
// A missing or invalid token leaves the request anonymous.
func optionalAuthMiddleware(tokenMaker token.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accessToken := ctx.Query(tokenQueryKey)
		if accessToken == "" {
			fields := strings.Fields(ctx.GetHeader(authorizationHeaderKey))
			if len(fields) == 2 && fields[0] == authorizationTypeBearer {
				accessToken = fields[1]
			}
		}
		
		if accessToken != "" {
			payload, err := tokenMaker.VerifyToken(accessToken)
			if err != nil {
				log.Debug().Err(err).Str("path", ctx.FullPath()).Msg("ignoring invalid access token")
			} else {
				ctx.Set(authorizationPayloadKey, payload)
			}
		}
		
		ctx.Next()
	}
}

// principalFrom returns the verified token payload, or nil for an anonymous request.
func principalFrom(ctx *gin.Context) *token.Payload {
	value, ok := ctx.Get(authorizationPayloadKey)
	if !ok {
		return nil
	}
	payload, _ := value.(*token.Payload)
	return payload
}
