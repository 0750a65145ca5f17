// Package auth provides account registration, login and bearer token
// verification.
//
// Tokens are HS256 JWTs whose subject is the user id. Configuration:
//
//	JWT_SECRET=<secret>            # signing key, "secret" when unset
//	JWT_EXPIRY=24h                 # token lifetime
//	AUTH_LOGIN_FIELD=email         # or "username"
//	AUTH_VALIDATE_FORMAT=true      # email/username format checks
//	AUTH_BCRYPT_COST=10            # bcrypt cost factor
//
// # Usage
//
//	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
//	authMiddleware := auth.NewMiddleware(tokens, logger)
//	books := router.Group("/books", authMiddleware.Handler())
//
// Extract the caller in handlers:
//
//	ownerID := auth.GetUserID(c)
package auth
