// Package jwt provides JSON Web Token utilities for the Gather API.
//
// Tokens are signed with RS256. The server signs with a private key and
// validates with the matching public key, so a validation-only deployment
// needs nothing secret.
//
// # Token Generation
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    Issuer:         "gather-api",
//	    ExpirationMins: 60 * 24,
//	})
//
//	token, err := service.Sign(jwt.Claims{UserID: user.ID, Email: user.Email})
//
// # Token Validation
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
package jwt
