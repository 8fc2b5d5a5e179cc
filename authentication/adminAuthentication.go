package authentication

import (
	"errors"
	"net/http"
	"time"

	"github.com/SidW111/Prescripto/models"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// GenerateAdminToken mints the aToken returned on admin login.
func GenerateAdminToken(email string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &models.AdminClaims{
		Email:          email,
		StandardClaims: jwt.StandardClaims{ExpiresAt: expirationTime.Unix()},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// AuthenticateAdmin verifies an admin token and returns the admin email.
func AuthenticateAdmin(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey(), nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*models.AdminClaims); ok && token.Valid {
		return claims.Email, nil
	}
	return "", errors.New("invalid token")
}

// AdminAuthMiddleware reads the aToken header and checks the claim against
// the configured admin account.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("aToken")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized, login again"})
			return
		}

		email, err := AuthenticateAdmin(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		c.Set("adminEmail", email)
		c.Next()
	}
}
