package authentication

import (
	"errors"
	"net/http"
	"time"

	"github.com/SidW111/Prescripto/models"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// GeneratePatientToken mints the token returned on register and login.
func GeneratePatientToken(userID uint) (string, error) {
	claims := &models.PatientClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour * 24).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// AuthenticatePatient verifies a patient token and returns the user id.
func AuthenticatePatient(signedStringToken string) (uint, error) {
	var patientClaims models.PatientClaims
	token, err := jwt.ParseWithClaims(signedStringToken, &patientClaims, func(token *jwt.Token) (interface{}, error) {
		return signingKey(), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*models.PatientClaims)
	if !ok {
		return 0, errors.New("couldn't parse claims")
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return 0, errors.New("token expired")
	}

	return claims.UserID, nil
}

// PatientAuthMiddleware reads the token from the custom "token" header and
// stores the authenticated user id on the context.
func PatientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("token")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized, login again"})
			return
		}

		userID, err := AuthenticatePatient(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
