package authentication

import (
	"errors"
	"net/http"
	"time"

	"github.com/SidW111/Prescripto/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateDoctorToken mints the dToken returned on doctor login.
func GenerateDoctorToken(doctorEmail string, doctorId uint) (string, error) {
	claims := &models.DoctorClaims{
		Id:          doctorId,
		DoctorEmail: doctorEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// AuthenticateDoctor verifies a doctor token and returns the doctor id.
func AuthenticateDoctor(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.DoctorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey(), nil
	})
	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(*models.DoctorClaims); ok && token.Valid {
		return claims.Id, nil
	}
	return 0, errors.New("invalid token")
}

// DoctorAuthMiddleware reads the dToken header and stores the authenticated
// doctor id on the context.
func DoctorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("dToken")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized, login again"})
			return
		}

		doctorID, err := AuthenticateDoctor(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		c.Set("doctorID", doctorID)
		c.Next()
	}
}
