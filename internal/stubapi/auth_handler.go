package stubapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nom      string `json:"nom" binding:"required"`
	Prenom   string `json:"prenom" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFailure(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	created, err := s.store.addUser(req.Email, req.Password, record{"nom": req.Nom, "prenom": req.Prenom})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			authFailure(c, http.StatusConflict, "An account already exists for this email")
			return
		}
		authFailure(c, http.StatusInternalServerError, "Could not process registration")
		return
	}
	s.issueTokens(c, http.StatusCreated, created, "Registration successful")
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFailure(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, ok := s.store.authenticate(req.Email, req.Password)
	if !ok {
		authFailure(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.issueTokens(c, http.StatusOK, user, "Login successful")
}

func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFailure(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := s.store.consumeRefreshToken(req.RefreshToken)
	if !ok {
		authFailure(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	user, err := s.store.get(Users, userID)
	if err != nil {
		authFailure(c, http.StatusUnauthorized, "Account no longer exists")
		return
	}
	s.issueTokens(c, http.StatusOK, user, "Token refreshed")
}

// issueTokens answers with a fresh access token and a single-use refresh token.
func (s *Server) issueTokens(c *gin.Context, status int, user record, message string) {
	id, _ := toInt64(user["id"])
	role, _ := user["role"].(string)

	token, err := s.SignToken(id, domain.Role(role), s.cfg.JWTExpiration)
	if err != nil {
		authFailure(c, http.StatusInternalServerError, "Could not process login")
		return
	}
	refreshToken := uuid.NewString()
	s.store.saveRefreshToken(refreshToken, id)

	c.JSON(status, gin.H{
		"success":       true,
		"message":       message,
		"user":          user,
		"token":         token,
		"refresh_token": refreshToken,
	})
}

// SignToken creates an HS256 access token. A negative ttl yields an already expired token.
func (s *Server) SignToken(userID int64, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "learntrack-stub",
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func authFailure(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}
