package handle

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"courier-ledger/internal/config"
	"courier-ledger/internal/ledger-service/core/domain/dto"
	"courier-ledger/internal/mylogger"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues gateway tokens for the two fixed privileged principals.
// Credential hashes live in config; there is no account store here.
type AuthHandler struct {
	cfg *config.Appconfig
	log mylogger.Logger
}

func NewAuthHandler(cfg *config.Appconfig, log mylogger.Logger) *AuthHandler {
	return &AuthHandler{
		cfg: cfg,
		log: log,
	}
}

func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := ah.log.Action("Login")

		req := dto.LoginRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		var passHash string
		switch req.AccountId {
		case ah.cfg.OwnerId:
			passHash = ah.cfg.OwnerPassHash
		case ah.cfg.DriverAdminId:
			passHash = ah.cfg.AdminPassHash
		default:
			log.Warn("login attempt for unknown principal", "account_id", req.AccountId)
			JsonError(w, http.StatusUnauthorized, fmt.Errorf("unknown account"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(passHash), []byte(req.Password)); err != nil {
			log.Warn("bad credentials", "account_id", req.AccountId)
			JsonError(w, http.StatusUnauthorized, fmt.Errorf("bad credentials"))
			return
		}

		AccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"account_id": req.AccountId,
			"exp":        time.Now().Add(time.Minute * time.Duration(ah.cfg.TokenTTLMinutes)).Unix(),
		})
		accessTokenString, err := AccessToken.SignedString([]byte(ah.cfg.JwtSecret))
		if err != nil {
			log.Error("error to create jwt token", err)
			JsonError(w, http.StatusInternalServerError, fmt.Errorf("internal error, please try again later"))
			return
		}

		log.Info("principal logged in", "account_id", req.AccountId)
		jsonResponse(w, http.StatusOK, dto.LoginResponse{
			AccountId: req.AccountId,
			Token:     accessTokenString,
		})
	}
}
