package reef

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/golang-jwt/jwt/v5"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// AuthController authenticates the client against the server's local
// credential strategy and manages the resulting session token.
type AuthController struct {
	client *Client
}

// Credentials are local-strategy credentials.
type Credentials struct {
	Username string
	Password string
}

// Validate implements ozzo validation for Credentials.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// Login authenticates with the local strategy and stores the returned
// session token on the client, where Query attaches it to subsequent calls.
func (ac *AuthController) Login(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return invalidArgument("auth.Login", err)
	}

	req := protocol.NewRequest("auth", "login").
		AddToBody("username", creds.Username).
		AddToBody("password", creds.Password)
	res, err := ac.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}

	var out struct {
		JWT string `mapstructure:"jwt"`
	}
	if err := decodeResult("auth.Login", res.Result, &out); err != nil {
		return err
	}
	if out.JWT == "" {
		return &protocol.Error{
			Op:  "auth.Login",
			Err: protocol.ErrUnexpectedResult,
			Msg: "reply carried no token",
		}
	}

	ac.client.SetJWT(out.JWT)
	return nil
}

// Logout revokes the session server-side and drops the stored token. The
// token is dropped even when the server call fails.
func (ac *AuthController) Logout(ctx context.Context) error {
	req := protocol.NewRequest("auth", "logout")
	res, err := ac.client.Query(ctx, req, protocol.NewQueryOptions())

	ac.client.SetJWT("")

	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// TokenExpiresAt reports the expiry claim of the stored session token. The
// token is decoded without signature verification: expiry is advisory
// client-side, the server remains the authority.
func (ac *AuthController) TokenExpiresAt() (time.Time, error) {
	token := ac.client.JWT()
	if token == "" {
		return time.Time{}, &protocol.Error{
			Op:  "auth.TokenExpiresAt",
			Err: protocol.ErrInvalidArgument,
			Msg: "no session token stored",
		}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, &protocol.Error{
			Op:  "auth.TokenExpiresAt",
			Err: protocol.ErrInvalidArgument,
			Msg: err.Error(),
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, &protocol.Error{
			Op:  "auth.TokenExpiresAt",
			Err: protocol.ErrInvalidArgument,
			Msg: "token carries no expiration claim",
		}
	}
	return exp.Time, nil
}
