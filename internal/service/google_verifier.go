package service

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// IdentityVerifier 外部身份凭证的信任边界。
// 实现必须校验受众（audience），防止其它应用签发的令牌被复用。
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (email, name string, err error)
}

// GoogleVerifier 通过 Google 公钥校验 ID Token
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return "", "", err
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", "", errors.New("email not found in Google token")
	}

	name, _ := payload.Claims["name"].(string)
	return email, name, nil
}
