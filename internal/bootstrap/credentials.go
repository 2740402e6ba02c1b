package bootstrap

import (
	"context"
	"errors"

	treasuryclient "github.com/GregMSThompson/account-viewer/internal/client/treasury"
	"github.com/GregMSThompson/account-viewer/internal/config"
	"github.com/GregMSThompson/account-viewer/internal/errs"
)

type secretGetter interface {
	GetSecret(ctx context.Context, ref string) (string, error)
}

type decrypter interface {
	KmsDecrypt(ctx context.Context, ciphertext string) (string, error)
}

type sources struct {
	secrets secretGetter
	kms     decrypter
}

func (s sources) describe() string {
	switch {
	case s.secrets != nil && s.kms != nil:
		return "secret manager+kms"
	case s.secrets != nil:
		return "secret manager"
	case s.kms != nil:
		return "kms"
	default:
		return "environment"
	}
}

// resolveCredentials applies the precedence plain value > Secret Manager > KMS ciphertext.
func resolveCredentials(ctx context.Context, u config.UpstreamConfig, src sources) (treasuryclient.Credentials, error) {
	var creds treasuryclient.Credentials
	var err error

	creds.Username = u.Username
	if creds.Username == "" && u.UsernameSecret != "" {
		if src.secrets == nil {
			return creds, errs.NewCredentialError("secret manager", errors.New("no client configured"))
		}
		if creds.Username, err = src.secrets.GetSecret(ctx, u.UsernameSecret); err != nil {
			return creds, err
		}
	}

	creds.Password = u.Password
	switch {
	case creds.Password != "":
	case u.PasswordSecret != "":
		if src.secrets == nil {
			return creds, errs.NewCredentialError("secret manager", errors.New("no client configured"))
		}
		if creds.Password, err = src.secrets.GetSecret(ctx, u.PasswordSecret); err != nil {
			return creds, err
		}
	case u.PasswordCiphertext != "":
		if src.kms == nil {
			return creds, errs.NewCredentialError("kms", errors.New("no client configured"))
		}
		if creds.Password, err = src.kms.KmsDecrypt(ctx, u.PasswordCiphertext); err != nil {
			return creds, errs.NewCredentialError("kms", err)
		}
	}

	if creds.Username == "" || creds.Password == "" {
		return creds, errs.NewCredentialError("upstream", errors.New("resolved username or password is empty"))
	}
	return creds, nil
}
