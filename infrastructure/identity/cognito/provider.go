// Package cognito adapts AWS Cognito to the IdentityProvider port.
package cognito

import (
	"context"
	"errors"
	"strings"
	"time"

	"pathshala-backend/application/ports"
	"pathshala-backend/domain/account"
	pkgerrors "pathshala-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// maxPictureAttribute is Cognito's per-attribute value ceiling. Larger
// picture URLs stay in the profile store only; a thumbnail is mirrored.
const maxPictureAttribute = 2048

// Provider implements ports.IdentityProvider over a Cognito user pool
type Provider struct {
	client   *cognito.Client
	clientID string
	logger   *zap.Logger
}

// NewProvider creates a Cognito identity provider adapter
func NewProvider(client *cognito.Client, clientID string, logger *zap.Logger) ports.IdentityProvider {
	return &Provider{
		client:   client,
		clientID: clientID,
		logger:   logger,
	}
}

// ExchangeCredentials trades email+password for a bearer token via the
// USER_PASSWORD_AUTH flow
func (p *Provider) ExchangeCredentials(ctx context.Context, email, password string) (ports.Credential, error) {
	out, err := p.client.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return ports.Credential{}, pkgerrors.NewAuthenticationError(rejectionMessage(err, "invalid email or password")).WithCause(err)
	}
	if out.AuthenticationResult == nil || out.AuthenticationResult.AccessToken == nil {
		return ports.Credential{}, pkgerrors.NewAuthenticationError("authentication did not produce a token")
	}

	result := out.AuthenticationResult
	return ports.Credential{
		Token:     aws.ToString(result.AccessToken),
		ExpiresAt: time.Now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}, nil
}

// GetAttributes fetches the verified attributes behind a token
func (p *Provider) GetAttributes(ctx context.Context, token string) (account.Identity, error) {
	out, err := p.client.GetUser(ctx, &cognito.GetUserInput{
		AccessToken: aws.String(token),
	})
	if err != nil {
		return account.Identity{}, pkgerrors.NewAttributeFetchError(rejectionMessage(err, "failed to fetch user attributes")).WithCause(err)
	}

	ident := account.Identity{Claims: make(map[string]string)}
	for _, attr := range out.UserAttributes {
		name := aws.ToString(attr.Name)
		value := aws.ToString(attr.Value)
		if name == "" || value == "" {
			continue
		}
		switch name {
		case "sub":
			ident.ID = value
		case "email":
			ident.Email = value
		case "name":
			ident.Name = value
		case "phone_number":
			ident.Phone = value
		case "picture":
			ident.Picture = value
		case account.ClaimUserType:
			ident.Role = account.Role(value)
		default:
			ident.Claims[name] = value
		}
	}
	return ident, nil
}

// Register creates a new identity. The role is written as a custom claim
// and never changed afterwards.
func (p *Provider) Register(ctx context.Context, email, password, name string, role account.Role) error {
	_, err := p.client.SignUp(ctx, &cognito.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(name)},
			{Name: aws.String(account.ClaimUserType), Value: aws.String(string(role))},
		},
	})
	if err != nil {
		var invalidPassword *types.InvalidPasswordException
		if errors.As(err, &invalidPassword) {
			return pkgerrors.NewWeakPasswordError(rejectionMessage(err, "password rejected")).WithCause(err)
		}
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return pkgerrors.NewValidationError("an account with this email already exists").WithCause(err)
		}
		return pkgerrors.NewInternalError(rejectionMessage(err, "registration failed")).WithCause(err)
	}
	return nil
}

// ConfirmRegistration submits the emailed verification code
func (p *Provider) ConfirmRegistration(ctx context.Context, email, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cognito.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		if isCodeRejection(err) {
			return pkgerrors.NewInvalidCodeError(rejectionMessage(err, "verification code rejected")).WithCause(err)
		}
		return pkgerrors.NewInternalError(rejectionMessage(err, "confirmation failed")).WithCause(err)
	}
	return nil
}

// UpdateAttributes writes provider-recognized attributes under a token.
// Oversized picture values are dropped here and kept profile-only.
func (p *Provider) UpdateAttributes(ctx context.Context, token string, attributes map[string]string) error {
	attrs := make([]types.AttributeType, 0, len(attributes))
	for name, value := range attributes {
		if name == "picture" && len(value) > maxPictureAttribute {
			p.logger.Warn("picture URL exceeds identity attribute ceiling, keeping profile-only",
				zap.Int("length", len(value)),
			)
			continue
		}
		attrs = append(attrs, types.AttributeType{
			Name:  aws.String(name),
			Value: aws.String(value),
		})
	}
	if len(attrs) == 0 {
		return nil
	}

	_, err := p.client.UpdateUserAttributes(ctx, &cognito.UpdateUserAttributesInput{
		AccessToken:    aws.String(token),
		UserAttributes: attrs,
	})
	return err
}

// InvalidateToken revokes the credential globally, all devices included
func (p *Provider) InvalidateToken(ctx context.Context, token string) error {
	_, err := p.client.GlobalSignOut(ctx, &cognito.GlobalSignOutInput{
		AccessToken: aws.String(token),
	})
	return err
}

// RequestPasswordReset starts the two-step recovery flow
func (p *Provider) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := p.client.ForgotPassword(ctx, &cognito.ForgotPasswordInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
	})
	if err != nil {
		return pkgerrors.NewInternalError(rejectionMessage(err, "password reset request failed")).WithCause(err)
	}
	return nil
}

// ConfirmPasswordReset completes recovery with code and new password
func (p *Provider) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	_, err := p.client.ConfirmForgotPassword(ctx, &cognito.ConfirmForgotPasswordInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	if err != nil {
		if isCodeRejection(err) {
			return pkgerrors.NewInvalidCodeError(rejectionMessage(err, "verification code rejected")).WithCause(err)
		}
		var invalidPassword *types.InvalidPasswordException
		if errors.As(err, &invalidPassword) {
			return pkgerrors.NewWeakPasswordError(rejectionMessage(err, "password rejected")).WithCause(err)
		}
		return pkgerrors.NewInternalError(rejectionMessage(err, "password reset failed")).WithCause(err)
	}
	return nil
}

// IsTokenExpired reports whether err indicates an expired or revoked
// bearer token
func (p *Provider) IsTokenExpired(err error) bool {
	if err == nil {
		return false
	}
	var notAuthorized *types.NotAuthorizedException
	if errors.As(err, &notAuthorized) {
		msg := strings.ToLower(aws.ToString(notAuthorized.Message))
		return strings.Contains(msg, "expired") || strings.Contains(msg, "revoked")
	}
	return strings.Contains(strings.ToLower(err.Error()), "token has expired")
}

// isCodeRejection matches Cognito's code mismatch and expiry rejections
func isCodeRejection(err error) bool {
	var mismatch *types.CodeMismatchException
	var expired *types.ExpiredCodeException
	return errors.As(err, &mismatch) || errors.As(err, &expired)
}

// rejectionMessage extracts the provider's own message when available so
// rejections surface verbatim, falling back to a generic message.
func rejectionMessage(err error, fallback string) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return fallback
}
