package cognito

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsTokenExpired(t *testing.T) {
	p := &Provider{logger: zap.NewNop()}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{
			"expired access token",
			&types.NotAuthorizedException{Message: aws.String("Access Token has expired")},
			true,
		},
		{
			"revoked token",
			&types.NotAuthorizedException{Message: aws.String("Access Token has been revoked")},
			true,
		},
		{
			"wrong credentials",
			&types.NotAuthorizedException{Message: aws.String("Incorrect username or password.")},
			false,
		},
		{"plain expiry message", errors.New("token has expired"), true},
		{"unrelated error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsTokenExpired(tt.err))
		})
	}
}

func TestIsCodeRejection(t *testing.T) {
	assert.True(t, isCodeRejection(&types.CodeMismatchException{}))
	assert.True(t, isCodeRejection(&types.ExpiredCodeException{}))
	assert.False(t, isCodeRejection(&types.NotAuthorizedException{}))
	assert.False(t, isCodeRejection(errors.New("boom")))
}

func TestRejectionMessage(t *testing.T) {
	apiErr := &types.InvalidPasswordException{
		Message: aws.String("Password did not conform with policy: Password must have symbol characters"),
	}

	assert.Equal(t,
		"Password did not conform with policy: Password must have symbol characters",
		rejectionMessage(apiErr, "fallback"),
	)
	assert.Equal(t, "fallback", rejectionMessage(errors.New("raw"), "fallback"))
}
