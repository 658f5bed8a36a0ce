package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sfo/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_error",
			code:    errors.ErrConfigInvalid,
			message: "Unsupported rule type: bogus (rule 'x')",
			wantStr: "[CONFIG_INVALID] Unsupported rule type: bogus (rule 'x')",
		},
		{
			name:    "template_error",
			code:    errors.ErrTemplateInvalid,
			message: "unknown token {month}",
			wantStr: "[TEMPLATE_INVALID] unknown token {month}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConfigInvalid, "Rule '%s' (type=%s) requires '%s'", "images", "extension", "pattern")
	assert.Equal(t, "Rule 'images' (type=extension) requires 'pattern'", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileAccess, "cannot read file")

		require.NotNil(t, err)
		assert.Equal(t, errors.ErrFileAccess, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[FILE_ACCESS] cannot read file: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})

	t.Run("details_on_wrapped_nil_stay_nil", func(t *testing.T) {
		var wrapped *errors.SfoError
		assert.NotPanics(t, func() {
			wrapped = errors.Wrap(nil, errors.ErrFileMove, "move").
				WithDetail("path", "/a").
				WithDetails(map[string]interface{}{"dst": "/b"})
		})
		assert.Nil(t, wrapped)
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrConfigInvalid, "bad rule").
		WithDetail("rule", "images").
		WithDetails(map[string]interface{}{"field": "pattern", "index": 2})

	assert.Equal(t, map[string]interface{}{
		"rule":  "images",
		"field": "pattern",
		"index": 2,
	}, err.Details)
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrFileNotFound, "error 1")
	err2 := errors.New(errors.ErrFileNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrFileNotFound, "gone"), errors.ErrFileNotFound, true},
		{"different_code", errors.New(errors.ErrFileNotFound, "gone"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrFileNotFound, false},
		{"nil_error", nil, errors.ErrFileNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrTemplateInvalid, "bad").WithDetail("token", "month")

	assert.Equal(t, errors.ErrTemplateInvalid, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Equal(t, "month", errors.GetErrorDetails(err)["token"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("x")))
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, errors.IsConfigError(errors.New(errors.ErrConfigInvalid, "x")))
	assert.True(t, errors.IsConfigError(errors.New(errors.ErrTemplateInvalid, "x")))
	assert.True(t, errors.IsConfigError(errors.Wrap(stderrors.New("x"), errors.ErrConfigParse, "y")))
	assert.False(t, errors.IsConfigError(errors.New(errors.ErrFileAccess, "x")))
	assert.False(t, errors.IsConfigError(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))

	var inner *errors.SfoError
	require.True(t, stderrors.As(configErr.Unwrap(), &inner))
	assert.Equal(t, errors.ErrFileAccess, inner.Code)
	assert.True(t, stderrors.Is(configErr, rootCause))
}
