package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		err     *errors.DotflexError
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "plain",
			err:     errors.New(errors.ErrNotFound, "file not found"),
			code:    errors.ErrNotFound,
			message: "file not found",
			wantStr: "[NOT_FOUND] file not found",
		},
		{
			name:    "formatted",
			err:     errors.Newf(errors.ErrFeatureNotFound, "no such feature: %s", "zsh"),
			code:    errors.ErrFeatureNotFound,
			message: "no such feature: zsh",
			wantStr: "[FEATURE_NOT_FOUND] no such feature: zsh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Message)
			assert.NotNil(t, tt.err.Details)
			assert.Equal(t, tt.wantStr, tt.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("base error")

	err := errors.Wrap(base, errors.ErrInternal, "internal error")
	require.NotNil(t, err)
	assert.Equal(t, "[INTERNAL] internal error: base error", err.Error())
	assert.Same(t, base, err.Unwrap())
	assert.True(t, stderrors.Is(err, base))

	wrapped := errors.Wrapf(base, errors.ErrFileWrite, "cannot write %s", "/tmp/x")
	assert.Equal(t, "cannot write /tmp/x", wrapped.Message)

	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "nothing %d", 1))
}

func TestIs(t *testing.T) {
	err := errors.Wrap(errors.New(errors.ErrNotViable, "missing"), errors.ErrInstallFailed, "install")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrInstallFailed, "")))
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrNotViable, "")), "inner codes match too")
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrSyncFailed, "")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrActionExecute, "failed").
		WithDetail("command", "sh").
		WithDetail("exit_code", 3)

	assert.Equal(t, map[string]interface{}{"command": "sh", "exit_code": 3}, err.Details)

	bare := &errors.DotflexError{Code: errors.ErrInternal}
	bare.WithDetail("k", "v")
	assert.Equal(t, "v", bare.Details["k"])
}

func TestIsErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrNotViable, "not viable")
	outer := errors.Wrap(inner, errors.ErrInstallFailed, "install failed")
	viaFmt := fmt.Errorf("context: %w", outer)

	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{"outer code", outer, errors.ErrInstallFailed, true},
		{"inner code", outer, errors.ErrNotViable, true},
		{"through fmt wrapper", viaFmt, errors.ErrNotViable, true},
		{"other code", outer, errors.ErrSyncFailed, false},
		{"standard error", stderrors.New("x"), errors.ErrUnknown, false},
		{"nil", nil, errors.ErrUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := fmt.Errorf("loading: %w", errors.New(errors.ErrManifestParse, "bad yaml").WithDetail("path", "/m.yml"))

	assert.Equal(t, errors.ErrManifestParse, errors.GetErrorCode(err))
	assert.Equal(t, "/m.yml", errors.GetErrorDetails(err)["path"])

	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestAs(t *testing.T) {
	de, ok := errors.As(fmt.Errorf("x: %w", errors.New(errors.ErrNotFound, "gone")))
	require.True(t, ok)
	assert.Equal(t, errors.ErrNotFound, de.Code)

	_, ok = errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestPersistent(t *testing.T) {
	assert.True(t, errors.ErrConfigPaths.Persistent())
	assert.True(t, errors.ErrManifestParse.Persistent())
	assert.False(t, errors.ErrNotViable.Persistent())
	assert.False(t, errors.ErrActionExecute.Persistent())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("boom"), "boom"},
		{"coded", errors.New(errors.ErrNotFound, "gone"), "gone"},
		{
			"wrapped chain",
			errors.Wrap(errors.New(errors.ErrNotViable, "not viable"), errors.ErrInstallFailed, "failed to install feature vim"),
			"failed to install feature vim: not viable",
		},
		{
			"fmt context around coded error",
			fmt.Errorf("failed to show feature: %w", errors.New(errors.ErrFeatureNotFound, "no such feature: vim")),
			"failed to show feature: no such feature: vim",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.UserMessage(tt.err))
		})
	}
}
