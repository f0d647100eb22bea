//go:build !no_zerolog

package exception_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-smarttrace/exception"
)

func TestMarshalZerologObject(t *testing.T) {
	err := exception.String("WriteFailed").
		SetMessage("disk %s", "full").
		AddCause(errors.New("no space left")).
		AddSuppressed(errors.New("close failed")).
		FillStackTrace(0)

	buffer := &bytes.Buffer{}
	zl := zerolog.New(buffer)
	zl.Error().Object("exception", err.(zerolog.LogObjectMarshaler)).Msg("failed")

	var fields struct {
		Exception struct {
			Type       string `json:"type"`
			Message    string `json:"message"`
			Cause      string `json:"cause"`
			Suppressed string `json:"suppressed"`
			StackTrace []struct {
				Function string `json:"function"`
				Line     int    `json:"line"`
			} `json:"stack_trace"`
		} `json:"exception"`
	}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &fields))
	require.Equal(t, "WriteFailed", fields.Exception.Type)
	require.Equal(t, "disk full", fields.Exception.Message)
	require.Equal(t, "no space left", fields.Exception.Cause)
	require.Equal(t, "close failed", fields.Exception.Suppressed)
	require.NotEmpty(t, fields.Exception.StackTrace)
	require.Equal(t, "github.com/thanhminhmr/go-smarttrace/exception_test.TestMarshalZerologObject", fields.Exception.StackTrace[0].Function)
	require.Positive(t, fields.Exception.StackTrace[0].Line)
}
