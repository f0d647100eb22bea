package trace_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-smarttrace/format"
	"github.com/thanhminhmr/go-smarttrace/render"
	"github.com/thanhminhmr/go-smarttrace/trace"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := trace.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, trace.DefaultConfig(), config)
	require.Equal(t, render.DefaultOptions(), config.Options())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SMART_TRACE_ROOT_PACKAGES", "example.com/app;example.com/tools")
	t.Setenv("SMART_TRACE_IGNORE_CAUSE_PACKAGES", "example.com/wrapper")
	t.Setenv("SMART_TRACE_MAX_DEPTH", "5")
	t.Setenv("SMART_TRACE_PRINT_SUPPRESSED", "false")
	t.Setenv("SMART_TRACE_FORMATTER", "modular")

	config, err := trace.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"example.com/app", "example.com/tools"}, config.RootPackages)
	require.Equal(t, 5, config.MaxDepth)
	require.False(t, config.PrintSuppressed)

	registry, err := trace.New(config)
	require.NoError(t, err)
	require.Equal(t, []string{"example.com/app", "example.com/tools"}, registry.RootPackages())
	require.Equal(t, []string{"example.com/wrapper"}, registry.IgnorePackages())
	require.Equal(t, []string{"example.com/wrapper"}, registry.IgnoreCausePackages())
	require.Equal(t, 5, registry.Options().MaxDepth)
	require.Equal(t, format.Modular{}, registry.Formatter())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("SMART_TRACE_FORMATTER", "java")
	_, err := trace.LoadConfig()
	require.ErrorIs(t, err, trace.ErrInvalidConfig)
}

func TestNewValidates(t *testing.T) {
	registry, err := trace.New(nil)
	require.NoError(t, err)
	require.Equal(t, render.DefaultOptions(), registry.Options())

	_, err = trace.New(&trace.Config{MaxDepth: -1})
	require.ErrorIs(t, err, trace.ErrInvalidConfig)
}

func TestParseOptions(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := zerolog.New(buffer)
	config := trace.DefaultConfig()

	trace.ParseOptions(config, &logger,
		"rootPackage=example.com/app",
		"rootPackage=example.com/tools",
		"groupPackage=github.com/go-chi/chi/v5",
		"ignorePackage=runtime",
		"ignoreCausePackage=example.com/wrapper",
		"ignoreCauses=true",
		"ignoreModuleName=true",
		"maxDepth=3",
		"printPackageInformation=true",
		"printSuppressed=false",
	)
	require.Empty(t, buffer.String())
	require.Equal(t, []string{"example.com/app", "example.com/tools"}, config.RootPackages)
	require.Equal(t, []string{"github.com/go-chi/chi/v5"}, config.GroupPackages)
	require.Equal(t, []string{"runtime"}, config.IgnorePackages)
	require.Equal(t, []string{"example.com/wrapper"}, config.IgnoreCausePackages)
	require.True(t, config.IgnoreAllCauses)
	require.False(t, config.PrintModuleName)
	require.Equal(t, 3, config.MaxDepth)
	require.True(t, config.PrintPackageInformation)
	require.False(t, config.PrintSuppressed)
}

func TestParseOptionsSkipsInvalidOptions(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := zerolog.New(buffer)
	config := trace.DefaultConfig()

	trace.ParseOptions(config, &logger,
		"maxDepth=3",
		"maxDepth=many",
		"maxDepth=-2",
		"ignoreCauses=yes please",
		"colour=red",
		"rootPackage",
		"a=b=c",
	)
	require.Equal(t, 3, config.MaxDepth)
	require.False(t, config.IgnoreAllCauses)
	require.Empty(t, config.RootPackages)
	require.Equal(t, 6, bytes.Count(buffer.Bytes(), []byte(`"level":"warn"`)))
	require.Contains(t, buffer.String(), `"option":"colour=red"`)

	// a nil logger discards warnings
	trace.ParseOptions(config, nil, "unknown=1")
}
