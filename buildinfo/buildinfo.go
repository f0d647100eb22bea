// Package buildinfo resolves which Go module owns a package and the version
// the module was built at, from the build information embedded in the binary.
package buildinfo

import (
	"runtime/debug"
	"sort"
	"strings"
	"sync"
)

// Info describes the module owning a package. Version is empty when unknown.
type Info struct {
	Path    string
	Version string
}

// Resolver finds the module owning a package import path.
type Resolver interface {
	Resolve(packagePath string) (Info, bool)
}

type modules []Info

// FromBuildInfo creates a Resolver over the main module and the
// dependencies listed in info. Replaced modules report the replacement
// version.
func FromBuildInfo(info *debug.BuildInfo) Resolver {
	if info == nil {
		return modules(nil)
	}
	result := make(modules, 0, len(info.Deps)+1)
	if info.Main.Path != "" {
		result = append(result, fromModule(&info.Main))
	}
	for _, dependency := range info.Deps {
		if dependency != nil && dependency.Path != "" {
			result = append(result, fromModule(dependency))
		}
	}
	// longest path first, so nested modules win over their parents
	sort.SliceStable(result, func(i, j int) bool {
		return len(result[i].Path) > len(result[j].Path)
	})
	return result
}

// FromModules creates a Resolver over the given modules.
func FromModules(infos ...Info) Resolver {
	return FromBuildInfo(&debug.BuildInfo{Deps: toModules(infos)})
}

func toModules(infos []Info) []*debug.Module {
	result := make([]*debug.Module, len(infos))
	for i, info := range infos {
		result[i] = &debug.Module{Path: info.Path, Version: info.Version}
	}
	return result
}

func fromModule(module *debug.Module) Info {
	version := module.Version
	if module.Replace != nil && module.Replace.Version != "" {
		version = module.Replace.Version
	}
	if version == "(devel)" {
		version = ""
	}
	return Info{Path: module.Path, Version: version}
}

func (m modules) Resolve(packagePath string) (Info, bool) {
	if packagePath == "" {
		return Info{}, false
	}
	for _, module := range m {
		if packagePath == module.Path || strings.HasPrefix(packagePath, module.Path+"/") {
			return module, true
		}
	}
	return Info{}, false
}

const defaultCacheSize = 1024

var defaultResolver = sync.OnceValue(func() Resolver {
	info, _ := debug.ReadBuildInfo()
	resolver, err := Cached(FromBuildInfo(info), defaultCacheSize)
	if err != nil {
		return FromBuildInfo(info)
	}
	return resolver
})

// Default returns the cached Resolver for the running binary.
func Default() Resolver {
	return defaultResolver()
}

// PackageInformation formats the library name and version as a suffix such
// as " [github.com/rs/zerolog:v1.34.0]". The version is omitted when the
// library name already contains it. It returns an empty string when both are
// empty.
func PackageInformation(library string, version string) string {
	hasLibrary := library != ""
	hasVersion := version != ""
	if !hasLibrary && !hasVersion {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(" [")
	if hasLibrary {
		builder.WriteString(library)
	}
	if hasVersion {
		if !hasLibrary {
			builder.WriteString(version)
		} else if !strings.Contains(library, version) {
			builder.WriteString(":")
			builder.WriteString(version)
		}
	}
	builder.WriteString("]")
	return builder.String()
}
