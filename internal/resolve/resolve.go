// Package resolve locates plugin modules the way Node's require.resolve does:
// relative and absolute names are tried as files and then as directories,
// bare names are searched in node_modules directories walking up from the
// base directory.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"
)

// ErrModuleNotFound reports that no file matched a module name.
var ErrModuleNotFound = errors.New("module not found")

// NotFoundError describes a failed lookup.
type NotFoundError struct {
	Name    string
	BaseDir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resolve: cannot find module %q from %s", e.Name, e.BaseDir)
}

// Is makes errors.Is(err, ErrModuleNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrModuleNotFound
}

// DefaultExtensions are tried, in order, when a name has no matching file.
var DefaultExtensions = []string{".go", ".yaml", ".yml"}

const (
	nodeModulesDir  = "node_modules"
	packageManifest = "package.json"
)

// IsPackage reports whether name refers to an installable package rather
// than a local file path.
func IsPackage(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, ".") || strings.HasPrefix(trimmed, "/") {
		return false
	}
	return !filepath.IsAbs(trimmed)
}

// Status classifies a lookup outcome.
type Status int

const (
	Found Status = iota
	NotFound
	Failed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not-found"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of Lookup. Path is set when Status is Found; Err is
// set otherwise.
type Result struct {
	Status Status
	Path   string
	Err    error
}

// Resolver performs module lookups. The zero value uses DefaultExtensions.
type Resolver struct {
	Extensions []string
}

// Lookup resolves name from basedir and classifies the outcome instead of
// returning an error.
func (r *Resolver) Lookup(name, basedir string) Result {
	path, err := r.Resolve(name, basedir)
	switch {
	case err == nil:
		return Result{Status: Found, Path: path}
	case errors.Is(err, ErrModuleNotFound):
		return Result{Status: NotFound, Err: err}
	default:
		return Result{Status: Failed, Err: err}
	}
}

// Resolve returns the absolute path of the file name refers to. Missing
// modules return an error matching ErrModuleNotFound; any other error means
// the lookup itself broke (unreadable directories, malformed package.json).
func (r *Resolver) Resolve(name, basedir string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("resolve: module name is required")
	}
	base, err := filepath.Abs(basedir)
	if err != nil {
		return "", fmt.Errorf("resolve: base dir %s: %w", basedir, err)
	}
	if !IsPackage(trimmed) {
		candidate := trimmed
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(base, candidate)
		}
		path, ok, err := r.loadAsFileOrDirectory(filepath.Clean(candidate))
		if err != nil {
			return "", err
		}
		if ok {
			return path, nil
		}
		return "", &NotFoundError{Name: trimmed, BaseDir: base}
	}
	for _, dir := range nodeModulesPaths(base) {
		path, ok, err := r.loadAsFileOrDirectory(filepath.Join(dir, filepath.FromSlash(trimmed)))
		if err != nil {
			return "", err
		}
		if ok {
			return path, nil
		}
	}
	return "", &NotFoundError{Name: trimmed, BaseDir: base}
}

func (r *Resolver) extensions() []string {
	if len(r.Extensions) == 0 {
		return DefaultExtensions
	}
	return r.Extensions
}

func (r *Resolver) loadAsFileOrDirectory(candidate string) (string, bool, error) {
	path, ok, err := r.loadAsFile(candidate)
	if err != nil || ok {
		return path, ok, err
	}
	return r.loadAsDirectory(candidate)
}

func (r *Resolver) loadAsFile(candidate string) (string, bool, error) {
	ok, err := isFile(candidate)
	if err != nil || ok {
		return candidate, ok, err
	}
	for _, ext := range r.extensions() {
		withExt := candidate + ext
		ok, err := isFile(withExt)
		if err != nil {
			return "", false, err
		}
		if ok {
			return withExt, true, nil
		}
	}
	return "", false, nil
}

func (r *Resolver) loadAsDirectory(dir string) (string, bool, error) {
	main, err := readPackageMain(filepath.Join(dir, packageManifest))
	if err != nil {
		return "", false, err
	}
	if main != "" {
		target := filepath.Join(dir, filepath.FromSlash(main))
		path, ok, err := r.loadAsFile(target)
		if err != nil || ok {
			return path, ok, err
		}
		path, ok, err = r.loadIndex(target)
		if err != nil || ok {
			return path, ok, err
		}
	}
	return r.loadIndex(dir)
}

func (r *Resolver) loadIndex(dir string) (string, bool, error) {
	for _, ext := range r.extensions() {
		candidate := filepath.Join(dir, "index"+ext)
		ok, err := isFile(candidate)
		if err != nil {
			return "", false, err
		}
		if ok {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

type packageJSON struct {
	Main string `yaml:"main"`
}

// readPackageMain returns the manifest's main entry, or "" when the manifest
// is missing or declares none. package.json is valid YAML.
func readPackageMain(path string) (string, error) {
	ok, err := isFile(path)
	if err != nil || !ok {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("resolve: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", fmt.Errorf("resolve: %s is empty", path)
	}
	var manifest packageJSON
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("resolve: parse %s: %w", path, err)
	}
	return strings.TrimSpace(manifest.Main), nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, fmt.Errorf("resolve: stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// nodeModulesPaths lists node_modules directories from base up to the root,
// skipping segments that are themselves node_modules.
func nodeModulesPaths(base string) []string {
	var dirs []string
	current := filepath.Clean(base)
	for {
		if filepath.Base(current) != nodeModulesDir {
			dirs = append(dirs, filepath.Join(current, nodeModulesDir))
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return dirs
}
