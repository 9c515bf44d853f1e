package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// GitignoreFile is the per-directory ignore file honoured during discovery.
const GitignoreFile = ".gitignore"

// Discover finds component files matching opts.
// It returns a sorted, de-duplicated list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	ignore := newIgnoreSet(workDir, opts)

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if hasExtension(absPath, extensions) && !ignore.matches(absPath, false) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, extensions, ignore, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func walkDirectory(
	ctx context.Context,
	root string,
	extensions []string,
	ignore *ignoreSet,
	followSymlinks bool,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && ignore.matches(path, true) {
				return filepath.SkipDir
			}
			ignore.load(path)
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Unreadable symlink targets are skipped.
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not descend into a symlinked root.
				sub, err := walkDirectory(ctx, realPath, extensions, ignore, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if hasExtension(path, extensions) && !ignore.matches(path, false) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(path)))
}

// ignoreRule is a compiled ignore file whose patterns are relative to base.
type ignoreRule struct {
	base    string
	matcher *gitignore.GitIgnore
}

// ignoreSet combines the configured ignore patterns with every .gitignore
// loaded so far.
type ignoreSet struct {
	gitignore bool
	loaded    map[string]struct{}
	rules     []ignoreRule
}

func newIgnoreSet(workDir string, opts Options) *ignoreSet {
	s := &ignoreSet{
		gitignore: opts.Gitignore,
		loaded:    make(map[string]struct{}),
	}
	if len(opts.Ignore) > 0 {
		s.rules = append(s.rules, ignoreRule{
			base:    workDir,
			matcher: gitignore.CompileIgnoreLines(opts.Ignore...),
		})
	}
	s.load(workDir)
	return s
}

// load compiles dir/.gitignore once, if gitignore support is on and the
// file exists.
func (s *ignoreSet) load(dir string) {
	if !s.gitignore {
		return
	}
	if _, done := s.loaded[dir]; done {
		return
	}
	s.loaded[dir] = struct{}{}

	path := filepath.Join(dir, GitignoreFile)
	if _, err := os.Stat(path); err != nil {
		return
	}
	matcher, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return
	}
	s.rules = append(s.rules, ignoreRule{base: dir, matcher: matcher})
}

// matches reports whether any rule whose base contains path ignores it.
func (s *ignoreSet) matches(path string, isDir bool) bool {
	for _, rule := range s.rules {
		rel, err := filepath.Rel(rule.base, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		if rule.matcher.MatchesPath(rel) {
			return true
		}
		if isDir && rule.matcher.MatchesPath(rel+"/") {
			return true
		}
	}
	return false
}
