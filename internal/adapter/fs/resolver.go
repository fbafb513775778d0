package fs

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolver expands ingest arguments into document file paths. Plain
// files pass through; directories are walked and filtered by the
// include/exclude glob patterns.
type Resolver struct {
	includes []string
	excludes []string
}

func NewResolver(includes, excludes []string) *Resolver {
	if len(includes) == 0 {
		includes = []string{"**/*.pdf", "**/*.docx", "**/*.txt"}
	}
	return &Resolver{
		includes: includes,
		excludes: excludes,
	}
}

// Resolve returns the document files named by args, in argument order,
// with directory contents in walk order. Missing paths are skipped;
// ingestion is batch-tolerant all the way down.
func (r *Resolver) Resolve(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		root, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			relPath, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			if info.IsDir() {
				if r.shouldExclude(relPath + "/") {
					return filepath.SkipDir
				}
				return nil
			}

			if r.shouldInclude(relPath) && !r.shouldExclude(relPath) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (r *Resolver) shouldInclude(path string) bool {
	for _, pattern := range r.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (r *Resolver) shouldExclude(path string) bool {
	for _, pattern := range r.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}
