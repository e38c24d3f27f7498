package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formmask/pkg/fieldset"
)

type violation struct {
	file     string
	location string
	message  string
}

func runLint(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, verbose := newFlagSet("lint", stderr)
	watch := flags.Bool("watch", false, "keep reloading the directory until interrupted")
	if err := flags.Parse(args); err != nil {
		return err
	}
	logger := newLogger(*verbose, stderr)

	paths := flags.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if *watch {
		if len(paths) != 1 {
			return errors.New("lint: -watch takes a single directory")
		}
		logger.Info("watching field sets", "dir", paths[0])
		return fieldset.Watch(ctx, paths[0], func(store *fieldset.Store) {
			fmt.Fprintf(stdout, "%s: %d fields ok\n", paths[0], len(store.Names()))
		}, func(err error) {
			fmt.Fprintf(stderr, "%s: %v\n", paths[0], err)
		})
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintPath(path)
		if err != nil {
			return fmt.Errorf("lint %s: %w", path, err)
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		fmt.Fprintln(stdout, "ok")
		return nil
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return errFailed
}

// lintPath reports every file and field problem under path. Cross-file
// problems are checked only once every file is clean.
func lintPath(path string) ([]violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return lintDocument(path, data), nil
	}

	fsys := os.DirFS(path)
	var result []violation
	err = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !fieldset.IsDocumentFile(name) {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		result = append(result, lintDocument(filepath.Join(path, name), data)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(result) > 0 {
		return result, nil
	}

	if _, err := fieldset.LoadFS(fsys); err != nil {
		result = append(result, violation{file: path, location: "field set", message: err.Error()})
	}
	return result, nil
}

func lintDocument(file string, data []byte) []violation {
	doc, err := fieldset.Parse(file, data)
	if err != nil {
		return []violation{{file: file, location: "document", message: err.Error()}}
	}

	var result []violation
	for name, cfg := range doc.Fields {
		if _, err := cfg.Resolve(); err != nil {
			result = append(result, violation{
				file:     file,
				location: formatLocation([]string{"fields", name}),
				message:  err.Error(),
			})
		}
	}
	return result
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
