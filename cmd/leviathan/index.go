package main

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/student/leviathan/allocator"
	"github.com/student/leviathan/avltree"
	"github.com/student/leviathan/json"
	"github.com/student/leviathan/pyhash"
	"github.com/student/leviathan/skiplist"
	"github.com/student/leviathan/sortedlist"
	"github.com/student/leviathan/source"
	"github.com/student/leviathan/toml"
)

var errUnknownContainer = errors.New("unknown container")

func newIndexCommand() *cobra.Command {
	var container string

	cmd := &cobra.Command{
		Use:   "index FILE",
		Short: "Parse a JSON or TOML file and collect its keys into a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runIndex(args[0], container)
		},
	}

	cmd.Flags().StringVar(&container, "container", "avl", "container to index into: avl|hash|skip|sorted")

	if err := cmd.RegisterFlagCompletionFunc("container", cobra.FixedCompletions(
		[]string{"avl", "hash", "skip", "sorted"}, cobra.ShellCompDirectiveNoFileComp,
	)); err != nil {
		panic(err)
	}

	return cmd
}

func runIndex(path, container string) error {
	data, err := source.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	keys, err := collectKeys(path, string(data))
	if err != nil {
		return err
	}

	count, err := indexKeys(container, keys)
	if err != nil {
		return err
	}

	slog.Info("indexed keys", "file", path, "container", container, "count", count)

	return nil
}

// collectKeys parses path's document (by its extension) and walks it,
// gathering every object/table key found at any depth.
func collectKeys(path, src string) ([]string, error) {
	switch {
	case strings.HasSuffix(path, ".json"):
		v, err := json.Parse(src)
		if err != nil {
			return nil, err
		}

		return collectJSONKeys(v, nil), nil
	case strings.HasSuffix(path, ".toml"):
		v, err := toml.Parse(src)
		if err != nil {
			return nil, err
		}

		return collectTOMLKeys(v, nil), nil
	default:
		return nil, fmt.Errorf("%w: cannot infer format from %q (want .json or .toml)", errUnknownFormat, path)
	}
}

func collectJSONKeys(v json.Value, keys []string) []string {
	v.Visit(json.Visitor{
		Object: func(fields map[string]json.Value) {
			for k, fv := range fields {
				keys = append(keys, k)
				keys = collectJSONKeys(fv, keys)
			}
		},
		Array: func(elems []json.Value) {
			for _, e := range elems {
				keys = collectJSONKeys(e, keys)
			}
		},
	})

	return keys
}

func collectTOMLKeys(v toml.Value, keys []string) []string {
	v.Visit(toml.Visitor{
		Table: func(t *toml.Table) {
			for k, fv := range t.Fields() {
				keys = append(keys, k)
				keys = collectTOMLKeys(fv, keys)
			}
		},
		Array: func(a *toml.Array) {
			for _, e := range a.Elems() {
				keys = collectTOMLKeys(e, keys)
			}
		},
	})

	return keys
}

func stringHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))

	return h.Sum64()
}

// indexKeys inserts every key into the requested container, exercising
// its associative contract end-to-end, and returns the final element
// count.
func indexKeys(container string, keys []string) (int, error) {
	switch container {
	case "avl":
		tree := avltree.New[string, struct{}](
			func(a, b string) bool { return a < b },
			allocator.NewStd[avltree.Entry[string, struct{}]](),
		)

		for _, k := range keys {
			if _, _, err := tree.Insert(k, struct{}{}); err != nil {
				return 0, fmt.Errorf("inserting %q: %w", k, err)
			}
		}

		return tree.Size(), nil
	case "hash":
		table := pyhash.New[string, struct{}](
			stringHash,
			func(a, b string) bool { return a == b },
			allocator.NewStd[pyhash.Entry[string, struct{}]](),
		)

		for _, k := range keys {
			if _, err := table.Insert(k, struct{}{}); err != nil {
				return 0, fmt.Errorf("inserting %q: %w", k, err)
			}
		}

		return table.Size(), nil
	case "skip":
		list := skiplist.New[string, struct{}](
			func(a, b string) bool { return a < b },
			allocator.NewStd[skiplist.Entry[string, struct{}]](),
		)

		for _, k := range keys {
			if _, _, err := list.Insert(k, struct{}{}); err != nil {
				return 0, fmt.Errorf("inserting %q: %w", k, err)
			}
		}

		return list.Size(), nil
	case "sorted":
		list := sortedlist.New[string, string](
			func(a, b string) bool { return a < b },
			func(s string) string { return s },
			allocator.NewStd[string](),
		)

		for _, k := range keys {
			if _, err := list.Insert(k); err != nil {
				return 0, fmt.Errorf("inserting %q: %w", k, err)
			}
		}

		return list.Size(), nil
	default:
		return 0, fmt.Errorf("%w: %q (want avl, hash, skip, or sorted)", errUnknownContainer, container)
	}
}

