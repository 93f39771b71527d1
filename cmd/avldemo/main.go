// Command avldemo exercises the avltree package with a configurable
// synthetic workload, for use both as a runnable example and as a
// load-generator while developing the library.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mwilben/avltree"
)

var (
	size int
	seed uint64
	log  zerolog.Logger
)

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "avldemo",
		Short: "Exercise the avltree package with a synthetic workload",
	}
	root.PersistentFlags().IntVar(&size, "size", 10_000, "number of keys in the workload")
	root.PersistentFlags().Uint64Var(&seed, "seed", 1, "PRNG seed")

	root.AddCommand(loadCmd(), shuffleRemoveCmd(), benchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Insert size keys in ascending order and read them back",
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 {
				return fmt.Errorf("avldemo: --size must be positive, got %d", size)
			}

			t := avltree.New[int, int](compareInt)
			log.Info().Int("size", size).Msg("loading sorted keys")

			start := time.Now()
			for i := 0; i < size; i++ {
				t.Insert(i, i*i)
			}
			log.Info().Dur("elapsed", time.Since(start)).Int("len", t.Len()).Msg("load complete")

			for i := 0; i < size; i++ {
				v, ok := t.Get(i)
				if !ok || v != i*i {
					return fmt.Errorf("avldemo: readback mismatch for key %d: got (%d, %v)", i, v, ok)
				}
			}
			log.Info().Msg("readback verified")
			return nil
		},
	}
}

func shuffleRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle-remove",
		Short: "Insert size keys, then remove them in a shuffled order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 {
				return fmt.Errorf("avldemo: --size must be positive, got %d", size)
			}

			t := avltree.New[int, int](compareInt)
			for i := 0; i < size; i++ {
				t.Insert(i, i)
			}

			order := rand.New(rand.NewPCG(seed, seed))
			keys := make([]int, size)
			for i := range keys {
				keys[i] = i
			}
			order.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

			log.Info().Uint64("seed", seed).Msg("removing in shuffled order")
			start := time.Now()
			for _, k := range keys {
				if _, ok := t.Remove(k); !ok {
					return fmt.Errorf("avldemo: key %d missing on removal", k)
				}
			}
			log.Info().Dur("elapsed", time.Since(start)).Int("remaining", t.Len()).Msg("shuffle-remove complete")
			return nil
		},
	}
}

func benchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run a mixed insert/get-or-insert/remove workload and report timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := avltree.New[int, string](compareInt)
			r := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

			start := time.Now()
			inserted := 0
			for i := 0; i < size; i++ {
				key := int(r.Int64N(int64(size) * 2))
				switch {
				case i%7 == 0:
					t.GetOrInsert(key, func() string { inserted++; return fmt.Sprintf("v%d", key) })
				case i%5 == 0:
					t.Remove(key)
				default:
					if _, had := t.Insert(key, fmt.Sprintf("v%d", key)); !had {
						inserted++
					}
				}
			}
			log.Info().
				Dur("elapsed", time.Since(start)).
				Int("ops", size).
				Int("final_len", t.Len()).
				Int("inserted", inserted).
				Msg("bench complete")
			return nil
		},
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
