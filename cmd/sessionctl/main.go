// sessionctl is a small operations CLI for inspecting and pruning a live
// goSessions collection.
//
// Usage:
//
//	sessionctl --addr localhost:6379 --collection sessions list
//	sessionctl get <sid>
//	sessionctl destroy <sid>
//	sessionctl clear
//	sessionctl reap
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	goSessions "github.com/MrEthical07/goSessions"
	"github.com/MrEthical07/goSessions/internal/stores"
	"github.com/MrEthical07/goSessions/record"
)

var (
	addr       string
	collection string
)

var rootCmd = &cobra.Command{
	Use:           "sessionctl",
	Short:         "Inspect and prune a goSessions collection",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newStore() (*goSessions.Store, *redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	store, err := goSessions.New(rdb, goSessions.Config{Collection: collection})
	if err != nil {
		rdb.Close()
		return nil, nil, err
	}
	return store, rdb, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every persisted session record",
	RunE: func(cmd *cobra.Command, args []string) error {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()

		records := stores.NewRecordStore(rdb, collection)
		all, err := records.ListAll(cmd.Context())
		if err != nil {
			return err
		}

		now := time.Now()
		for _, kr := range all {
			state := "valid"
			if kr.Record.ExpiredAt(now) {
				state = "expired"
			}
			payload, err := json.Marshal(kr.Record.Session)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\t%s\t%s\n",
				kr.Key,
				time.UnixMilli(kr.Record.Expires).Format(time.RFC3339),
				state,
				payload,
			)
		}
		fmt.Printf("%d record(s)\n", len(all))
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <sid>",
	Short: "Print one session payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, rdb, err := newStore()
		if err != nil {
			return err
		}
		defer rdb.Close()

		payload, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if payload == nil {
			fmt.Println("no session")
			return nil
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var destroyCmd = &cobra.Command{
	Use:   "destroy <sid>",
	Short: "Remove one session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, rdb, err := newStore()
		if err != nil {
			return err
		}
		defer rdb.Close()

		if err := store.Destroy(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("destroyed %s\n", record.NormalizeKey(args[0]))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every session in the collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, rdb, err := newStore()
		if err != nil {
			return err
		}
		defer rdb.Close()

		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("collection cleared")
		return nil
	},
}

var reapCmd = &cobra.Command{
	Use:   "reap",
	Short: "Delete every expired session record now",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, rdb, err := newStore()
		if err != nil {
			return err
		}
		defer rdb.Close()

		deleted, err := store.Reap(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("reaped %d record(s)\n", deleted)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "localhost:6379", "Redis address")
	rootCmd.PersistentFlags().StringVar(&collection, "collection", stores.DefaultCollection, "session collection name")
	rootCmd.AddCommand(listCmd, getCmd, destroyCmd, clearCmd, reapCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "sessionctl:", err)
		os.Exit(1)
	}
}
