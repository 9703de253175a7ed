// Command tweetclust clusters news-feed posts with k-medoids over the
// Jaccard distance of their token sets.
//
// A single fit prints the medoid and size of every cluster:
//
//	tweetclust -k 8 --seed 42 dataset/bbchealth.txt
//
// With --experiments N it fits k, k+1, ..., k+N-1 concurrently and prints
// the SSE per k for the elbow method:
//
//	tweetclust -k 2 --experiments 10 --format json dataset/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flags "github.com/jessevdk/go-flags"
)

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "tweetclust:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "tweetclust:", err)
		stop()
		os.Exit(1)
	}
}
