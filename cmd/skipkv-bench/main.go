package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/MikhailWahib/skipkv"
)

type config struct {
	threads  int
	inserts  int
	keyMax   int
	maxLevel int
}

func run(threads int, fn func(tid int)) time.Duration {
	var wg sync.WaitGroup
	start := time.Now()
	for tid := 0; tid < threads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			fn(tid)
		}(tid)
	}
	wg.Wait()
	return time.Since(start)
}

func main() {
	var cfg config
	flag.IntVar(&cfg.threads, "threads", 3, "Number of concurrent goroutines")
	flag.IntVar(&cfg.inserts, "n", 300000, "Total operations per phase")
	flag.IntVar(&cfg.keyMax, "key-max", 1000000, "Keys are drawn from [0, key-max)")
	flag.IntVar(&cfg.maxLevel, "max-level", 20, "Skip list level ceiling")
	flag.Parse()

	if cfg.threads <= 0 || cfg.inserts <= 0 || cfg.keyMax <= 0 {
		fmt.Fprintln(os.Stderr, "threads, n and key-max must be positive")
		os.Exit(2)
	}

	skipkv.DisableLogging()

	db, err := skipkv.New(&skipkv.Config{MaxLevel: cfg.maxLevel}, skipkv.IntCodec(), skipkv.StringCodec())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create database: %v\n", err)
		os.Exit(1)
	}

	perThread := cfg.inserts / cfg.threads

	insertTime := run(cfg.threads, func(tid int) {
		rng := rand.New(rand.NewPCG(uint64(tid), 0))
		for i := 0; i < perThread; i++ {
			db.Insert(rng.IntN(cfg.keyMax), "abcdefg")
		}
	})

	findTime := run(cfg.threads, func(tid int) {
		rng := rand.New(rand.NewPCG(uint64(tid), 0))
		for i := 0; i < perThread; i++ {
			db.Find(rng.IntN(cfg.keyMax))
		}
	})

	fmt.Printf(" insert using: %d milliseconds\n", insertTime.Milliseconds())
	fmt.Printf(" find using:   %d milliseconds\n", findTime.Milliseconds())
	fmt.Printf(" size: %d, level: %d/%d\n", db.Size(), db.Level(), db.MaxLevel())
}
