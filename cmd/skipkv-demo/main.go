package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/MikhailWahib/skipkv"
)

func section(name string) {
	fmt.Printf("\n**************** Test: %s ****************\n", name)
}

func main() {
	maxLevel := flag.Int("max-level", 6, "Skip list level ceiling")
	dataPath := flag.String("data", "save/data", "Data file used by dump and load")
	logLevel := flag.String("log-level", "debug", "Log level (debug, info, warn, error)")
	jsonLogs := flag.Bool("json", false, "Emit JSON logs instead of console output")
	flag.Parse()

	level, err := skipkv.ParseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %v\n", err)
		os.Exit(2)
	}
	opts := skipkv.LogOptions{Level: level, Out: os.Stdout}
	if *jsonLogs {
		opts.Type = skipkv.JSONLogger
	}
	skipkv.InitLogging(opts)

	db, err := skipkv.New(&skipkv.Config{MaxLevel: *maxLevel, DataPath: *dataPath},
		skipkv.IntCodec(), skipkv.StringCodec())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create database: %v\n", err)
		os.Exit(1)
	}

	section("insert")
	db.Insert(2, "not looking for")
	db.Insert(6, "a story")
	db.Insert(8, "who they are.")
	db.Insert(1, "They're")
	db.Insert(7, "that tells")

	key := 2
	for !db.Insert(key, "this is a duplicate key!") {
		key++
	}
	fmt.Printf("|-> data size:%d\n", db.Size())

	section("dump")
	db.Dump()

	section("load")
	db.Load()

	section("search")
	for _, k := range []int{2, 6, 10} {
		if v, ok := db.Get(k); ok {
			fmt.Printf("|-> found key: %d, value: %s;\n", k, v)
		} else {
			fmt.Printf("|-> not found key: %d;\n", k)
		}
	}

	section("print")
	db.Print()
	_ = db.PrintLevels(os.Stdout)

	section("delete")
	for _, k := range []int{6, 8, 12} {
		db.Delete(k)
	}
	fmt.Printf("|-> data size:%d\n", db.Size())
	db.Print()
}
