package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const usage = "usage: weread2notion [flags] <weread_cookie> <notion_token> <notion_database_id>"

type Options struct {
	WeReadCookie  string
	NotionToken   string
	DatabaseID    string
	DevMode       bool
	LogDir        string
	Timeout       time.Duration
	RefreshCookie bool
}

// parseArgs reads flags and the three credentials. Any other number of
// positional arguments is an error.
func parseArgs(args []string, stderr io.Writer) (Options, error) {
	var opts Options
	fs := pflag.NewFlagSet("weread2notion", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	fs.BoolVar(&opts.DevMode, "dev", false, "sync only the latest 5 and 30 random notebooks")
	fs.StringVar(&opts.LogDir, "log-dir", ".", "directory for the run log file")
	fs.DurationVar(&opts.Timeout, "timeout", 30*time.Minute, "abort the whole run after this long")
	fs.BoolVar(&opts.RefreshCookie, "refresh-cookie", false, "fetch a new cookie with Chrome when WeRead rejects the current one")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return opts, fmt.Errorf("expected 3 arguments, got %d", fs.NArg())
	}
	opts.WeReadCookie = fs.Arg(0)
	opts.NotionToken = fs.Arg(1)
	opts.DatabaseID = fs.Arg(2)
	return opts, nil
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. CI secrets).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
