package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"weread2notion/internal/book"
	"weread2notion/internal/cookie"
	"weread2notion/internal/logfile"
	"weread2notion/internal/notion"
	"weread2notion/internal/platform/weread"
	"weread2notion/internal/sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.Printf("%v", err)
		return 2
	}

	loadEnvFiles()

	logFile, err := logfile.Open(opts.LogDir, time.Now())
	if err != nil {
		log.Printf("cannot open log file: %v", err)
		return 1
	}
	defer logFile.Close()
	log.SetOutput(io.MultiWriter(logFile, os.Stdout))
	log.Printf("log file %s", logFile.Name())

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	wopts := weread.Options{
		UserAgent: getEnv("WEREAD_USER_AGENT", weread.DefaultUserAgent),
		RPS:       getEnvInt("WEREAD_RPS", 2),
	}
	if opts.RefreshCookie {
		store := cookie.NewStore(getEnv("WEREAD_COOKIE_FILE", cookie.DefaultFile))
		wopts.Refresher = cookie.NewManager(store, cookie.BrowserFetcher{Headless: os.Getenv("CI") == "true"})
	}
	wr, err := weread.NewClient(opts.WeReadCookie, wopts)
	if err != nil {
		log.Printf("weread client: %v", err)
		return 1
	}
	defer wr.Close()

	api := notion.NewClient(opts.NotionToken)
	limiter := notion.NewLimiter(getEnvInt("NOTION_RPS", 3))
	pages := notion.NewDatabaseManager(opts.DatabaseID, api.Database, api.Page, api.Block, limiter)
	writer := notion.NewBlockWriter(api.Block, limiter)

	var runRepo sync.Repository = sync.NopRepo{}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		pool := mustOpenDB(dsn)
		defer pool.Close()
		runRepo = sync.NewPostgresRepo(pool)
	}

	svc := sync.NewService(wr, book.NewBuilder(wr), pages, writer, runRepo, sync.Config{DevMode: opts.DevMode})
	if _, err := svc.Run(ctx); err != nil {
		log.Printf("sync failed: %v", err)
		return 1
	}
	return 0
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("run ledger database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
